package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-backend/cache"
	"storefront-backend/controllers"
	"storefront-backend/database"
	"storefront-backend/kafka"
	"storefront-backend/metrics"
	"storefront-backend/middleware"
	"storefront-backend/models"
	"storefront-backend/repository"
	"storefront-backend/routes"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := LoadConfig()

	var logger *zap.Logger
	var err error
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// --- Database ---
	if err := database.Connect(logger,
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}

	// --- Redis catalog cache (optional) ---
	var catalogCache *cache.CatalogCache
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			catalogCache = cache.NewCatalogCache(redisClient)
			defer redisClient.Close()
			logger.Info("Catalog cache enabled")
		}
	}

	// --- Kafka order events (optional) ---
	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.OrderEventsTopic, logger)
		logger.Info("Kafka producer enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.OrderEventsTopic))
	}

	if cfg.StripeSecretKey == "" {
		logger.Warn("Stripe secret key not set, payment intents disabled")
	}

	// --- CloudWatch metrics (optional, CLOUDWATCH_ENABLED) ---
	metricsClient, err := metrics.NewClient(context.Background())
	if err != nil {
		logger.Warn("CloudWatch metrics client init failed (non-fatal)", zap.Error(err))
	}

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	controllers.RegisterValidators()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware(metricsClient, "storefront-backend"))
	r.Use(middleware.RequestLogger(logger))

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- Dependency injection ---
	categoryRepo := repository.NewGormCategoryRepository(database.DB)
	productRepo := repository.NewGormProductRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)

	categoryService := services.NewCategoryService(categoryRepo, logger)
	productService := services.NewProductService(productRepo, catalogCache, logger)
	orderService := services.NewOrderService(orderRepo, productRepo, producer, logger)
	dashboardService := services.NewDashboardService(orderRepo, productRepo, logger)
	paymentService := services.NewStripePaymentService(cfg.StripeSecretKey, logger)

	categoryController := controllers.NewCategoryController(categoryService)
	productController := controllers.NewProductController(productService)
	orderController := controllers.NewOrderController(orderService)
	paymentController := controllers.NewPaymentController(paymentService)
	dashboardController := controllers.NewDashboardController(dashboardService)

	routes.RegisterCatalogRoutes(r, categoryController, productController)
	routes.RegisterOrderRoutes(r, orderController)
	routes.RegisterPaymentRoutes(r, paymentController)
	routes.RegisterDashboardRoutes(r, dashboardController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "storefront-backend"})
	})

	// --- HTTP server ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Storefront backend started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	if err := producer.Close(); err != nil {
		logger.Error("Kafka producer close error", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	log.Println("Storefront backend stopped gracefully")
}
