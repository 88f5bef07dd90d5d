package routes

import (
	"storefront-backend/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes sets up category and product routes. Reads are
// public storefront surface; mutations are the admin surface.
func RegisterCatalogRoutes(r *gin.Engine, cc *controllers.CategoryController, pc *controllers.ProductController) {
	api := r.Group("/api")

	api.GET("/categories", cc.ListCategories)
	api.POST("/categories", cc.CreateCategory)

	api.GET("/products", pc.ListProducts)
	api.GET("/products/:id", pc.GetProduct)
	api.POST("/products", pc.CreateProduct)
	api.PUT("/products/:id", pc.UpdateProduct)
	api.DELETE("/products/:id", pc.DeleteProduct)
}

// RegisterOrderRoutes sets up order routes.
func RegisterOrderRoutes(r *gin.Engine, oc *controllers.OrderController) {
	api := r.Group("/api")

	api.GET("/orders", oc.ListOrders)
	api.POST("/orders", oc.CreateOrder)
	api.GET("/orders/:id", oc.GetOrder)
	api.PUT("/orders/:id/status", oc.UpdateOrderStatus)
}

// RegisterPaymentRoutes sets up payment routes.
func RegisterPaymentRoutes(r *gin.Engine, pc *controllers.PaymentController) {
	api := r.Group("/api")

	api.POST("/create-payment-intent", pc.CreatePaymentIntent)
}

// RegisterDashboardRoutes sets up dashboard routes.
func RegisterDashboardRoutes(r *gin.Engine, dc *controllers.DashboardController) {
	api := r.Group("/api")

	api.GET("/dashboard/stats", dc.GetStats)
}
