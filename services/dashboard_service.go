package services

import (
	"context"

	"storefront-backend/models"
	"storefront-backend/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardStats aggregates the storefront overview numbers. Revenue counts
// completed orders only; every other status is ignored.
type DashboardStats struct {
	Revenue          decimal.Decimal `json:"revenue"`
	Customers        int64           `json:"customers"`
	LowStockProducts int64           `json:"low_stock_products"`
}

// DashboardService defines the interface for dashboard aggregates.
type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardStats, *ServiceError)
}

// dashboardServiceImpl implements DashboardService.
type dashboardServiceImpl struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, logger *zap.Logger) DashboardService {
	return &dashboardServiceImpl{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetStats computes the dashboard aggregates.
func (s *dashboardServiceImpl) GetStats(ctx context.Context) (*DashboardStats, *ServiceError) {
	revenue, err := s.orderRepo.SumTotalByStatus(ctx, models.OrderStatusCompleted)
	if err != nil {
		s.logger.Error("Failed to compute revenue", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to compute dashboard stats"}
	}

	customers, err := s.orderRepo.CountDistinctCustomers(ctx)
	if err != nil {
		s.logger.Error("Failed to count customers", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to compute dashboard stats"}
	}

	lowStock, err := s.productRepo.CountLowStock(ctx)
	if err != nil {
		s.logger.Error("Failed to count low-stock products", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to compute dashboard stats"}
	}

	return &DashboardStats{
		Revenue:          revenue,
		Customers:        customers,
		LowStockProducts: lowStock,
	}, nil
}
