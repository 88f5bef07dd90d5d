package services_test

import (
	"context"
	"testing"

	"storefront-backend/models"
	"storefront-backend/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func seedOrder(t *testing.T, repo *mockOrderRepo, email, total, status string) {
	t.Helper()
	order := &models.Order{
		OrderNumber:   services.NewOrderNumber(),
		CustomerEmail: email,
		Status:        status,
		Total:         decimal.RequireFromString(total),
	}
	assert.NoError(t, repo.CreateWithItems(context.Background(), order, []models.OrderItem{
		{ProductID: uuid.New(), ProductName: "Line", ProductSKU: "L-1", Price: order.Total, Quantity: 1, Total: order.Total},
	}))
}

func TestService_GetStats(t *testing.T) {
	products := newMockProductRepo()
	orders := newMockOrderRepo(products)
	logger, _ := zap.NewDevelopment()
	svc := services.NewDashboardService(orders, products, logger)

	// Revenue counts completed orders only.
	seedOrder(t, orders, "jane@example.com", "100.25", models.OrderStatusCompleted)
	seedOrder(t, orders, "jane@example.com", "49.74", models.OrderStatusCompleted)
	seedOrder(t, orders, "sam@example.com", "500.00", models.OrderStatusPending)
	seedOrder(t, orders, "sam@example.com", "75.00", models.OrderStatusCancelled)

	// One product at its threshold, one below, one comfortably above.
	assert.NoError(t, products.Create(context.Background(), &models.Product{
		Name: "At Threshold", Slug: "at-threshold", SKU: "AT-1",
		Price: decimal.RequireFromString("10.00"), Stock: 5, MinStock: 5,
	}))
	assert.NoError(t, products.Create(context.Background(), &models.Product{
		Name: "Below", Slug: "below", SKU: "B-1",
		Price: decimal.RequireFromString("10.00"), Stock: 1, MinStock: 5,
	}))
	assert.NoError(t, products.Create(context.Background(), &models.Product{
		Name: "Plenty", Slug: "plenty", SKU: "P-1",
		Price: decimal.RequireFromString("10.00"), Stock: 50, MinStock: 5,
	}))

	stats, svcErr := svc.GetStats(context.Background())

	assert.Nil(t, svcErr)
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("149.99")),
		"revenue should sum completed orders only, got %s", stats.Revenue)
	assert.Equal(t, int64(2), stats.Customers)
	assert.Equal(t, int64(2), stats.LowStockProducts)
}

func TestService_GetStats_Empty(t *testing.T) {
	products := newMockProductRepo()
	orders := newMockOrderRepo(products)
	logger, _ := zap.NewDevelopment()
	svc := services.NewDashboardService(orders, products, logger)

	stats, svcErr := svc.GetStats(context.Background())

	assert.Nil(t, svcErr)
	assert.True(t, stats.Revenue.IsZero())
	assert.Equal(t, int64(0), stats.Customers)
	assert.Equal(t, int64(0), stats.LowStockProducts)
}
