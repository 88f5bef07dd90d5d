package repository

import (
	"context"

	"storefront-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	FindAll(ctx context.Context, status string, limit, offset int) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SumTotalByStatus(ctx context.Context, status string) (decimal.Decimal, error)
	CountDistinctCustomers(ctx context.Context) (int64, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateWithItems inserts an order, its items and the stock decrements in a
// single transaction, so a failure anywhere leaves no partial writes. The
// decrement is plain arithmetic with no floor: ordering more than is in
// stock drives the count negative rather than failing. A decrement against
// a product that no longer exists touches zero rows and is not an error.
func (r *GormOrderRepository) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).
				Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID retrieves an order and its items.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByNumber retrieves an order and its items by order number.
func (r *GormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindAll retrieves orders with an optional status filter, newest first.
// The returned total counts every matching row regardless of pagination.
func (r *GormOrderRepository) FindAll(ctx context.Context, status string, limit, offset int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Items").
		Limit(limit).
		Offset(offset).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateStatus overwrites an order's status with the given value verbatim.
// Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumTotalByStatus sums order totals for one status, zero when none match.
func (r *GormOrderRepository) SumTotalByStatus(ctx context.Context, status string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(total), 0)").
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// CountDistinctCustomers counts unique customer emails across all orders.
func (r *GormOrderRepository) CountDistinctCustomers(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Distinct("customer_email").
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
