package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"storefront-backend/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestOrderRepository_FindByNumber_PreloadsItems(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	orderID := uuid.New()
	now := time.Now()

	orderRows := sqlmock.NewRows([]string{
		"id", "order_number", "customer_email", "status", "total", "created_at", "updated_at",
	}).AddRow(orderID, "ORD-1756227123456042", "jane@example.com", "pending", "49.99", now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(orderRows)

	itemRows := sqlmock.NewRows([]string{
		"id", "order_id", "product_id", "product_name", "product_sku", "price", "quantity", "total",
	}).AddRow(uuid.New(), orderID, uuid.New(), "Desk Lamp", "SKU-LAMP-1", "24.99", 2, "49.98")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(itemRows)

	order, err := repo.FindByNumber(context.Background(), "ORD-1756227123456042")
	assert.NoError(t, err)
	assert.Equal(t, "ORD-1756227123456042", order.OrderNumber)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Desk Lamp", order.Items[0].ProductName)
	assert.True(t, order.Items[0].Total.Equal(decimal.RequireFromString("49.98")))
}

func TestOrderRepository_UpdateStatus_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), uuid.New(), "banana")
	assert.NoError(t, err)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), uuid.New(), "completed")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_SumTotalByStatus(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(total), 0) FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("149.99"))

	sum, err := repo.SumTotalByStatus(context.Background(), "completed")
	assert.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("149.99")))
}

func TestOrderRepository_CountDistinctCustomers(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	total, err := repo.CountDistinctCustomers(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
