package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus constants. These are the statuses the storefront itself sets
// and the dashboard reports on; the status column accepts any value an
// operator writes through the status endpoint.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order is the GORM model persisted in Postgres. Total is stored exactly as
// submitted at checkout and is never recomputed from the items. Orders are
// never deleted.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber   string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"order_number"`
	CustomerEmail string          `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	Status        string          `gorm:"type:varchar(32);not null;default:'pending'" json:"status"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem records one line of an order. ProductName, ProductSKU and Price
// are snapshots captured when the order is placed; they are never rewritten,
// so the line survives later edits or deletion of the product. ProductID
// carries no foreign key for the same reason.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductSKU  string          `gorm:"type:varchar(64);not null" json:"product_sku"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	// Product is attached on reads: the live product row when it still
	// exists, otherwise a minimal view built from the snapshot columns.
	Product *Product `gorm:"-" json:"product,omitempty"`
}

// OrderData is the order-level portion of a checkout payload.
type OrderData struct {
	CustomerEmail string          `json:"customer_email" binding:"required,email"`
	Total         decimal.Decimal `json:"total" binding:"required"`
}

// OrderItemRequest is one line of a checkout payload. Name and SKU are
// optional; when omitted the snapshots are taken from the product row.
type OrderItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Order OrderData          `json:"order" binding:"required"`
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest is the payload for the status endpoint.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
