package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus constants.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product is the GORM model persisted in Postgres. Prices are stored as
// decimal(10,2) and marshal to quoted strings on the wire. Deletes are hard:
// historical orders keep their own snapshot of name/sku/price, so a product
// row can disappear without touching order history.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	SKU         string          `gorm:"type:varchar(64);not null" json:"sku"`
	ImageURL    string          `gorm:"type:varchar(1024)" json:"image_url"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	Status      string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	MinStock    int             `gorm:"not null;default:5" json:"min_stock"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Slug        string          `json:"slug" binding:"required,slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	SKU         string          `json:"sku" binding:"required"`
	ImageURL    string          `json:"image_url"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Status      string          `json:"status" binding:"omitempty,oneof=active inactive"`
	Stock       *int            `json:"stock" binding:"omitempty,min=0"`
	MinStock    *int            `json:"min_stock" binding:"omitempty,min=0"`
}

// UpdateProductRequest is the payload for partial product updates. Pointer
// fields distinguish "not provided" from zero values.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Slug        *string          `json:"slug" binding:"omitempty,slug"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	SKU         *string          `json:"sku"`
	ImageURL    *string          `json:"image_url"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	Status      *string          `json:"status" binding:"omitempty,oneof=active inactive"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"min_stock"`
}
