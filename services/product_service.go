package services

import (
	"context"
	"strings"

	"storefront-backend/cache"
	"storefront-backend/models"
	"storefront-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService defines the interface for product business logic.
type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, *ServiceError)
	GetProduct(ctx context.Context, idOrSlug string) (*models.Product, *ServiceError)
	ListProducts(ctx context.Context, filters repository.ProductFilters, sort string, limit, offset int) ([]models.Product, int64, *ServiceError)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, *ServiceError)
	DeleteProduct(ctx context.Context, id uuid.UUID) *ServiceError
}

// productServiceImpl implements ProductService.
type productServiceImpl struct {
	repo   repository.ProductRepository
	cache  *cache.CatalogCache
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepository, catalogCache *cache.CatalogCache, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, cache: catalogCache, logger: logger}
}

// CreateProduct creates a new product.
func (s *productServiceImpl) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, *ServiceError) {
	product := &models.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		SKU:         req.SKU,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
		MinStock:    5,
	}
	if product.Status == "" {
		product.Status = models.ProductStatusActive
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, &ServiceError{StatusCode: 409, Message: "Product slug already exists"}
		}
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create product"}
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug),
	)
	return product, nil
}

// GetProduct retrieves a single product. The argument is treated as an id
// when it parses as a UUID and as a slug otherwise.
func (s *productServiceImpl) GetProduct(ctx context.Context, idOrSlug string) (*models.Product, *ServiceError) {
	if product, ok := s.cache.GetProduct(ctx, idOrSlug); ok {
		return product, nil
	}

	var product *models.Product
	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		product, err = s.repo.FindByID(ctx, id)
	} else {
		product, err = s.repo.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		if err.Error() == "record not found" {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.String("product", idOrSlug), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}

	s.cache.SetProductAsync(idOrSlug, product)
	return product, nil
}

// ListProducts returns one catalog page and the unpaginated match count.
func (s *productServiceImpl) ListProducts(ctx context.Context, filters repository.ProductFilters, sort string, limit, offset int) ([]models.Product, int64, *ServiceError) {
	key := cache.ListKey(filters, sort, limit, offset)
	if entry, ok := s.cache.GetProductList(ctx, key); ok {
		return entry.Products, entry.Total, nil
	}

	products, total, err := s.repo.FindAll(ctx, filters, sort, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list products"}
	}
	if products == nil {
		products = []models.Product{}
	}

	s.cache.SetProductListAsync(key, &cache.ProductListEntry{Products: products, Total: total})
	return products, total, nil
}

// UpdateProduct applies a partial update and returns the fresh row.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, *ServiceError) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.MinStock != nil {
		updates["min_stock"] = *req.MinStock
	}
	if len(updates) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "No fields to update"}
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if err.Error() == "record not found" {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, &ServiceError{StatusCode: 409, Message: "Product slug already exists"}
		}
		s.logger.Error("Failed to update product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update product"}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to reload product after update", zap.String("product_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update product"}
	}

	s.cache.Invalidate(ctx, id.String(), product.Slug)
	s.logger.Info("Product updated",
		zap.String("product_id", id.String()),
		zap.Int("fields", len(updates)),
	)
	return product, nil
}

// DeleteProduct removes a product row. Existing order items keep their
// snapshots, so order history is untouched.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, id uuid.UUID) *ServiceError {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err.Error() == "record not found" {
			return &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product for delete", zap.String("product_id", id.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete product"}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err.Error() == "record not found" {
			return &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete product"}
	}

	s.cache.Invalidate(ctx, id.String(), product.Slug)
	s.logger.Info("Product deleted",
		zap.String("product_id", id.String()),
		zap.String("slug", product.Slug),
	)
	return nil
}
