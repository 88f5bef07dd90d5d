package controllers

import (
	"net/http"

	"storefront-backend/models"
	"storefront-backend/repository"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductController handles HTTP requests for catalog and product admin
// operations.
type ProductController struct {
	productService services.ProductService
}

// NewProductController creates a new ProductController.
func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ListProducts handles GET /api/products. Filters are AND-combined; the
// returned total ignores pagination.
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	filters := repository.ProductFilters{
		Search: ctx.Query("search"),
		Status: ctx.Query("status"),
	}
	if category := ctx.Query("category"); category != "" {
		categoryID, err := uuid.Parse(category)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		filters.CategoryID = &categoryID
	}

	sort := ctx.DefaultQuery("sort", repository.SortNewest)
	limit, offset := parseLimitOffset(ctx)

	products, total, svcErr := pc.productService.ListProducts(ctx.Request.Context(), filters, sort, limit, offset)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products, "total": total})
}

// GetProduct handles GET /api/products/:id. The path value may be a product
// id or a slug.
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	idOrSlug := ctx.Param("id")

	product, svcErr := pc.productService.GetProduct(ctx.Request.Context(), idOrSlug)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /api/products (admin only).
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req models.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.CreateProduct(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/:id (admin only). Only provided
// fields are applied.
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req models.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.UpdateProduct(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id (admin only). Order items
// referencing the product keep their snapshots.
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	svcErr := pc.productService.DeleteProduct(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
