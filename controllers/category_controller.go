package controllers

import (
	"net/http"

	"storefront-backend/models"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
)

// CategoryController handles HTTP requests for category operations.
type CategoryController struct {
	categoryService services.CategoryService
}

// NewCategoryController creates a new CategoryController.
func NewCategoryController(categoryService services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// ListCategories handles GET /api/categories.
func (cc *CategoryController) ListCategories(ctx *gin.Context) {
	categories, svcErr := cc.categoryService.ListCategories(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory handles POST /api/categories (admin only).
func (cc *CategoryController) CreateCategory(ctx *gin.Context) {
	var req models.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	category, svcErr := cc.categoryService.CreateCategory(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, category)
}
