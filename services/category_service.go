package services

import (
	"context"
	"strings"

	"storefront-backend/models"
	"storefront-backend/repository"

	"go.uber.org/zap"
)

// CategoryService defines the interface for category business logic.
type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, *ServiceError)
	ListCategories(ctx context.Context) ([]models.Category, *ServiceError)
}

// categoryServiceImpl implements CategoryService.
type categoryServiceImpl struct {
	repo   repository.CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{repo: repo, logger: logger}
}

// CreateCategory creates a new category.
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, *ServiceError) {
	category := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, &ServiceError{StatusCode: 409, Message: "Category slug already exists"}
		}
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create category"}
	}

	s.logger.Info("Category created", zap.String("slug", category.Slug))
	return category, nil
}

// ListCategories returns all categories in alphabetical order.
func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list categories"}
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}
