package services_test

import (
	"context"
	"testing"

	"storefront-backend/models"
	"storefront-backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newCategoryTestService() services.CategoryService {
	logger, _ := zap.NewDevelopment()
	return services.NewCategoryService(newMockCategoryRepo(), logger)
}

func TestService_CreateCategory_Success(t *testing.T) {
	svc := newCategoryTestService()

	category, svcErr := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{
		Name:        "Lighting",
		Slug:        "lighting",
		Description: "Lamps and fixtures",
	})

	assert.Nil(t, svcErr)
	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.Equal(t, "Lighting", category.Name)
	assert.Equal(t, "lighting", category.Slug)
}

func TestService_CreateCategory_DuplicateSlug(t *testing.T) {
	svc := newCategoryTestService()

	_, svcErr := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: "Lighting", Slug: "lighting"})
	assert.Nil(t, svcErr)

	_, svcErr = svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: "Also Lighting", Slug: "lighting"})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
}

func TestService_ListCategories_Alphabetical(t *testing.T) {
	svc := newCategoryTestService()

	for _, c := range []struct{ name, slug string }{
		{"Office", "office"},
		{"Kitchen", "kitchen"},
		{"Lighting", "lighting"},
	} {
		_, svcErr := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: c.name, Slug: c.slug})
		assert.Nil(t, svcErr)
	}

	categories, svcErr := svc.ListCategories(context.Background())
	assert.Nil(t, svcErr)
	assert.Len(t, categories, 3)
	assert.Equal(t, []string{"Kitchen", "Lighting", "Office"},
		[]string{categories[0].Name, categories[1].Name, categories[2].Name})
}

func TestService_ListCategories_Empty(t *testing.T) {
	svc := newCategoryTestService()

	categories, svcErr := svc.ListCategories(context.Background())
	assert.Nil(t, svcErr)
	assert.NotNil(t, categories, "Empty list serializes as [], not null")
	assert.Len(t, categories, 0)
}
