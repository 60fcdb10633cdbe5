package services

import (
	"context"
	"testing"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_SlugFromTitle(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := NewCatalogService(mockRepo, nil)

	mockRepo.On("SlugsWithPrefix", ctx, repository.SlugCategories, "home-garden").
		Return([]string{"home-garden", "home-garden-3"}, nil)
	mockRepo.On("CreateCategory", ctx, mock.AnythingOfType("*models.Category")).Return(nil)

	category, err := service.CreateCategory(ctx, models.CreateCategoryRequest{
		Title:           "Home & Garden",
		AllowedSpecKeys: []string{" material ", "material", "", "color"},
	})

	require.NoError(t, err)
	assert.Equal(t, "home-garden-4", category.Slug)
	assert.Equal(t, []string{"material", "color"}, []string(category.AllowedSpecKeys))
	assert.True(t, category.Active)
	mockRepo.AssertExpectations(t)
}

func TestCreateCategory_TitleWithoutSlugCharacters(t *testing.T) {
	mockRepo := new(mocks.Store)
	service := NewCatalogService(mockRepo, nil)

	_, err := service.CreateCategory(context.Background(), models.CreateCategoryRequest{Title: "!!!"})

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "title", fieldErr.Field)
}

func TestCreateSubcategory_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := NewCatalogService(mockRepo, nil)

	mockRepo.On("GetCategory", ctx, uint(8)).Return(nil, repository.ErrNotFound)

	_, err := service.CreateSubcategory(ctx, models.CreateSubcategoryRequest{CategoryID: 8, Title: "Shirts"})

	assert.ErrorIs(t, err, ErrNotFound)
	mockRepo.AssertNotCalled(t, "CreateSubcategory", mock.Anything, mock.Anything)
}

func TestUpdateBrand_KeepsSlug(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := NewCatalogService(mockRepo, nil)

	mockRepo.On("GetBrand", ctx, uint(2)).Return(createTestBrand(2), nil)
	mockRepo.On("UpdateBrand", ctx, mock.AnythingOfType("*models.Brand")).Return(nil)

	title := "Acme Industries"
	brand, err := service.UpdateBrand(ctx, 2, models.UpdateBrandRequest{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Acme Industries", brand.Title)
	assert.Equal(t, "acme", brand.Slug)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := NewCatalogService(mockRepo, nil)

	mockRepo.On("DeleteCategory", ctx, uint(5)).Return(repository.ErrNotFound)

	assert.ErrorIs(t, service.DeleteCategory(ctx, 5), ErrNotFound)
}
