package services

import (
	"context"
	"strings"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/slug"
	"github.com/sirupsen/logrus"
)

// CatalogService manages the category, subcategory and brand taxonomy
type CatalogService struct {
	repo   repository.Store
	logger *logrus.Entry
}

func NewCatalogService(repo repository.Store, logger *logrus.Logger) *CatalogService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CatalogService{
		repo:   repo,
		logger: logger.WithField("component", "catalog-service"),
	}
}

// assignSlug returns the slug for a new record. A requested slug is normalized
// and used as given; otherwise one is derived from the title and de-duplicated
// against the entity's table.
func assignSlug(ctx context.Context, repo repository.Store, entity repository.SlugEntity, requested, title string) (string, error) {
	if requested = strings.TrimSpace(requested); requested != "" {
		s := slug.Make(requested)
		if s == "" {
			return "", invalid("slug", "must contain letters or digits")
		}
		return s, nil
	}

	base := slug.Make(title)
	if base == "" {
		return "", invalid("title", "must contain letters or digits")
	}

	existing, err := repo.SlugsWithPrefix(ctx, entity, base)
	if err != nil {
		return "", err
	}
	return slug.Next(base, existing), nil
}

func requireTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid("title", "is required")
	}
	return title, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// Categories

func (s *CatalogService) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	title, err := requireTitle(req.Title)
	if err != nil {
		return nil, err
	}

	slugValue, err := assignSlug(ctx, s.repo, repository.SlugCategories, req.Slug, title)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Title:           title,
		Slug:            slugValue,
		Description:     req.Description,
		IconURL:         req.IconURL,
		ImageURL:        req.ImageURL,
		Active:          boolOr(req.Active, true),
		AllowedSpecKeys: normalizeKeys(req.AllowedSpecKeys),
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, translate(err, "category", category.Slug)
	}

	s.logger.WithFields(logrus.Fields{"categoryId": category.ID, "slug": category.Slug}).Info("Category created")
	return category, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, translate(err, "category", id)
	}
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, params models.ListParams) ([]models.Category, int64, error) {
	categories, total, err := s.repo.ListCategories(ctx, params)
	if err != nil {
		return nil, 0, translate(err, "category", nil)
	}
	return categories, total, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if category.Title, err = requireTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IconURL != nil {
		category.IconURL = *req.IconURL
	}
	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}
	if req.Active != nil {
		category.Active = *req.Active
	}
	if req.AllowedSpecKeys != nil {
		category.AllowedSpecKeys = normalizeKeys(req.AllowedSpecKeys)
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, translate(err, "category", id)
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return translate(s.repo.DeleteCategory(ctx, id), "category", id)
}

// Subcategories

func (s *CatalogService) CreateSubcategory(ctx context.Context, req models.CreateSubcategoryRequest) (*models.Subcategory, error) {
	title, err := requireTitle(req.Title)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, translate(err, "category", req.CategoryID)
	}

	slugValue, err := assignSlug(ctx, s.repo, repository.SlugSubcategories, req.Slug, title)
	if err != nil {
		return nil, err
	}

	subcategory := &models.Subcategory{
		CategoryID:  req.CategoryID,
		Title:       title,
		Slug:        slugValue,
		Description: req.Description,
		Active:      boolOr(req.Active, true),
	}
	if err := s.repo.CreateSubcategory(ctx, subcategory); err != nil {
		return nil, translate(err, "subcategory", subcategory.Slug)
	}
	return subcategory, nil
}

func (s *CatalogService) GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error) {
	subcategory, err := s.repo.GetSubcategory(ctx, id)
	if err != nil {
		return nil, translate(err, "subcategory", id)
	}
	return subcategory, nil
}

func (s *CatalogService) ListSubcategories(ctx context.Context, params models.ListParams) ([]models.Subcategory, int64, error) {
	subcategories, total, err := s.repo.ListSubcategories(ctx, params)
	if err != nil {
		return nil, 0, translate(err, "subcategory", nil)
	}
	return subcategories, total, nil
}

func (s *CatalogService) UpdateSubcategory(ctx context.Context, id uint, req models.UpdateSubcategoryRequest) (*models.Subcategory, error) {
	subcategory, err := s.GetSubcategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if subcategory.Title, err = requireTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		subcategory.Description = *req.Description
	}
	if req.Active != nil {
		subcategory.Active = *req.Active
	}

	if err := s.repo.UpdateSubcategory(ctx, subcategory); err != nil {
		return nil, translate(err, "subcategory", id)
	}
	return subcategory, nil
}

func (s *CatalogService) DeleteSubcategory(ctx context.Context, id uint) error {
	return translate(s.repo.DeleteSubcategory(ctx, id), "subcategory", id)
}

// Brands

func (s *CatalogService) CreateBrand(ctx context.Context, req models.CreateBrandRequest) (*models.Brand, error) {
	title, err := requireTitle(req.Title)
	if err != nil {
		return nil, err
	}

	slugValue, err := assignSlug(ctx, s.repo, repository.SlugBrands, req.Slug, title)
	if err != nil {
		return nil, err
	}

	brand := &models.Brand{
		Title:       title,
		Slug:        slugValue,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Active:      boolOr(req.Active, true),
	}
	if err := s.repo.CreateBrand(ctx, brand); err != nil {
		return nil, translate(err, "brand", brand.Slug)
	}
	return brand, nil
}

func (s *CatalogService) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	brand, err := s.repo.GetBrand(ctx, id)
	if err != nil {
		return nil, translate(err, "brand", id)
	}
	return brand, nil
}

func (s *CatalogService) ListBrands(ctx context.Context, params models.ListParams) ([]models.Brand, int64, error) {
	brands, total, err := s.repo.ListBrands(ctx, params)
	if err != nil {
		return nil, 0, translate(err, "brand", nil)
	}
	return brands, total, nil
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id uint, req models.UpdateBrandRequest) (*models.Brand, error) {
	brand, err := s.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if brand.Title, err = requireTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		brand.Description = *req.Description
	}
	if req.LogoURL != nil {
		brand.LogoURL = *req.LogoURL
	}
	if req.Active != nil {
		brand.Active = *req.Active
	}

	if err := s.repo.UpdateBrand(ctx, brand); err != nil {
		return nil, translate(err, "brand", id)
	}
	return brand, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id uint) error {
	return translate(s.repo.DeleteBrand(ctx, id), "brand", id)
}

// normalizeKeys trims, drops empties and de-duplicates specification keys
func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
