package repository

import (
	"context"
	"fmt"

	"catalog-service/internal/models"
)

type categoriesResult struct {
	Categories []models.Category `json:"categories"`
	Total      int64             `json:"total"`
}

type subcategoriesResult struct {
	Subcategories []models.Subcategory `json:"subcategories"`
	Total         int64                `json:"total"`
}

type brandsResult struct {
	Brands []models.Brand `json:"brands"`
	Total  int64          `json:"total"`
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if err == nil {
		r.invalidate(ctx, nil, "categories:list:*")
	}
	return translateError(err)
}

func (r *Repository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	load := func() (*models.Category, error) {
		var category models.Category
		if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
			return nil, translateError(err)
		}
		return &category, nil
	}

	if !r.cacheable() {
		return load()
	}

	var category models.Category
	err := r.cache.GetOrSetJSON(ctx, fmt.Sprintf("category:%d", id), &category, TaxonomyCacheTTL, func() (any, error) {
		return load()
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

func (r *Repository) ListCategories(ctx context.Context, params models.ListParams) ([]models.Category, int64, error) {
	load := func() (*categoriesResult, error) {
		query := r.db.WithContext(ctx).Model(&models.Category{})
		if params.Active != nil {
			query = query.Where("active = ?", *params.Active)
		}
		if params.Search != "" {
			query = query.Where("title ILIKE ?", "%"+params.Search+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return nil, err
		}

		query, err := applyOrdering(query, params.Ordering, "title", "title", "created_at", "updated_at", "id")
		if err != nil {
			return nil, err
		}

		var categories []models.Category
		if err := paginate(query, params).Find(&categories).Error; err != nil {
			return nil, err
		}
		return &categoriesResult{Categories: categories, Total: total}, nil
	}

	if !r.cacheable() {
		result, err := load()
		if err != nil {
			return nil, 0, translateError(err)
		}
		return result.Categories, result.Total, nil
	}

	var result categoriesResult
	err := r.cache.GetOrSetJSON(ctx, generateListCacheKey("categories:list", params), &result, TaxonomyCacheTTL, func() (any, error) {
		return load()
	})
	if err != nil {
		return nil, 0, translateError(err)
	}
	return result.Categories, result.Total, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Model(category).
		Select("title", "description", "icon_url", "image_url", "active", "allowed_spec_keys", "updated_at").
		Updates(category).Error
	if err == nil {
		r.invalidate(ctx, []string{fmt.Sprintf("category:%d", category.ID)}, "categories:list:*")
	}
	return translateError(err)
}

func (r *Repository) DeleteCategory(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidate(ctx, []string{fmt.Sprintf("category:%d", id)}, "categories:list:*")
	return nil
}

// Subcategory operations

func (r *Repository) CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) error {
	err := r.db.WithContext(ctx).Omit("Category").Create(subcategory).Error
	if err == nil {
		r.invalidate(ctx, nil, "subcategories:list:*")
	}
	return translateError(err)
}

func (r *Repository) GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error) {
	load := func() (*models.Subcategory, error) {
		var subcategory models.Subcategory
		if err := r.db.WithContext(ctx).First(&subcategory, id).Error; err != nil {
			return nil, translateError(err)
		}
		return &subcategory, nil
	}

	if !r.cacheable() {
		return load()
	}

	var subcategory models.Subcategory
	err := r.cache.GetOrSetJSON(ctx, fmt.Sprintf("subcategory:%d", id), &subcategory, TaxonomyCacheTTL, func() (any, error) {
		return load()
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &subcategory, nil
}

func (r *Repository) ListSubcategories(ctx context.Context, params models.ListParams) ([]models.Subcategory, int64, error) {
	load := func() (*subcategoriesResult, error) {
		query := r.db.WithContext(ctx).Model(&models.Subcategory{})
		if params.Active != nil {
			query = query.Where("active = ?", *params.Active)
		}
		if params.CategoryID != nil {
			query = query.Where("category_id = ?", *params.CategoryID)
		}
		if params.Search != "" {
			query = query.Where("title ILIKE ?", "%"+params.Search+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return nil, err
		}

		query, err := applyOrdering(query, params.Ordering, "title", "title", "created_at", "updated_at", "id")
		if err != nil {
			return nil, err
		}

		var subcategories []models.Subcategory
		if err := paginate(query, params).Find(&subcategories).Error; err != nil {
			return nil, err
		}
		return &subcategoriesResult{Subcategories: subcategories, Total: total}, nil
	}

	if !r.cacheable() {
		result, err := load()
		if err != nil {
			return nil, 0, translateError(err)
		}
		return result.Subcategories, result.Total, nil
	}

	var result subcategoriesResult
	err := r.cache.GetOrSetJSON(ctx, generateListCacheKey("subcategories:list", params), &result, TaxonomyCacheTTL, func() (any, error) {
		return load()
	})
	if err != nil {
		return nil, 0, translateError(err)
	}
	return result.Subcategories, result.Total, nil
}

func (r *Repository) UpdateSubcategory(ctx context.Context, subcategory *models.Subcategory) error {
	err := r.db.WithContext(ctx).Model(subcategory).
		Select("title", "description", "active", "updated_at").
		Updates(subcategory).Error
	if err == nil {
		r.invalidate(ctx, []string{fmt.Sprintf("subcategory:%d", subcategory.ID)}, "subcategories:list:*")
	}
	return translateError(err)
}

func (r *Repository) DeleteSubcategory(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Subcategory{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidate(ctx, []string{fmt.Sprintf("subcategory:%d", id)}, "subcategories:list:*")
	return nil
}

// Brand operations

func (r *Repository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	err := r.db.WithContext(ctx).Create(brand).Error
	if err == nil {
		r.invalidate(ctx, nil, "brands:list:*")
	}
	return translateError(err)
}

func (r *Repository) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	load := func() (*models.Brand, error) {
		var brand models.Brand
		if err := r.db.WithContext(ctx).First(&brand, id).Error; err != nil {
			return nil, translateError(err)
		}
		return &brand, nil
	}

	if !r.cacheable() {
		return load()
	}

	var brand models.Brand
	err := r.cache.GetOrSetJSON(ctx, fmt.Sprintf("brand:%d", id), &brand, TaxonomyCacheTTL, func() (any, error) {
		return load()
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &brand, nil
}

func (r *Repository) ListBrands(ctx context.Context, params models.ListParams) ([]models.Brand, int64, error) {
	load := func() (*brandsResult, error) {
		query := r.db.WithContext(ctx).Model(&models.Brand{})
		if params.Active != nil {
			query = query.Where("active = ?", *params.Active)
		}
		if params.Search != "" {
			query = query.Where("title ILIKE ?", "%"+params.Search+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return nil, err
		}

		query, err := applyOrdering(query, params.Ordering, "title", "title", "created_at", "updated_at", "id")
		if err != nil {
			return nil, err
		}

		var brands []models.Brand
		if err := paginate(query, params).Find(&brands).Error; err != nil {
			return nil, err
		}
		return &brandsResult{Brands: brands, Total: total}, nil
	}

	if !r.cacheable() {
		result, err := load()
		if err != nil {
			return nil, 0, translateError(err)
		}
		return result.Brands, result.Total, nil
	}

	var result brandsResult
	err := r.cache.GetOrSetJSON(ctx, generateListCacheKey("brands:list", params), &result, TaxonomyCacheTTL, func() (any, error) {
		return load()
	})
	if err != nil {
		return nil, 0, translateError(err)
	}
	return result.Brands, result.Total, nil
}

func (r *Repository) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	err := r.db.WithContext(ctx).Model(brand).
		Select("title", "description", "logo_url", "active", "updated_at").
		Updates(brand).Error
	if err == nil {
		r.invalidate(ctx, []string{fmt.Sprintf("brand:%d", brand.ID)}, "brands:list:*")
	}
	return translateError(err)
}

func (r *Repository) DeleteBrand(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Brand{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidate(ctx, []string{fmt.Sprintf("brand:%d", id)}, "brands:list:*")
	return nil
}
