package repository

import (
	"context"
	"fmt"

	"catalog-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productsResult struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

func productKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// invalidateProductCaches invalidates all caches related to a product
func (r *Repository) invalidateProductCaches(ctx context.Context, productID uint) {
	r.invalidate(ctx, []string{productKey(productID)}, "products:list:*")
}

// Product CRUD Operations

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(product).Error
	if err == nil {
		r.invalidate(ctx, nil, "products:list:*")
	}
	return translateError(err)
}

// GetProduct retrieves a product with its variants and images, cached outside transactions
func (r *Repository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	load := func() (*models.Product, error) {
		var product models.Product
		err := r.db.WithContext(ctx).
			Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
			First(&product, id).Error
		if err != nil {
			return nil, translateError(err)
		}
		return &product, nil
	}

	if !r.cacheable() {
		return load()
	}

	var product models.Product
	err := r.cache.GetOrSetJSON(ctx, productKey(id), &product, ProductCacheTTL, func() (any, error) {
		return load()
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// GetProductBySlug resolves the slug to an id (slugs never change) and loads the product
func (r *Repository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	lookup := func() (uint, error) {
		var product models.Product
		if err := r.db.WithContext(ctx).Select("id").Where("slug = ?", slug).First(&product).Error; err != nil {
			return 0, translateError(err)
		}
		return product.ID, nil
	}

	var id uint
	if r.cacheable() {
		err := r.cache.GetOrSetJSON(ctx, "product:slug:"+slug, &id, ProductCacheTTL, func() (any, error) {
			return lookup()
		})
		if err != nil {
			return nil, translateError(err)
		}
	} else {
		var err error
		if id, err = lookup(); err != nil {
			return nil, err
		}
	}

	return r.GetProduct(ctx, id)
}

func (r *Repository) ListProducts(ctx context.Context, params models.ListParams) ([]models.Product, int64, error) {
	load := func() (*productsResult, error) {
		query := r.db.WithContext(ctx).Model(&models.Product{})
		if params.Active != nil {
			query = query.Where("active = ?", *params.Active)
		}
		if params.CategoryID != nil {
			query = query.Where("category_id = ?", *params.CategoryID)
		}
		if params.SubcategoryID != nil {
			query = query.Where("subcategory_id = ?", *params.SubcategoryID)
		}
		if params.BrandID != nil {
			query = query.Where("brand_id = ?", *params.BrandID)
		}
		if params.Search != "" {
			search := "%" + params.Search + "%"
			query = query.Where("title ILIKE ? OR sku ILIKE ?", search, search)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return nil, err
		}

		query, err := applyOrdering(query, params.Ordering, "-created_at",
			"created_at", "updated_at", "title", "price", "discounted_price", "total_stock", "id")
		if err != nil {
			return nil, err
		}

		var products []models.Product
		if err := paginate(query, params).Find(&products).Error; err != nil {
			return nil, err
		}
		return &productsResult{Products: products, Total: total}, nil
	}

	if !r.cacheable() {
		result, err := load()
		if err != nil {
			return nil, 0, translateError(err)
		}
		return result.Products, result.Total, nil
	}

	var result productsResult
	err := r.cache.GetOrSetJSON(ctx, generateListCacheKey("products:list", params), &result, ProductListCacheTTL, func() (any, error) {
		return load()
	})
	if err != nil {
		return nil, 0, translateError(err)
	}
	return result.Products, result.Total, nil
}

// UpdateProduct persists editable fields. Slug, SKU and stock are never written here.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) error {
	err := r.db.WithContext(ctx).Model(product).
		Select("title", "description", "mrp", "price", "cost_price", "discount_type", "discount_value",
			"discounted_price", "low_stock_threshold", "active", "category_id", "subcategory_id", "brand_id",
			"specifications", "updated_at").
		Updates(product).Error
	if err == nil {
		r.invalidateProductCaches(ctx, product.ID)
	}
	return translateError(err)
}

func (r *Repository) DeleteProduct(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateProductCaches(ctx, id)
	return nil
}

// GetProductForUpdate locks the product row until the surrounding transaction ends
func (r *Repository) GetProductForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// GetProductForRestock locks the product row even when the product has been
// deleted, so stock held by past orders can still be returned to it.
func (r *Repository) GetProductForRestock(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Unscoped().
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// SetProductStock writes the stock counter. Callers hold the row lock.
func (r *Repository) SetProductStock(ctx context.Context, id uint, stock int) error {
	result := r.db.WithContext(ctx).Unscoped().Model(&models.Product{}).
		Where("id = ?", id).
		Update("total_stock", stock)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateProductCaches(ctx, id)
	return nil
}

// Variant operations

func (r *Repository) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	err := r.db.WithContext(ctx).Create(variant).Error
	if err == nil {
		r.invalidateProductCaches(ctx, variant.ProductID)
	}
	return translateError(err)
}

func (r *Repository) GetVariant(ctx context.Context, productID, variantID uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		First(&variant).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &variant, nil
}

func (r *Repository) ListVariants(ctx context.Context, productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&variants).Error
	return variants, translateError(err)
}

func (r *Repository) UpdateVariant(ctx context.Context, variant *models.ProductVariant) error {
	err := r.db.WithContext(ctx).Model(variant).
		Select("title", "price", "attributes", "active", "updated_at").
		Updates(variant).Error
	if err == nil {
		r.invalidateProductCaches(ctx, variant.ProductID)
	}
	return translateError(err)
}

func (r *Repository) DeleteVariant(ctx context.Context, productID, variantID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		Delete(&models.ProductVariant{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateProductCaches(ctx, productID)
	return nil
}

// Image operations

func (r *Repository) CreateImage(ctx context.Context, image *models.ProductImage) error {
	err := r.db.WithContext(ctx).Create(image).Error
	if err == nil {
		r.invalidateProductCaches(ctx, image.ProductID)
	}
	return translateError(err)
}

func (r *Repository) GetImage(ctx context.Context, productID, imageID uint) (*models.ProductImage, error) {
	var image models.ProductImage
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		First(&image).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &image, nil
}

func (r *Repository) ListImages(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC, id ASC").
		Find(&images).Error
	return images, translateError(err)
}

func (r *Repository) UpdateImage(ctx context.Context, image *models.ProductImage) error {
	err := r.db.WithContext(ctx).Model(image).
		Select("alt_text", "position", "updated_at").
		Updates(image).Error
	if err == nil {
		r.invalidateProductCaches(ctx, image.ProductID)
	}
	return translateError(err)
}

func (r *Repository) DeleteImage(ctx context.Context, productID, imageID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&models.ProductImage{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidateProductCaches(ctx, productID)
	return nil
}

// Stock ledger

// CreateStockMovement appends a ledger row; movements are never updated or deleted
func (r *Repository) CreateStockMovement(ctx context.Context, movement *models.StockMovement) error {
	return translateError(r.db.WithContext(ctx).Create(movement).Error)
}

func (r *Repository) ListStockMovements(ctx context.Context, productID uint, params models.ListParams) ([]models.StockMovement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StockMovement{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var movements []models.StockMovement
	err := paginate(query.Order("created_at DESC, id DESC"), params).Find(&movements).Error
	return movements, total, translateError(err)
}
