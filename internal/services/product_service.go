package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"catalog-service/internal/models"
	"catalog-service/internal/pricing"
	"catalog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ProductService manages products, their variants and images
type ProductService struct {
	repo                     repository.Store
	events                   EventPublisher
	logger                   *logrus.Entry
	defaultLowStockThreshold int
}

func NewProductService(repo repository.Store, publisher EventPublisher, logger *logrus.Logger, defaultLowStockThreshold int) *ProductService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProductService{
		repo:                     repo,
		events:                   publisherOrNoop(publisher),
		logger:                   logger.WithField("component", "product-service"),
		defaultLowStockThreshold: defaultLowStockThreshold,
	}
}

// generateSKU builds "{brandID}-{8 hex chars}" from a fresh random UUID
func generateSKU(brandID uint) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%d-%s", brandID, random[:8])
}

// validateSpecifications accepts a flat object whose values are scalars.
// When allowed is non-empty every key must be listed in it.
func validateSpecifications(field string, specs map[string]interface{}, allowed []string) error {
	var permitted map[string]struct{}
	if len(allowed) > 0 {
		permitted = make(map[string]struct{}, len(allowed))
		for _, k := range allowed {
			permitted[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return invalid(field, "keys must not be empty")
		}
		if permitted != nil {
			if _, ok := permitted[k]; !ok {
				return invalid(field, "key %q is not allowed for this category", k)
			}
		}
		switch specs[k].(type) {
		case nil, string, bool, float64, float32, int, int32, int64, uint, uint32, uint64:
		default:
			return invalid(field, "value of %q must be a string, number or boolean", k)
		}
	}
	return nil
}

func validatePriceFields(mrp, price, cost decimal.Decimal, discountType models.DiscountType, discountValue decimal.Decimal) error {
	if mrp.IsNegative() {
		return invalid("mrp", "must not be negative")
	}
	if cost.IsNegative() {
		return invalid("costPrice", "must not be negative")
	}
	for _, money := range []struct {
		field  string
		amount decimal.Decimal
	}{
		{"mrp", mrp},
		{"price", price},
		{"costPrice", cost},
		{"discountValue", discountValue},
	} {
		if err := validateMoney(money.field, money.amount); err != nil {
			return err
		}
	}
	switch err := pricing.Validate(price, discountType, discountValue); {
	case err == nil:
		return nil
	case errors.Is(err, pricing.ErrNegativePrice):
		return invalid("price", "must not be negative")
	case errors.Is(err, pricing.ErrUnknownDiscountType):
		return invalid("discountType", "must be one of none, percentage, fixed")
	default:
		return invalid("discountValue", "%s", err.Error())
	}
}

// resolveTaxonomy checks that the referenced category, brand and optional
// subcategory exist, are active and fit together. It returns the category so
// callers can apply its specification key rules.
func (s *ProductService) resolveTaxonomy(ctx context.Context, categoryID uint, subcategoryID *uint, brandID uint) (*models.Category, error) {
	if categoryID == 0 {
		return nil, invalid("categoryId", "is required")
	}
	if brandID == 0 {
		return nil, invalid("brandId", "is required")
	}

	category, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, translate(err, "category", categoryID)
	}
	if !category.Active {
		return nil, invalid("categoryId", "category %d is inactive", categoryID)
	}

	brand, err := s.repo.GetBrand(ctx, brandID)
	if err != nil {
		return nil, translate(err, "brand", brandID)
	}
	if !brand.Active {
		return nil, invalid("brandId", "brand %d is inactive", brandID)
	}

	if subcategoryID != nil {
		subcategory, err := s.repo.GetSubcategory(ctx, *subcategoryID)
		if err != nil {
			return nil, translate(err, "subcategory", *subcategoryID)
		}
		if !subcategory.Active {
			return nil, invalid("subcategoryId", "subcategory %d is inactive", *subcategoryID)
		}
		if subcategory.CategoryID != categoryID {
			return nil, invalid("subcategoryId", "subcategory %d does not belong to category %d", *subcategoryID, categoryID)
		}
	}

	return category, nil
}

// CreateProduct validates the request, assigns slug and SKU, derives the
// discounted price and stores the product. A positive initial stock is written
// together with its purchase movement.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	title, err := requireTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if err := validatePriceFields(req.MRP, req.Price, req.CostPrice, req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}
	if req.InitialStock < 0 {
		return nil, invalid("initialStock", "must not be negative")
	}
	lowStock := s.defaultLowStockThreshold
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			return nil, invalid("lowStockThreshold", "must not be negative")
		}
		lowStock = *req.LowStockThreshold
	}

	category, err := s.resolveTaxonomy(ctx, req.CategoryID, req.SubcategoryID, req.BrandID)
	if err != nil {
		return nil, err
	}
	if err := validateSpecifications("specifications", req.Specifications, category.AllowedSpecKeys); err != nil {
		return nil, err
	}

	slugValue, err := assignSlug(ctx, s.repo, repository.SlugProducts, req.Slug, title)
	if err != nil {
		return nil, err
	}
	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		sku = generateSKU(req.BrandID)
	}

	product := &models.Product{
		Title:             title,
		Description:       req.Description,
		Slug:              slugValue,
		SKU:               sku,
		MRP:               req.MRP,
		Price:             req.Price,
		CostPrice:         req.CostPrice,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		TotalStock:        req.InitialStock,
		LowStockThreshold: lowStock,
		Active:            boolOr(req.Active, true),
		CategoryID:        req.CategoryID,
		SubcategoryID:     req.SubcategoryID,
		BrandID:           req.BrandID,
		Specifications:    datatypes.JSONMap(req.Specifications),
	}
	if product.Specifications == nil {
		product.Specifications = datatypes.JSONMap{}
	}
	pricing.Apply(product)

	var movement *models.StockMovement
	err = s.repo.WithTransaction(ctx, func(tx repository.Store) error {
		if err := tx.CreateProduct(ctx, product); err != nil {
			return translate(err, "product", product.Slug)
		}
		if product.TotalStock == 0 {
			return nil
		}
		movement = &models.StockMovement{
			ProductID:   product.ID,
			StockType:   models.StockPurchase,
			Quantity:    product.TotalStock,
			StockBefore: 0,
			StockAfter:  product.TotalStock,
			Note:        "initial stock",
		}
		return tx.CreateStockMovement(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"productId": product.ID,
		"slug":      product.Slug,
		"sku":       product.SKU,
	}).Info("Product created")

	s.events.ProductCreated(ctx, product)
	if movement != nil {
		s.events.StockChanged(ctx, product, movement)
	}
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, translate(err, "product", id)
	}
	return product, nil
}

func (s *ProductService) GetProductBySlug(ctx context.Context, slugValue string) (*models.Product, error) {
	product, err := s.repo.GetProductBySlug(ctx, slugValue)
	if err != nil {
		return nil, translate(err, "product", slugValue)
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, params models.ListParams) ([]models.Product, int64, error) {
	products, total, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return nil, 0, translate(err, "product", nil)
	}
	return products, total, nil
}

// UpdateProduct applies editable fields and recomputes the discounted price.
// Slug, SKU and stock cannot be changed here.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := *product

	var changed []string
	mark := func(field string) { changed = append(changed, field) }

	if req.Title != nil {
		if product.Title, err = requireTitle(*req.Title); err != nil {
			return nil, err
		}
		mark("title")
	}
	if req.Description != nil {
		product.Description = *req.Description
		mark("description")
	}
	if req.MRP != nil {
		product.MRP = *req.MRP
		mark("mrp")
	}
	if req.Price != nil {
		product.Price = *req.Price
		mark("price")
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
		mark("costPrice")
	}
	if req.DiscountType != nil {
		product.DiscountType = *req.DiscountType
		mark("discountType")
	}
	if req.DiscountValue != nil {
		product.DiscountValue = *req.DiscountValue
		mark("discountValue")
	}
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			return nil, invalid("lowStockThreshold", "must not be negative")
		}
		product.LowStockThreshold = *req.LowStockThreshold
		mark("lowStockThreshold")
	}
	if req.Active != nil {
		product.Active = *req.Active
		mark("active")
	}

	taxonomyChanged := false
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
		taxonomyChanged = true
		mark("categoryId")
	}
	if req.SubcategoryID != nil {
		product.SubcategoryID = req.SubcategoryID
		taxonomyChanged = true
		mark("subcategoryId")
	}
	if req.BrandID != nil {
		product.BrandID = *req.BrandID
		taxonomyChanged = true
		mark("brandId")
	}
	if req.Specifications != nil {
		product.Specifications = datatypes.JSONMap(req.Specifications)
		mark("specifications")
	}

	if err := validatePriceFields(product.MRP, product.Price, product.CostPrice, product.DiscountType, product.DiscountValue); err != nil {
		return nil, err
	}

	if taxonomyChanged || req.Specifications != nil {
		category, err := s.resolveTaxonomy(ctx, product.CategoryID, product.SubcategoryID, product.BrandID)
		if err != nil {
			return nil, err
		}
		if err := validateSpecifications("specifications", product.Specifications, category.AllowedSpecKeys); err != nil {
			return nil, err
		}
	}

	pricing.Apply(product)
	if !product.DiscountedPrice.Equal(previous.DiscountedPrice) {
		mark("discountedPrice")
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, translate(err, "product", id)
	}

	s.events.ProductUpdated(ctx, product, &previous, changed)
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return translate(err, "product", id)
	}

	s.logger.WithField("productId", id).Info("Product deleted")
	s.events.ProductDeleted(ctx, product)
	return nil
}

// Variants

func (s *ProductService) CreateVariant(ctx context.Context, productID uint, req models.CreateVariantRequest) (*models.ProductVariant, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	title, err := requireTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, invalid("price", "must not be negative")
		}
		if err := validateMoney("price", *req.Price); err != nil {
			return nil, err
		}
	}
	if err := validateSpecifications("attributes", req.Attributes, nil); err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		sku = generateSKU(product.BrandID)
	}

	variant := &models.ProductVariant{
		ProductID:  product.ID,
		Title:      title,
		SKU:        sku,
		Price:      req.Price,
		Attributes: datatypes.JSONMap(req.Attributes),
		Active:     boolOr(req.Active, true),
	}
	if variant.Attributes == nil {
		variant.Attributes = datatypes.JSONMap{}
	}
	if err := s.repo.CreateVariant(ctx, variant); err != nil {
		return nil, translate(err, "variant", sku)
	}
	return variant, nil
}

func (s *ProductService) ListVariants(ctx context.Context, productID uint) ([]models.ProductVariant, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	variants, err := s.repo.ListVariants(ctx, productID)
	if err != nil {
		return nil, translate(err, "variant", nil)
	}
	return variants, nil
}

func (s *ProductService) UpdateVariant(ctx context.Context, productID, variantID uint, req models.UpdateVariantRequest) (*models.ProductVariant, error) {
	variant, err := s.repo.GetVariant(ctx, productID, variantID)
	if err != nil {
		return nil, translate(err, "variant", variantID)
	}

	if req.Title != nil {
		if variant.Title, err = requireTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, invalid("price", "must not be negative")
		}
		if err := validateMoney("price", *req.Price); err != nil {
			return nil, err
		}
		variant.Price = req.Price
	}
	if req.Attributes != nil {
		if err := validateSpecifications("attributes", req.Attributes, nil); err != nil {
			return nil, err
		}
		variant.Attributes = datatypes.JSONMap(req.Attributes)
	}
	if req.Active != nil {
		variant.Active = *req.Active
	}

	if err := s.repo.UpdateVariant(ctx, variant); err != nil {
		return nil, translate(err, "variant", variantID)
	}
	return variant, nil
}

func (s *ProductService) DeleteVariant(ctx context.Context, productID, variantID uint) error {
	return translate(s.repo.DeleteVariant(ctx, productID, variantID), "variant", variantID)
}

// Images

func (s *ProductService) CreateImage(ctx context.Context, productID uint, req models.CreateImageRequest) (*models.ProductImage, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, invalid("url", "is required")
	}
	if req.Position < 0 {
		return nil, invalid("position", "must not be negative")
	}
	if req.VariantID != nil {
		if _, err := s.repo.GetVariant(ctx, productID, *req.VariantID); err != nil {
			return nil, translate(err, "variant", *req.VariantID)
		}
	}

	image := &models.ProductImage{
		ProductID: productID,
		VariantID: req.VariantID,
		URL:       url,
		AltText:   req.AltText,
		Position:  req.Position,
	}
	if err := s.repo.CreateImage(ctx, image); err != nil {
		return nil, translate(err, "image", nil)
	}
	return image, nil
}

func (s *ProductService) ListImages(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	images, err := s.repo.ListImages(ctx, productID)
	if err != nil {
		return nil, translate(err, "image", nil)
	}
	return images, nil
}

func (s *ProductService) UpdateImage(ctx context.Context, productID, imageID uint, req models.UpdateImageRequest) (*models.ProductImage, error) {
	image, err := s.repo.GetImage(ctx, productID, imageID)
	if err != nil {
		return nil, translate(err, "image", imageID)
	}
	if req.AltText != nil {
		image.AltText = *req.AltText
	}
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, invalid("position", "must not be negative")
		}
		image.Position = *req.Position
	}
	if err := s.repo.UpdateImage(ctx, image); err != nil {
		return nil, translate(err, "image", imageID)
	}
	return image, nil
}

func (s *ProductService) DeleteImage(ctx context.Context, productID, imageID uint) error {
	return translate(s.repo.DeleteImage(ctx, productID, imageID), "image", imageID)
}
