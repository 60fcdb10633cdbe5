package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Product is a sellable catalog item.
// DiscountedPrice is derived from Price, DiscountType and DiscountValue on every write.
// Slug and SKU are assigned once at creation. TotalStock only moves through the stock ledger.
type Product struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text"`
	Slug        string `json:"slug" gorm:"size:280;not null;uniqueIndex"`
	SKU         string `json:"sku" gorm:"size:64;not null;uniqueIndex"`

	MRP             decimal.Decimal `json:"mrp" gorm:"type:decimal(12,2);not null"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	CostPrice       decimal.Decimal `json:"costPrice" gorm:"type:decimal(12,2);not null"`
	DiscountType    DiscountType    `json:"discountType" gorm:"size:20;not null"`
	DiscountValue   decimal.Decimal `json:"discountValue" gorm:"type:decimal(12,2);not null"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice" gorm:"type:decimal(12,2);not null"`

	TotalStock        int  `json:"totalStock" gorm:"not null"`
	LowStockThreshold int  `json:"lowStockThreshold" gorm:"not null"`
	Active            bool `json:"active" gorm:"not null;index"`

	CategoryID    uint         `json:"categoryId" gorm:"not null;index"`
	Category      *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	SubcategoryID *uint        `json:"subcategoryId,omitempty" gorm:"index"`
	Subcategory   *Subcategory `json:"subcategory,omitempty" gorm:"foreignKey:SubcategoryID"`
	BrandID       uint         `json:"brandId" gorm:"not null;index"`
	Brand         *Brand       `json:"brand,omitempty" gorm:"foreignKey:BrandID"`

	Specifications datatypes.JSONMap `json:"specifications" gorm:"type:jsonb"`

	Variants []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	Images   []ProductImage   `json:"images,omitempty" gorm:"foreignKey:ProductID"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

type ProductVariant struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	ProductID  uint              `json:"productId" gorm:"not null;index"`
	Title      string            `json:"title" gorm:"size:255;not null"`
	SKU        string            `json:"sku" gorm:"size:64;not null;uniqueIndex"`
	Price      *decimal.Decimal  `json:"price,omitempty" gorm:"type:decimal(12,2)"`
	Attributes datatypes.JSONMap `json:"attributes" gorm:"type:jsonb"`
	Active     bool              `json:"active" gorm:"not null"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// ProductImage references media stored elsewhere by an opaque URI
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"productId" gorm:"not null;index"`
	VariantID *uint  `json:"variantId,omitempty" gorm:"index"`
	URL       string `json:"url" gorm:"size:1000;not null"`
	AltText   string `json:"altText,omitempty" gorm:"size:255"`
	Position  int    `json:"position" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

// Request DTOs

type CreateProductRequest struct {
	Title             string                 `json:"title" binding:"required"`
	Description       string                 `json:"description"`
	Slug              string                 `json:"slug"`
	SKU               string                 `json:"sku"`
	MRP               decimal.Decimal        `json:"mrp"`
	Price             decimal.Decimal        `json:"price"`
	CostPrice         decimal.Decimal        `json:"costPrice"`
	DiscountType      DiscountType           `json:"discountType"`
	DiscountValue     decimal.Decimal        `json:"discountValue"`
	InitialStock      int                    `json:"initialStock"`
	LowStockThreshold *int                   `json:"lowStockThreshold"`
	Active            *bool                  `json:"active"`
	CategoryID        uint                   `json:"categoryId" binding:"required"`
	SubcategoryID     *uint                  `json:"subcategoryId"`
	BrandID           uint                   `json:"brandId" binding:"required"`
	Specifications    map[string]interface{} `json:"specifications"`
}

// UpdateProductRequest has no slug, sku or stock fields; those are not editable.
type UpdateProductRequest struct {
	Title             *string                `json:"title"`
	Description       *string                `json:"description"`
	MRP               *decimal.Decimal       `json:"mrp"`
	Price             *decimal.Decimal       `json:"price"`
	CostPrice         *decimal.Decimal       `json:"costPrice"`
	DiscountType      *DiscountType          `json:"discountType"`
	DiscountValue     *decimal.Decimal       `json:"discountValue"`
	LowStockThreshold *int                   `json:"lowStockThreshold"`
	Active            *bool                  `json:"active"`
	CategoryID        *uint                  `json:"categoryId"`
	SubcategoryID     *uint                  `json:"subcategoryId"`
	BrandID           *uint                  `json:"brandId"`
	Specifications    map[string]interface{} `json:"specifications"`
}

type CreateVariantRequest struct {
	Title      string                 `json:"title" binding:"required"`
	SKU        string                 `json:"sku"`
	Price      *decimal.Decimal       `json:"price"`
	Attributes map[string]interface{} `json:"attributes"`
	Active     *bool                  `json:"active"`
}

type UpdateVariantRequest struct {
	Title      *string                `json:"title"`
	Price      *decimal.Decimal       `json:"price"`
	Attributes map[string]interface{} `json:"attributes"`
	Active     *bool                  `json:"active"`
}

type CreateImageRequest struct {
	URL       string `json:"url" binding:"required"`
	VariantID *uint  `json:"variantId"`
	AltText   string `json:"altText"`
	Position  int    `json:"position"`
}

type UpdateImageRequest struct {
	AltText  *string `json:"altText"`
	Position *int    `json:"position"`
}
