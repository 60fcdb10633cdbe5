package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Category is the top level of the catalog taxonomy
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:255;not null"`
	Slug        string `json:"slug" gorm:"size:280;not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
	IconURL     string `json:"iconUrl,omitempty" gorm:"size:500"`
	ImageURL    string `json:"imageUrl,omitempty" gorm:"size:500"`
	Active      bool   `json:"active" gorm:"not null"`

	// AllowedSpecKeys restricts the specification keys of products in this category.
	// Empty means any key is accepted.
	AllowedSpecKeys pq.StringArray `json:"allowedSpecKeys" gorm:"type:text[]"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Category) TableName() string {
	return "categories"
}

// Subcategory belongs to exactly one Category
type Subcategory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CategoryID  uint      `json:"categoryId" gorm:"not null;index"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"size:280;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	Active      bool      `json:"active" gorm:"not null"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Subcategory) TableName() string {
	return "subcategories"
}

type Brand struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:255;not null"`
	Slug        string `json:"slug" gorm:"size:280;not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
	LogoURL     string `json:"logoUrl,omitempty" gorm:"size:500"`
	Active      bool   `json:"active" gorm:"not null"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Brand) TableName() string {
	return "brands"
}

// Request DTOs

type CreateCategoryRequest struct {
	Title           string   `json:"title" binding:"required"`
	Slug            string   `json:"slug"`
	Description     string   `json:"description"`
	IconURL         string   `json:"iconUrl"`
	ImageURL        string   `json:"imageUrl"`
	Active          *bool    `json:"active"`
	AllowedSpecKeys []string `json:"allowedSpecKeys"`
}

type UpdateCategoryRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	IconURL         *string  `json:"iconUrl"`
	ImageURL        *string  `json:"imageUrl"`
	Active          *bool    `json:"active"`
	AllowedSpecKeys []string `json:"allowedSpecKeys"`
}

type CreateSubcategoryRequest struct {
	CategoryID  uint   `json:"categoryId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

type UpdateSubcategoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type CreateBrandRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
	Active      *bool  `json:"active"`
}

type UpdateBrandRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl"`
	Active      *bool   `json:"active"`
}
