package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromotionKind string

const (
	PromotionOffer     PromotionKind = "offer"
	PromotionFlashSale PromotionKind = "flash_sale"
)

// Promotion is a time-boxed discount on one product. It never changes the
// product's own discounted price; it only participates in price quotes.
type Promotion struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ProductID     uint            `json:"productId" gorm:"not null;index"`
	Kind          PromotionKind   `json:"kind" gorm:"size:20;not null"`
	Title         string          `json:"title" gorm:"size:255"`
	DiscountType  DiscountType    `json:"discountType" gorm:"size:20;not null"`
	DiscountValue decimal.Decimal `json:"discountValue" gorm:"type:decimal(12,2);not null"`
	StartsAt      time.Time       `json:"startsAt" gorm:"not null;index"`
	EndsAt        time.Time       `json:"endsAt" gorm:"not null;index"`
	Active        bool            `json:"active" gorm:"not null"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (Promotion) TableName() string {
	return "promotions"
}

// LiveAt reports whether the promotion applies at t
func (p *Promotion) LiveAt(t time.Time) bool {
	return p.Active && !t.Before(p.StartsAt) && t.Before(p.EndsAt)
}

// PriceQuote is the lowest payable price for a product at a point in time
type PriceQuote struct {
	ProductID       uint            `json:"productId"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	FinalPrice      decimal.Decimal `json:"finalPrice"`
	PromotionID     *uint           `json:"promotionId,omitempty"`
	QuotedAt        time.Time       `json:"quotedAt"`
}

type CreatePromotionRequest struct {
	Kind          PromotionKind   `json:"kind" binding:"required"`
	Title         string          `json:"title"`
	DiscountType  DiscountType    `json:"discountType" binding:"required"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	StartsAt      time.Time       `json:"startsAt" binding:"required"`
	EndsAt        time.Time       `json:"endsAt" binding:"required"`
	Active        *bool           `json:"active"`
}
