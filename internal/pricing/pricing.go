// Package pricing derives payable prices from list prices and discount rules.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"catalog-service/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice       = errors.New("price must not be negative")
	ErrNegativeDiscount    = errors.New("discount value must not be negative")
	ErrPercentageTooLarge  = errors.New("percentage discount must not exceed 100")
	ErrUnknownDiscountType = errors.New("unknown discount type")
)

var hundred = decimal.NewFromInt(100)

// Normalize maps the empty discount type to DiscountNone
func Normalize(discountType models.DiscountType) models.DiscountType {
	if discountType == "" {
		return models.DiscountNone
	}
	return discountType
}

// Validate checks a price and its discount rule
func Validate(price decimal.Decimal, discountType models.DiscountType, value decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if value.IsNegative() {
		return ErrNegativeDiscount
	}
	switch Normalize(discountType) {
	case models.DiscountNone, models.DiscountFixed:
		return nil
	case models.DiscountPercentage:
		if value.GreaterThan(hundred) {
			return ErrPercentageTooLarge
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDiscountType, discountType)
	}
}

// DiscountedPrice applies the discount rule to price, rounded to cents and clamped at zero.
// Unknown discount types leave the price unchanged; callers validate first.
func DiscountedPrice(price decimal.Decimal, discountType models.DiscountType, value decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch Normalize(discountType) {
	case models.DiscountPercentage:
		discount = price.Mul(value).Div(hundred)
	case models.DiscountFixed:
		discount = value
	default:
		discount = decimal.Zero
	}

	result := price.Sub(discount).Round(2)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}

// Apply recomputes the product's discounted price from its current price fields
func Apply(product *models.Product) {
	product.DiscountType = Normalize(product.DiscountType)
	product.DiscountedPrice = DiscountedPrice(product.Price, product.DiscountType, product.DiscountValue)
}

// Quote returns the lowest price payable for product at time at, considering
// the product's own discount and every promotion live at that moment.
func Quote(product *models.Product, promotions []models.Promotion, at time.Time) models.PriceQuote {
	own := DiscountedPrice(product.Price, product.DiscountType, product.DiscountValue)
	quote := models.PriceQuote{
		ProductID:       product.ID,
		Price:           product.Price,
		DiscountedPrice: own,
		FinalPrice:      own,
		QuotedAt:        at,
	}

	for i := range promotions {
		promo := &promotions[i]
		if promo.ProductID != product.ID || !promo.LiveAt(at) {
			continue
		}
		candidate := DiscountedPrice(product.Price, promo.DiscountType, promo.DiscountValue)
		if candidate.LessThan(quote.FinalPrice) {
			quote.FinalPrice = candidate
			id := promo.ID
			quote.PromotionID = &id
		}
	}

	return quote
}
