package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/pricing"
	"catalog-service/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PromotionService manages time-boxed offers and flash sales and quotes prices
type PromotionService struct {
	repo   repository.Store
	logger *logrus.Entry
	now    func() time.Time
}

func NewPromotionService(repo repository.Store, logger *logrus.Logger) *PromotionService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PromotionService{
		repo:   repo,
		logger: logger.WithField("component", "promotion-service"),
		now:    time.Now,
	}
}

// quoteProduct prices the product against the promotions live at the given time
func quoteProduct(ctx context.Context, repo repository.Store, product *models.Product, at time.Time) (models.PriceQuote, error) {
	promotions, err := repo.ListPromotions(ctx, product.ID, &at)
	if err != nil {
		return models.PriceQuote{}, translate(err, "promotion", nil)
	}
	return pricing.Quote(product, promotions, at), nil
}

func (s *PromotionService) CreatePromotion(ctx context.Context, productID uint, req models.CreatePromotionRequest) (*models.Promotion, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, translate(err, "product", productID)
	}

	switch req.Kind {
	case models.PromotionOffer, models.PromotionFlashSale:
	default:
		return nil, invalid("kind", "must be one of offer, flash_sale")
	}

	discountType := pricing.Normalize(req.DiscountType)
	if discountType == models.DiscountNone {
		return nil, invalid("discountType", "must be percentage or fixed")
	}
	if err := pricing.Validate(decimal.Zero, discountType, req.DiscountValue); err != nil {
		if errors.Is(err, pricing.ErrUnknownDiscountType) {
			return nil, invalid("discountType", "must be percentage or fixed")
		}
		return nil, invalid("discountValue", "%s", err.Error())
	}
	if !req.DiscountValue.IsPositive() {
		return nil, invalid("discountValue", "must be greater than zero")
	}
	if err := validateMoney("discountValue", req.DiscountValue); err != nil {
		return nil, err
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return nil, invalid("startsAt", "startsAt and endsAt are required")
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, invalid("endsAt", "must be after startsAt")
	}

	promotion := &models.Promotion{
		ProductID:     productID,
		Kind:          req.Kind,
		Title:         strings.TrimSpace(req.Title),
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		StartsAt:      req.StartsAt.UTC(),
		EndsAt:        req.EndsAt.UTC(),
		Active:        boolOr(req.Active, true),
	}
	if err := s.repo.CreatePromotion(ctx, promotion); err != nil {
		return nil, translate(err, "promotion", nil)
	}

	s.logger.WithFields(logrus.Fields{
		"promotionId": promotion.ID,
		"productId":   productID,
		"kind":        promotion.Kind,
	}).Info("Promotion created")
	return promotion, nil
}

func (s *PromotionService) GetPromotion(ctx context.Context, id uint) (*models.Promotion, error) {
	promotion, err := s.repo.GetPromotion(ctx, id)
	if err != nil {
		return nil, translate(err, "promotion", id)
	}
	return promotion, nil
}

// ListPromotions returns the product's promotions, only those live now when liveOnly is set
func (s *PromotionService) ListPromotions(ctx context.Context, productID uint, liveOnly bool) ([]models.Promotion, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, translate(err, "product", productID)
	}
	var at *time.Time
	if liveOnly {
		now := s.now()
		at = &now
	}
	promotions, err := s.repo.ListPromotions(ctx, productID, at)
	if err != nil {
		return nil, translate(err, "promotion", nil)
	}
	return promotions, nil
}

func (s *PromotionService) DeletePromotion(ctx context.Context, id uint) error {
	return translate(s.repo.DeletePromotion(ctx, id), "promotion", id)
}

// Quote returns the lowest price currently payable for the product
func (s *PromotionService) Quote(ctx context.Context, productID uint) (*models.PriceQuote, error) {
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, translate(err, "product", productID)
	}
	quote, err := quoteProduct(ctx, s.repo, product, s.now())
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
