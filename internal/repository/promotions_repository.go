package repository

import (
	"context"
	"time"

	"catalog-service/internal/models"
)

func (r *Repository) CreatePromotion(ctx context.Context, promotion *models.Promotion) error {
	return translateError(r.db.WithContext(ctx).Create(promotion).Error)
}

func (r *Repository) GetPromotion(ctx context.Context, id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.WithContext(ctx).First(&promotion, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &promotion, nil
}

// ListPromotions lists a product's promotions; with liveAt set only those applying at that instant
func (r *Repository) ListPromotions(ctx context.Context, productID uint, liveAt *time.Time) ([]models.Promotion, error) {
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if liveAt != nil {
		query = query.Where("active = ? AND starts_at <= ? AND ends_at > ?", true, *liveAt, *liveAt)
	}

	var promotions []models.Promotion
	err := query.Order("starts_at ASC, id ASC").Find(&promotions).Error
	return promotions, translateError(err)
}

func (r *Repository) DeletePromotion(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Promotion{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
