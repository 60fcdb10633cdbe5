package repository

import (
	"context"
	"fmt"

	"catalog-service/internal/models"
)

func ratingKey(productID uint) string {
	return fmt.Sprintf("rating:%d", productID)
}

func (r *Repository) CreateReview(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	if err == nil {
		r.invalidate(ctx, []string{ratingKey(review.ProductID)})
	}
	return translateError(err)
}

func (r *Repository) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

func (r *Repository) ListReviews(ctx context.Context, productID uint, params models.ListParams) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query, err := applyOrdering(query, params.Ordering, "-created_at", "created_at", "rating", "id")
	if err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err = paginate(query, params).Find(&reviews).Error
	return reviews, total, translateError(err)
}

func (r *Repository) UpdateReview(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Model(review).
		Select("rating", "title", "comment", "updated_at").
		Updates(review).Error
	if err == nil {
		r.invalidate(ctx, []string{ratingKey(review.ProductID)})
	}
	return translateError(err)
}

func (r *Repository) DeleteReview(ctx context.Context, id uint) error {
	var review models.Review
	if err := r.db.WithContext(ctx).Select("id", "product_id").First(&review, id).Error; err != nil {
		return translateError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Review{}, id).Error; err != nil {
		return translateError(err)
	}
	r.invalidate(ctx, []string{ratingKey(review.ProductID)})
	return nil
}

// GetRatingSummary aggregates the product's reviews at read time
func (r *Repository) GetRatingSummary(ctx context.Context, productID uint) (*models.RatingSummary, error) {
	load := func() (*models.RatingSummary, error) {
		var row struct {
			Average float64
			Count   int64
		}
		err := r.db.WithContext(ctx).Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
			Where("product_id = ?", productID).
			Scan(&row).Error
		if err != nil {
			return nil, translateError(err)
		}
		return &models.RatingSummary{ProductID: productID, Average: row.Average, Count: row.Count}, nil
	}

	if !r.cacheable() {
		return load()
	}

	var summary models.RatingSummary
	err := r.cache.GetOrSetJSON(ctx, ratingKey(productID), &summary, ProductCacheTTL, func() (any, error) {
		return load()
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &summary, nil
}
