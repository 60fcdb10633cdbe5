package services

import (
	"context"
	"fmt"
	"strings"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// ReviewService manages product reviews, one per user and product
type ReviewService struct {
	repo   repository.Store
	logger *logrus.Entry
}

func NewReviewService(repo repository.Store, logger *logrus.Logger) *ReviewService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ReviewService{
		repo:   repo,
		logger: logger.WithField("component", "review-service"),
	}
}

func validateRating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return invalid("rating", "must be between %d and %d", models.MinRating, models.MaxRating)
	}
	return nil
}

func (s *ReviewService) CreateReview(ctx context.Context, userID string, productID uint, req models.CreateReviewRequest) (*models.Review, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, translate(err, "product", productID)
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     strings.TrimSpace(req.Title),
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, translate(err, "review", productID)
	}

	s.logger.WithFields(logrus.Fields{
		"reviewId":  review.ID,
		"productId": productID,
		"rating":    review.Rating,
	}).Debug("Review created")
	return review, nil
}

func (s *ReviewService) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return nil, translate(err, "review", id)
	}
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID uint, params models.ListParams) ([]models.Review, int64, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, 0, translate(err, "product", productID)
	}
	reviews, total, err := s.repo.ListReviews(ctx, productID, params)
	if err != nil {
		return nil, 0, translate(err, "review", nil)
	}
	return reviews, total, nil
}

// ownReview loads a review written by userID; other users' reviews are reported as not found
func (s *ReviewService) ownReview(ctx context.Context, userID string, id uint) (*models.Review, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	review, err := s.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, fmt.Errorf("%w: review %d", ErrNotFound, id)
	}
	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, userID string, id uint, req models.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.ownReview(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		if err := validateRating(*req.Rating); err != nil {
			return nil, err
		}
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = strings.TrimSpace(*req.Title)
	}
	if req.Comment != nil {
		review.Comment = strings.TrimSpace(*req.Comment)
	}

	if err := s.repo.UpdateReview(ctx, review); err != nil {
		return nil, translate(err, "review", id)
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID string, id uint) error {
	if _, err := s.ownReview(ctx, userID, id); err != nil {
		return err
	}
	return translate(s.repo.DeleteReview(ctx, id), "review", id)
}

// RatingSummary returns the product's average rating and review count
func (s *ReviewService) RatingSummary(ctx context.Context, productID uint) (*models.RatingSummary, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, translate(err, "product", productID)
	}
	summary, err := s.repo.GetRatingSummary(ctx, productID)
	if err != nil {
		return nil, translate(err, "rating", productID)
	}
	return summary, nil
}
