package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_reviews_product_user"`
	UserID    string    `json:"userId" gorm:"size:128;not null;uniqueIndex:idx_reviews_product_user"`
	Rating    int       `json:"rating" gorm:"not null"`
	Title     string    `json:"title" gorm:"size:255"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Review) TableName() string {
	return "reviews"
}

type RatingSummary struct {
	ProductID uint    `json:"productId"`
	Average   float64 `json:"average"`
	Count     int64   `json:"count"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}
