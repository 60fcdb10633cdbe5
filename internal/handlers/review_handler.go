package handlers

import (
	"net/http"

	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/services"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews *services.ReviewService
	paging  Paging
}

func NewReviewHandler(reviews *services.ReviewService, paging Paging) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, paging: paging}
}

// RegisterRoutes mounts the review endpoints. Reads are public, writes need an acting user.
func (h *ReviewHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/products/:id/reviews", h.ListReviews)
	api.GET("/products/:id/rating", h.GetRatingSummary)
	api.GET("/reviews/:id", h.GetReview)

	authed := api.Group("", middleware.UserMiddleware())
	authed.POST("/products/:id/reviews", h.CreateReview)
	authed.PUT("/reviews/:id", h.UpdateReview)
	authed.PATCH("/reviews/:id", h.UpdateReview)
	authed.DELETE("/reviews/:id", h.DeleteReview)
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	params, ok := h.paging.listParams(c)
	if !ok {
		return
	}
	reviews, total, err := h.reviews.ListReviews(c.Request.Context(), productID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, reviews, params, total)
}

// CreateReview godoc
// @Summary Review a product
// @Description One review per user and product; rating must be between 1 and 5
// @Tags reviews
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Acting user"
// @Param id path int true "Product ID"
// @Param review body models.CreateReviewRequest true "Review"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /products/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.reviews.CreateReview(c.Request.Context(), middleware.GetUserID(c), productID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, review)
}

func (h *ReviewHandler) GetRatingSummary(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	summary, err := h.reviews.RatingSummary(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	review, err := h.reviews.GetReview(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.reviews.UpdateReview(c.Request.Context(), middleware.GetUserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.reviews.DeleteReview(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Review deleted")
}
