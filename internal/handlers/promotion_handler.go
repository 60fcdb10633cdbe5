package handlers

import (
	"net/http"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	promotions *services.PromotionService
}

func NewPromotionHandler(promotions *services.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotions: promotions}
}

func (h *PromotionHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/products/:id/promotions", h.ListPromotions)
	api.POST("/products/:id/promotions", h.CreatePromotion)
	api.GET("/products/:id/quote", h.GetQuote)
	api.GET("/promotions/:id", h.GetPromotion)
	api.DELETE("/promotions/:id", h.DeletePromotion)
}

// CreatePromotion godoc
// @Summary Schedule an offer or flash sale
// @Tags promotions
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param promotion body models.CreatePromotionRequest true "Promotion"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/promotions [post]
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.CreatePromotionRequest
	if !bindJSON(c, &req) {
		return
	}
	promotion, err := h.promotions.CreatePromotion(c.Request.Context(), productID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, promotion)
}

// ListPromotions returns a product's promotions; live=true keeps only those running now
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	live, err := queryBool(c, "live")
	if err != nil {
		respondError(c, err)
		return
	}
	promotions, err := h.promotions.ListPromotions(c.Request.Context(), productID, live != nil && *live)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, promotions)
}

// GetQuote godoc
// @Summary Current price of a product
// @Description The lowest of the discounted price and any live promotion
// @Tags promotions
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/quote [get]
func (h *PromotionHandler) GetQuote(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	quote, err := h.promotions.Quote(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, quote)
}

func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	promotion, err := h.promotions.GetPromotion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, promotion)
}

func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.promotions.DeletePromotion(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Promotion deleted")
}
