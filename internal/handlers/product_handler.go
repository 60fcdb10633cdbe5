package handlers

import (
	"net/http"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
	"github.com/gin-gonic/gin"
)

// ProductHandler serves products with their variants, images and stock ledger
type ProductHandler struct {
	products  *services.ProductService
	inventory *services.InventoryService
	paging    Paging
}

func NewProductHandler(products *services.ProductService, inventory *services.InventoryService, paging Paging) *ProductHandler {
	return &ProductHandler{products: products, inventory: inventory, paging: paging}
}

func (h *ProductHandler) RegisterRoutes(api *gin.RouterGroup) {
	products := api.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/export", h.ExportProducts)
		products.GET("/slug/:slug", h.GetProductBySlug)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.PATCH("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)

		products.GET("/:id/variants", h.ListVariants)
		products.POST("/:id/variants", h.CreateVariant)
		products.PUT("/:id/variants/:variantId", h.UpdateVariant)
		products.PATCH("/:id/variants/:variantId", h.UpdateVariant)
		products.DELETE("/:id/variants/:variantId", h.DeleteVariant)

		products.GET("/:id/images", h.ListImages)
		products.POST("/:id/images", h.CreateImage)
		products.PUT("/:id/images/:imageId", h.UpdateImage)
		products.PATCH("/:id/images/:imageId", h.UpdateImage)
		products.DELETE("/:id/images/:imageId", h.DeleteImage)

		products.POST("/:id/stock", h.UpdateStock)
		products.GET("/:id/stock", h.ListStockMovements)
	}
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param active query bool false "Filter by active flag"
// @Param category_id query int false "Filter by category"
// @Param subcategory_id query int false "Filter by subcategory"
// @Param brand_id query int false "Filter by brand"
// @Param search query string false "Title contains"
// @Param ordering query string false "created_at, price, title, total_stock, ... prefix - for descending"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params, ok := h.paging.listParams(c)
	if !ok {
		return
	}
	products, total, err := h.products.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, products, params, total)
}

// CreateProduct godoc
// @Summary Create product
// @Description Assigns slug and SKU when omitted and records initial stock as a purchase
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.products.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, product)
}

func (h *ProductHandler) GetProductBySlug(c *gin.Context) {
	product, err := h.products.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.products.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Product deleted")
}

// Variants

func (h *ProductHandler) ListVariants(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	variants, err := h.products.ListVariants(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, variants)
}

func (h *ProductHandler) CreateVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.CreateVariantRequest
	if !bindJSON(c, &req) {
		return
	}
	variant, err := h.products.CreateVariant(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, variant)
}

func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseID(c, "variantId")
	if !ok {
		return
	}
	var req models.UpdateVariantRequest
	if !bindJSON(c, &req) {
		return
	}
	variant, err := h.products.UpdateVariant(c.Request.Context(), id, variantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, variant)
}

func (h *ProductHandler) DeleteVariant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseID(c, "variantId")
	if !ok {
		return
	}
	if err := h.products.DeleteVariant(c.Request.Context(), id, variantID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Variant deleted")
}

// Images

func (h *ProductHandler) ListImages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	images, err := h.products.ListImages(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, images)
}

func (h *ProductHandler) CreateImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.CreateImageRequest
	if !bindJSON(c, &req) {
		return
	}
	image, err := h.products.CreateImage(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, image)
}

func (h *ProductHandler) UpdateImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		return
	}
	var req models.UpdateImageRequest
	if !bindJSON(c, &req) {
		return
	}
	image, err := h.products.UpdateImage(c.Request.Context(), id, imageID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, image)
}

func (h *ProductHandler) DeleteImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		return
	}
	if err := h.products.DeleteImage(c.Request.Context(), id, imageID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Image deleted")
}

// Stock

// UpdateStock godoc
// @Summary Record a stock movement
// @Description purchase and restock add to stock, sale removes from it; stock never goes below zero
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param movement body models.UpdateStockRequest true "Movement"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /products/{id}/stock [post]
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateStockRequest
	if !bindJSON(c, &req) {
		return
	}
	change, err := h.inventory.UpdateStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, change)
}

func (h *ProductHandler) ListStockMovements(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	params, ok := h.paging.listParams(c)
	if !ok {
		return
	}
	movements, total, err := h.inventory.ListMovements(c.Request.Context(), id, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, movements, params, total)
}
