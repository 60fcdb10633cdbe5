package handlers

import (
	"net/http"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves categories, subcategories and brands
type CatalogHandler struct {
	catalog *services.CatalogService
	paging  Paging
}

func NewCatalogHandler(catalog *services.CatalogService, paging Paging) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, paging: paging}
}

// RegisterRoutes mounts the taxonomy endpoints on the API group
func (h *CatalogHandler) RegisterRoutes(api *gin.RouterGroup) {
	categories := api.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.PATCH("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	subcategories := api.Group("/subcategories")
	{
		subcategories.GET("", h.ListSubcategories)
		subcategories.POST("", h.CreateSubcategory)
		subcategories.GET("/:id", h.GetSubcategory)
		subcategories.PUT("/:id", h.UpdateSubcategory)
		subcategories.PATCH("/:id", h.UpdateSubcategory)
		subcategories.DELETE("/:id", h.DeleteSubcategory)
	}

	brands := api.Group("/brands")
	{
		brands.GET("", h.ListBrands)
		brands.POST("", h.CreateBrand)
		brands.GET("/:id", h.GetBrand)
		brands.PUT("/:id", h.UpdateBrand)
		brands.PATCH("/:id", h.UpdateBrand)
		brands.DELETE("/:id", h.DeleteBrand)
	}
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param active query bool false "Filter by active flag"
// @Param search query string false "Title contains"
// @Param ordering query string false "created_at, title, ... prefix - for descending"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	params, ok := h.paging.listParams(c)
	if !ok {
		return
	}
	categories, total, err := h.catalog.ListCategories(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, categories, params, total)
}

// CreateCategory godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, category)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.catalog.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Category deleted")
}

func (h *CatalogHandler) ListSubcategories(c *gin.Context) {
	params, ok := h.paging.listParams(c)
	if !ok {
		return
	}
	subcategories, total, err := h.catalog.ListSubcategories(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, subcategories, params, total)
}

func (h *CatalogHandler) CreateSubcategory(c *gin.Context) {
	var req models.CreateSubcategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	subcategory, err := h.catalog.CreateSubcategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, subcategory)
}

func (h *CatalogHandler) GetSubcategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	subcategory, err := h.catalog.GetSubcategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, subcategory)
}

func (h *CatalogHandler) UpdateSubcategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateSubcategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	subcategory, err := h.catalog.UpdateSubcategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, subcategory)
}

func (h *CatalogHandler) DeleteSubcategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteSubcategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Subcategory deleted")
}

func (h *CatalogHandler) ListBrands(c *gin.Context) {
	params, ok := h.paging.listParams(c)
	if !ok {
		return
	}
	brands, total, err := h.catalog.ListBrands(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, brands, params, total)
}

func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req models.CreateBrandRequest
	if !bindJSON(c, &req) {
		return
	}
	brand, err := h.catalog.CreateBrand(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, brand)
}

func (h *CatalogHandler) GetBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	brand, err := h.catalog.GetBrand(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, brand)
}

func (h *CatalogHandler) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateBrandRequest
	if !bindJSON(c, &req) {
		return
	}
	brand, err := h.catalog.UpdateBrand(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, brand)
}

func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteBrand(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Brand deleted")
}
