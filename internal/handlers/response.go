package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Paging bounds the page size accepted by list endpoints
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// errorStatus maps service errors to an HTTP status and error code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, services.ErrUniquenessConflict):
		return http.StatusConflict, "UNIQUENESS_CONFLICT"
	case errors.Is(err, services.ErrInsufficientStock):
		return http.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, services.ErrInsufficientFunds):
		return http.StatusConflict, "INSUFFICIENT_FUNDS"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func respondError(c *gin.Context, err error) {
	status, code := errorStatus(err)

	body := models.Error{Code: code, Message: err.Error()}
	var fieldErr *services.FieldError
	if errors.As(err, &fieldErr) {
		body.Field = fieldErr.Field
		body.Message = fieldErr.Message
	}
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		body.Message = "An internal error occurred"
	}

	c.JSON(status, models.ErrorResponse{Success: false, Error: body})
}

func respondValidation(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "VALIDATION_ERROR",
			Message: message,
			Field:   field,
		},
	})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.SuccessResponse{Success: true, Data: data})
}

func respondList(c *gin.Context, data interface{}, params models.ListParams, total int64) {
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success:    true,
		Data:       data,
		Pagination: models.NewPaginationInfo(params.Page, params.Limit, total),
	})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}

// bindJSON decodes the request body, answering 400 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondValidation(c, "", err.Error())
		return false
	}
	return true
}

// parseID reads a numeric path parameter, answering 400 when it is not a positive integer
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondValidation(c, name, "must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &services.FieldError{Field: name, Message: "must be an integer"}
	}
	return v, nil
}

func queryUint(c *gin.Context, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, &services.FieldError{Field: name, Message: "must be a positive integer"}
	}
	id := uint(v)
	return &id, nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &services.FieldError{Field: name, Message: "must be true or false"}
	}
	return &v, nil
}

// parseListParams reads paging, ordering and the whitelisted filters. The
// limit is capped at the configured maximum.
func (p Paging) parseListParams(c *gin.Context) (models.ListParams, error) {
	var params models.ListParams
	var err error

	if params.Page, err = queryInt(c, "page", 1); err != nil {
		return params, err
	}
	if params.Page < 1 {
		return params, &services.FieldError{Field: "page", Message: "must be at least 1"}
	}
	if params.Limit, err = queryInt(c, "limit", p.DefaultLimit); err != nil {
		return params, err
	}
	if params.Limit < 1 {
		return params, &services.FieldError{Field: "limit", Message: "must be at least 1"}
	}
	if p.MaxLimit > 0 && params.Limit > p.MaxLimit {
		params.Limit = p.MaxLimit
	}

	if params.Active, err = queryBool(c, "active"); err != nil {
		return params, err
	}
	if params.CategoryID, err = queryUint(c, "category_id"); err != nil {
		return params, err
	}
	if params.SubcategoryID, err = queryUint(c, "subcategory_id"); err != nil {
		return params, err
	}
	if params.BrandID, err = queryUint(c, "brand_id"); err != nil {
		return params, err
	}

	params.Search = strings.TrimSpace(c.Query("search"))
	params.Ordering = strings.TrimSpace(c.Query("ordering"))
	return params, nil
}

// listParams is parseListParams that answers 400 itself
func (p Paging) listParams(c *gin.Context) (models.ListParams, bool) {
	params, err := p.parseListParams(c)
	if err != nil {
		respondError(c, err)
		return params, false
	}
	return params, true
}
