package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{&services.FieldError{Field: "title", Message: "is required"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{fmt.Errorf("%w: product 4", services.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: slug", services.ErrUniquenessConflict), http.StatusConflict, "UNIQUENESS_CONFLICT"},
		{fmt.Errorf("%w: product 1", services.ErrInsufficientStock), http.StatusConflict, "INSUFFICIENT_STOCK"},
		{fmt.Errorf("%w: balance 0.00", services.ErrInsufficientFunds), http.StatusConflict, "INSUFFICIENT_FUNDS"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code := errorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "An internal error occurred", body.Message)
}

func TestParseListParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	paging := Paging{DefaultLimit: 20, MaxLimit: 100}

	newContext := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/items?"+query, nil)
		return c
	}

	t.Run("defaults", func(t *testing.T) {
		params, err := paging.parseListParams(newContext(""))
		require.NoError(t, err)
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, 20, params.Limit)
		assert.Nil(t, params.Active)
	})

	t.Run("limit is capped", func(t *testing.T) {
		params, err := paging.parseListParams(newContext("limit=1000&page=3"))
		require.NoError(t, err)
		assert.Equal(t, 100, params.Limit)
		assert.Equal(t, 200, params.Offset())
	})

	t.Run("filters", func(t *testing.T) {
		params, err := paging.parseListParams(newContext("active=false&category_id=4&brand_id=9&search=+lamp+&ordering=-price"))
		require.NoError(t, err)
		require.NotNil(t, params.Active)
		assert.False(t, *params.Active)
		assert.Equal(t, uint(4), *params.CategoryID)
		assert.Equal(t, uint(9), *params.BrandID)
		assert.Nil(t, params.SubcategoryID)
		assert.Equal(t, "lamp", params.Search)
		assert.Equal(t, "-price", params.Ordering)
	})

	invalid := map[string]string{
		"page=0":           "page",
		"page=two":         "page",
		"limit=0":          "limit",
		"limit=1.5":        "limit",
		"category_id=abc":  "category_id",
		"brand_id=-1":      "brand_id",
		"active=sometimes": "active",
	}
	for query, field := range invalid {
		t.Run(query, func(t *testing.T) {
			_, err := paging.parseListParams(newContext(query))
			var fieldErr *services.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, field, fieldErr.Field)
		})
	}
}
