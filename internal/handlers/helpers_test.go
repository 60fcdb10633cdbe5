package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/repository/mocks"
	"catalog-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testPaging = Paging{DefaultLimit: 20, MaxLimit: 100}

// setupTestRouter mounts every handler on real services backed by the mock store
func setupTestRouter(repo *mocks.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api/v1")
	NewCatalogHandler(services.NewCatalogService(repo, nil), testPaging).RegisterRoutes(api)
	NewProductHandler(
		services.NewProductService(repo, nil, nil, 5),
		services.NewInventoryService(repo, nil, nil),
		testPaging,
	).RegisterRoutes(api)
	NewPromotionHandler(services.NewPromotionService(repo, nil)).RegisterRoutes(api)
	NewReviewHandler(services.NewReviewService(repo, nil), testPaging).RegisterRoutes(api)
	orders := services.NewOrderService(repo, nil, nil)
	NewAccountHandler(
		services.NewCartService(repo, nil),
		orders,
		services.NewReceiptService(orders, "Test Store"),
		services.NewWalletService(repo, nil),
		testPaging,
	).RegisterRoutes(api)
	return r
}

func performRequest(r http.Handler, method, path string, body interface{}, userID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.Error {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	return resp.Error
}

func testProduct(id uint, stock int) *models.Product {
	return &models.Product{
		ID:                id,
		Title:             "Test Product",
		Slug:              "test-product",
		SKU:               "2-ABCDEF12",
		MRP:               decimal.RequireFromString("120"),
		Price:             decimal.RequireFromString("100"),
		DiscountType:      models.DiscountNone,
		DiscountValue:     decimal.Zero,
		DiscountedPrice:   decimal.RequireFromString("100"),
		TotalStock:        stock,
		LowStockThreshold: 5,
		Active:            true,
		CategoryID:        1,
		BrandID:           2,
	}
}
