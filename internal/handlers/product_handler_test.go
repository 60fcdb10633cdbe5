package handlers

import (
	"net/http"
	"testing"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGetProduct_NotFound(t *testing.T) {
	mockRepo := new(mocks.Store)
	router := setupTestRouter(mockRepo)

	mockRepo.On("GetProduct", mock.Anything, uint(42)).Return(nil, repository.ErrNotFound)

	w := performRequest(router, http.MethodGet, "/api/v1/products/42", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, w).Code)
}

func TestGetProduct_InvalidID(t *testing.T) {
	mockRepo := new(mocks.Store)
	router := setupTestRouter(mockRepo)

	w := performRequest(router, http.MethodGet, "/api/v1/products/abc", nil, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "id", body.Field)
	mockRepo.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
}

func TestListProducts_CapsLimit(t *testing.T) {
	mockRepo := new(mocks.Store)
	router := setupTestRouter(mockRepo)

	mockRepo.On("ListProducts", mock.Anything, mock.MatchedBy(func(p models.ListParams) bool {
		return p.Limit == 100 && p.Page == 2 && p.Ordering == "-price"
	})).Return([]models.Product{*testProduct(1, 3)}, int64(101), nil)

	w := performRequest(router, http.MethodGet, "/api/v1/products?limit=500&page=2&ordering=-price", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalPages":2`)
	mockRepo.AssertExpectations(t)
}

func TestListProducts_UnknownOrdering(t *testing.T) {
	mockRepo := new(mocks.Store)
	router := setupTestRouter(mockRepo)

	mockRepo.On("ListProducts", mock.Anything, mock.Anything).
		Return([]models.Product(nil), int64(0), repository.ErrInvalidOrdering)

	w := performRequest(router, http.MethodGet, "/api/v1/products?ordering=cost_price", nil, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Code)
}

func TestUpdateStock_InsufficientStock(t *testing.T) {
	mockRepo := new(mocks.Store)
	router := setupTestRouter(mockRepo)

	mockRepo.On("GetProductForUpdate", mock.Anything, uint(1)).Return(testProduct(1, 2), nil)

	w := performRequest(router, http.MethodPost, "/api/v1/products/1/stock", models.UpdateStockRequest{
		StockType: models.StockSale,
		Quantity:  3,
	}, "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, w).Code)
	mockRepo.AssertNotCalled(t, "SetProductStock", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "CreateStockMovement", mock.Anything, mock.Anything)
}

func TestUpdateStock_Purchase(t *testing.T) {
	mockRepo := new(mocks.Store)
	router := setupTestRouter(mockRepo)

	mockRepo.On("GetProductForUpdate", mock.Anything, uint(1)).Return(testProduct(1, 2), nil)
	mockRepo.On("SetProductStock", mock.Anything, uint(1), 12).Return(nil)
	mockRepo.On("CreateStockMovement", mock.Anything, mock.AnythingOfType("*models.StockMovement")).Return(nil)

	w := performRequest(router, http.MethodPost, "/api/v1/products/1/stock", models.UpdateStockRequest{
		StockType: models.StockPurchase,
		Quantity:  10,
		Note:      "supplier delivery",
	}, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stockAfter":12`)
	mockRepo.AssertExpectations(t)
}

func TestUpdateStock_UnknownKind(t *testing.T) {
	mockRepo := new(mocks.Store)
	router := setupTestRouter(mockRepo)

	w := performRequest(router, http.MethodPost, "/api/v1/products/1/stock", map[string]interface{}{
		"stockType": "shrinkage",
		"quantity":  1,
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "stockType", decodeError(t, w).Field)
}

func TestExportProducts(t *testing.T) {
	mockRepo := new(mocks.Store)
	router := setupTestRouter(mockRepo)

	first := testProduct(1, 7)
	second := testProduct(2, 0)
	second.Title = "Second"
	second.Slug = "second"
	second.Active = false

	mockRepo.On("ListProducts", mock.Anything, mock.MatchedBy(func(p models.ListParams) bool {
		return p.Page == 1 && p.Limit == exportPageSize
	})).Return([]models.Product{*first, *second}, int64(2), nil)

	w := performRequest(router, http.MethodGet, "/api/v1/products/export", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=products_")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Title", rows[0][1])
	assert.Equal(t, "test-product", rows[1][2])
	assert.Equal(t, "100.00", rows[1][6])
	assert.Equal(t, "7", rows[1][7])
	assert.Equal(t, "Second", rows[2][1])
	assert.Equal(t, "FALSE", rows[2][9])
}
