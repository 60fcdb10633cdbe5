package services

import (
	"context"
	"testing"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var orderTestTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestOrderService(repo *mocks.Store, publisher EventPublisher) *OrderService {
	service := NewOrderService(repo, publisher, nil)
	service.now = func() time.Time { return orderTestTime }
	return service
}

func pricedProduct(id uint, stock int, price string) *models.Product {
	p := createTestProduct(id, stock)
	p.Price = dec(price)
	p.DiscountedPrice = dec(price)
	return p
}

func TestPlaceOrder_PaysWithWalletAtQuotedPrices(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	publisher := &recordingPublisher{}
	service := newTestOrderService(mockRepo, publisher)

	flashSale := models.Promotion{
		ID:            9,
		ProductID:     2,
		Kind:          models.PromotionFlashSale,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: dec("20"),
		StartsAt:      orderTestTime.Add(-time.Hour),
		EndsAt:        orderTestTime.Add(time.Hour),
		Active:        true,
	}

	mockRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil)
	mockRepo.On("GetProductForUpdate", ctx, uint(1)).Return(pricedProduct(1, 10, "100"), nil)
	mockRepo.On("GetProductForUpdate", ctx, uint(2)).Return(pricedProduct(2, 5, "50"), nil)
	mockRepo.On("SetProductStock", ctx, uint(1), 8).Return(nil)
	mockRepo.On("SetProductStock", ctx, uint(2), 4).Return(nil)
	mockRepo.On("CreateStockMovement", ctx, mock.AnythingOfType("*models.StockMovement")).Return(nil)
	mockRepo.On("ListPromotions", ctx, uint(1), mock.Anything).Return([]models.Promotion{}, nil)
	mockRepo.On("ListPromotions", ctx, uint(2), mock.Anything).Return([]models.Promotion{flashSale}, nil)
	mockRepo.On("CreateOrderItems", ctx, mock.MatchedBy(func(items []models.OrderItem) bool {
		return len(items) == 2 && items[0].ProductID == 1 && items[1].ProductID == 2
	})).Return(nil)
	mockRepo.On("GetWalletForUpdate", ctx, "user-1").Return(createTestWallet(7, "user-1", "300"), nil)
	mockRepo.On("SetWalletBalance", ctx, uint(7), mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(dec("60"))
	})).Return(nil)
	mockRepo.On("CreateWalletTransaction", ctx, mock.MatchedBy(func(txn *models.WalletTransaction) bool {
		return txn.TransactionType == models.TransactionPayment && txn.OrderID != nil
	})).Return(nil)
	mockRepo.On("UpdateOrderStatus", ctx, mock.AnythingOfType("*models.Order")).Return(nil)

	order, err := service.PlaceOrder(ctx, "user-1", models.PlaceOrderRequest{
		Items: []models.OrderLineRequest{
			{ProductID: 2, Quantity: 1},
			{ProductID: 1, Quantity: 1},
			{ProductID: 1, Quantity: 1},
		},
		PayWithWallet: true,
	})

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.True(t, order.PaidWithWallet)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, dec("100").Equal(order.Items[0].UnitPrice))
	assert.True(t, dec("40").Equal(order.Items[1].UnitPrice))
	assert.True(t, dec("240").Equal(order.Total))

	require.Len(t, publisher.stock, 2)
	for _, movement := range publisher.stock {
		assert.Equal(t, models.StockSale, movement.StockType)
		require.NotNil(t, movement.OrderID)
		assert.Equal(t, order.ID, *movement.OrderID)
	}
	mockRepo.AssertExpectations(t)
}

func TestPlaceOrder_InsufficientStockAbortsEverything(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	publisher := &recordingPublisher{}
	service := newTestOrderService(mockRepo, publisher)

	mockRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil)
	mockRepo.On("GetProductForUpdate", ctx, uint(1)).Return(pricedProduct(1, 10, "100"), nil)
	mockRepo.On("SetProductStock", ctx, uint(1), 9).Return(nil)
	mockRepo.On("CreateStockMovement", ctx, mock.AnythingOfType("*models.StockMovement")).Return(nil)
	mockRepo.On("ListPromotions", ctx, uint(1), mock.Anything).Return([]models.Promotion{}, nil)
	mockRepo.On("GetProductForUpdate", ctx, uint(2)).Return(pricedProduct(2, 0, "50"), nil)

	order, err := service.PlaceOrder(ctx, "user-1", models.PlaceOrderRequest{
		Items: []models.OrderLineRequest{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 1},
		},
		PayWithWallet: true,
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Nil(t, order)
	assert.Empty(t, publisher.stock)
	mockRepo.AssertNotCalled(t, "SetProductStock", mock.Anything, uint(2), mock.Anything)
	mockRepo.AssertNotCalled(t, "CreateOrderItems", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "GetWalletForUpdate", mock.Anything, mock.Anything)
}

func TestPlaceOrder_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := newTestOrderService(mockRepo, nil)

	mockRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil)
	mockRepo.On("GetProductForUpdate", ctx, uint(1)).Return(pricedProduct(1, 10, "100"), nil)
	mockRepo.On("SetProductStock", ctx, uint(1), 8).Return(nil)
	mockRepo.On("CreateStockMovement", ctx, mock.AnythingOfType("*models.StockMovement")).Return(nil)
	mockRepo.On("ListPromotions", ctx, uint(1), mock.Anything).Return([]models.Promotion{}, nil)
	mockRepo.On("CreateOrderItems", ctx, mock.Anything).Return(nil)
	mockRepo.On("GetWalletForUpdate", ctx, "user-1").Return(createTestWallet(7, "user-1", "10"), nil)

	_, err := service.PlaceOrder(ctx, "user-1", models.PlaceOrderRequest{
		Items:         []models.OrderLineRequest{{ProductID: 1, Quantity: 2}},
		PayWithWallet: true,
	})

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	mockRepo.AssertNotCalled(t, "SetWalletBalance", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything)
}

func TestPlaceOrder_InactiveProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := newTestOrderService(mockRepo, nil)

	inactive := pricedProduct(1, 10, "100")
	inactive.Active = false

	mockRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil)
	mockRepo.On("GetProductForUpdate", ctx, uint(1)).Return(inactive, nil)

	_, err := service.PlaceOrder(ctx, "user-1", models.PlaceOrderRequest{
		Items: []models.OrderLineRequest{{ProductID: 1, Quantity: 1}},
	})

	assert.ErrorIs(t, err, ErrValidation)
	mockRepo.AssertNotCalled(t, "SetProductStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_FromCartClearsCart(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := newTestOrderService(mockRepo, nil)

	cart := &models.Cart{ID: 3, UserID: "user-1", Items: []models.CartItem{
		{ID: 1, CartID: 3, ProductID: 1, Quantity: 2, Product: pricedProduct(1, 10, "100")},
		// product 4 was deleted, so the preload left it empty
		{ID: 2, CartID: 3, ProductID: 4, Quantity: 1},
	}}

	mockRepo.On("GetOrCreateCart", ctx, "user-1").Return(cart, nil)
	mockRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil)
	mockRepo.On("GetProductForUpdate", ctx, uint(1)).Return(pricedProduct(1, 10, "100"), nil)
	mockRepo.On("SetProductStock", ctx, uint(1), 8).Return(nil)
	mockRepo.On("CreateStockMovement", ctx, mock.AnythingOfType("*models.StockMovement")).Return(nil)
	mockRepo.On("ListPromotions", ctx, uint(1), mock.Anything).Return([]models.Promotion{}, nil)
	mockRepo.On("CreateOrderItems", ctx, mock.Anything).Return(nil)
	mockRepo.On("ClearCart", ctx, uint(3)).Return(nil)

	order, err := service.PlaceOrder(ctx, "user-1", models.PlaceOrderRequest{FromCart: true})

	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	mockRepo.AssertNotCalled(t, "GetProductForUpdate", mock.Anything, uint(4))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.False(t, order.PaidWithWallet)
	assert.True(t, dec("200").Equal(order.Total))
	mockRepo.AssertNotCalled(t, "GetWalletForUpdate", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestPlaceOrder_EmptyOrder(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := newTestOrderService(mockRepo, nil)

	mockRepo.On("GetOrCreateCart", ctx, "user-1").Return(&models.Cart{ID: 3, UserID: "user-1"}, nil)

	_, err := service.PlaceOrder(ctx, "user-1", models.PlaceOrderRequest{FromCart: true})

	assert.ErrorIs(t, err, ErrValidation)
	mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func paidOrder(id uint, userID string) *models.Order {
	return &models.Order{
		ID:             id,
		UserID:         userID,
		Status:         models.OrderStatusPaid,
		PaidWithWallet: true,
		Items: []models.OrderItem{
			{ID: 1, OrderID: id, ProductID: 1, Quantity: 2, UnitPrice: dec("100")},
		},
	}
}

func TestCancelOrder_RestocksAndRefunds(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	publisher := &recordingPublisher{}
	service := newTestOrderService(mockRepo, publisher)

	mockRepo.On("GetOrderForUpdate", ctx, uint(5)).Return(paidOrder(5, "user-1"), nil)
	mockRepo.On("GetProductForRestock", ctx, uint(1)).Return(pricedProduct(1, 8, "100"), nil)
	mockRepo.On("SetProductStock", ctx, uint(1), 10).Return(nil)
	mockRepo.On("CreateStockMovement", ctx, mock.MatchedBy(func(m *models.StockMovement) bool {
		return m.StockType == models.StockRestock && m.OrderID != nil && *m.OrderID == 5
	})).Return(nil)
	mockRepo.On("GetWalletForUpdate", ctx, "user-1").Return(createTestWallet(7, "user-1", "100"), nil)
	mockRepo.On("SetWalletBalance", ctx, uint(7), mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(dec("300"))
	})).Return(nil)
	mockRepo.On("CreateWalletTransaction", ctx, mock.MatchedBy(func(txn *models.WalletTransaction) bool {
		return txn.TransactionType == models.TransactionRefund && txn.Amount.Equal(dec("200"))
	})).Return(nil)
	mockRepo.On("UpdateOrderStatus", ctx, mock.AnythingOfType("*models.Order")).Return(nil)

	order, err := service.CancelOrder(ctx, "user-1", 5)

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	assert.Len(t, publisher.stock, 1)
	mockRepo.AssertExpectations(t)
}

func TestCancelOrder_OtherUserSeesNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := newTestOrderService(mockRepo, nil)

	mockRepo.On("GetOrderForUpdate", ctx, uint(5)).Return(paidOrder(5, "user-1"), nil)

	_, err := service.CancelOrder(ctx, "user-2", 5)

	assert.ErrorIs(t, err, ErrNotFound)
	mockRepo.AssertNotCalled(t, "GetProductForRestock", mock.Anything, mock.Anything)
}

func TestCancelOrder_RestocksDeletedProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := newTestOrderService(mockRepo, nil)

	order := paidOrder(5, "user-1")
	order.PaidWithWallet = false
	deleted := pricedProduct(1, 8, "100")
	deleted.DeletedAt = gorm.DeletedAt{Time: orderTestTime, Valid: true}

	mockRepo.On("GetOrderForUpdate", ctx, uint(5)).Return(order, nil)
	mockRepo.On("GetProductForRestock", ctx, uint(1)).Return(deleted, nil)
	mockRepo.On("SetProductStock", ctx, uint(1), 10).Return(nil)
	mockRepo.On("CreateStockMovement", ctx, mock.AnythingOfType("*models.StockMovement")).Return(nil)
	mockRepo.On("UpdateOrderStatus", ctx, mock.AnythingOfType("*models.Order")).Return(nil)

	cancelled, err := service.CancelOrder(ctx, "user-1", 5)

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	mockRepo.AssertNotCalled(t, "GetProductForUpdate", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestCancelOrder_AlreadyCancelled(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := newTestOrderService(mockRepo, nil)

	order := paidOrder(5, "user-1")
	order.Status = models.OrderStatusCancelled
	mockRepo.On("GetOrderForUpdate", ctx, uint(5)).Return(order, nil)

	_, err := service.CancelOrder(ctx, "user-1", 5)

	assert.ErrorIs(t, err, ErrValidation)
	mockRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything)
}

func TestGetOrder_SumsTotal(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := newTestOrderService(mockRepo, nil)

	mockRepo.On("GetOrder", ctx, uint(5)).Return(paidOrder(5, "user-1"), nil)

	order, err := service.GetOrder(ctx, "user-1", 5)

	require.NoError(t, err)
	assert.True(t, dec("200").Equal(order.Total))

	_, err = service.GetOrder(ctx, "user-2", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}
