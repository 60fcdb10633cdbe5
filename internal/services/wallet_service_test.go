package services

import (
	"context"
	"strings"
	"testing"

	"catalog-service/internal/models"
	"catalog-service/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransact_CreditIncreasesBalance(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := NewWalletService(mockRepo, nil)

	mockRepo.On("GetWalletForUpdate", ctx, "user-1").Return(createTestWallet(7, "user-1", "10.00"), nil)
	mockRepo.On("SetWalletBalance", ctx, uint(7), mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(dec("35.50"))
	})).Return(nil)
	mockRepo.On("CreateWalletTransaction", ctx, mock.AnythingOfType("*models.WalletTransaction")).Return(nil)

	change, err := service.Transact(ctx, "user-1", models.WalletTransactionRequest{
		TransactionType: models.TransactionCredit,
		Amount:          dec("25.50"),
	})

	require.NoError(t, err)
	assert.True(t, dec("35.50").Equal(change.Wallet.Balance))
	assert.True(t, dec("10").Equal(change.Transaction.BalanceBefore))
	assert.True(t, dec("35.50").Equal(change.Transaction.BalanceAfter))
	assert.Equal(t, uint(7), change.Transaction.WalletID)
	mockRepo.AssertExpectations(t)
}

func TestTransact_DebitOverdraft(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := NewWalletService(mockRepo, nil)

	mockRepo.On("GetWalletForUpdate", ctx, "user-1").Return(createTestWallet(7, "user-1", "5.00"), nil)

	change, err := service.Transact(ctx, "user-1", models.WalletTransactionRequest{
		TransactionType: models.TransactionDebit,
		Amount:          dec("5.01"),
	})

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Nil(t, change)
	mockRepo.AssertNotCalled(t, "SetWalletBalance", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "CreateWalletTransaction", mock.Anything, mock.Anything)
}

func TestTransact_DebitToZeroIsAllowed(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := NewWalletService(mockRepo, nil)

	mockRepo.On("GetWalletForUpdate", ctx, "user-1").Return(createTestWallet(7, "user-1", "5.00"), nil)
	mockRepo.On("SetWalletBalance", ctx, uint(7), mock.Anything).Return(nil)
	mockRepo.On("CreateWalletTransaction", ctx, mock.AnythingOfType("*models.WalletTransaction")).Return(nil)

	change, err := service.Transact(ctx, "user-1", models.WalletTransactionRequest{
		TransactionType: models.TransactionPayment,
		Amount:          dec("5"),
	})

	require.NoError(t, err)
	assert.True(t, change.Wallet.Balance.IsZero())
}

func TestTransact_CreditCannotOverflowBalance(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.Store)
	service := NewWalletService(mockRepo, nil)

	mockRepo.On("GetWalletForUpdate", ctx, "user-1").Return(createTestWallet(7, "user-1", "9999999999.00"), nil)

	_, err := service.Transact(ctx, "user-1", models.WalletTransactionRequest{
		TransactionType: models.TransactionCredit,
		Amount:          dec("1"),
	})

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "amount", fieldErr.Field)
	mockRepo.AssertNotCalled(t, "SetWalletBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetWallet_RejectsOversizedUser(t *testing.T) {
	mockRepo := new(mocks.Store)
	service := NewWalletService(mockRepo, nil)

	_, err := service.GetWallet(context.Background(), strings.Repeat("u", models.MaxUserIDLength+1))

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "userId", fieldErr.Field)
	mockRepo.AssertNotCalled(t, "GetWallet", mock.Anything, mock.Anything)
}

func TestTransact_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		req   models.WalletTransactionRequest
		field string
	}{
		{"zero amount", models.WalletTransactionRequest{TransactionType: models.TransactionCredit, Amount: dec("0")}, "amount"},
		{"negative amount", models.WalletTransactionRequest{TransactionType: models.TransactionCredit, Amount: dec("-1")}, "amount"},
		{"sub-cent amount", models.WalletTransactionRequest{TransactionType: models.TransactionCredit, Amount: dec("1.005")}, "amount"},
		{"amount beyond column", models.WalletTransactionRequest{TransactionType: models.TransactionCredit, Amount: dec("10000000000")}, "amount"},
		{"unknown type", models.WalletTransactionRequest{TransactionType: "bonus", Amount: dec("1")}, "transactionType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.Store)
			service := NewWalletService(mockRepo, nil)

			_, err := service.Transact(context.Background(), "user-1", tt.req)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
			mockRepo.AssertNotCalled(t, "GetWalletForUpdate", mock.Anything, mock.Anything)
		})
	}
}
