package services

import (
	"context"
	"fmt"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"github.com/shopspring/decimal"
)

// StockChange is the outcome of one committed stock adjustment
type StockChange struct {
	Product  *models.Product       `json:"product"`
	Movement *models.StockMovement `json:"movement"`
}

type stockChangeInput struct {
	ProductID     uint
	Kind          models.StockType
	Quantity      int
	OrderID       *uint
	Note          string
	RequireActive bool
	// restocks for cancelled orders reach products deleted after the sale
	IncludeDeleted bool
}

// applyStockChange must run inside a transaction. It locks the product row,
// moves the counter and appends the matching ledger row. A change that would
// take the counter below zero leaves everything untouched.
func applyStockChange(ctx context.Context, tx repository.Store, in stockChangeInput) (*StockChange, error) {
	if in.Quantity <= 0 {
		return nil, invalid("quantity", "must be greater than zero")
	}
	if !in.Kind.Valid() {
		return nil, invalid("stockType", "must be one of purchase, sale, restock")
	}

	var (
		product *models.Product
		err     error
	)
	if in.IncludeDeleted {
		product, err = tx.GetProductForRestock(ctx, in.ProductID)
	} else {
		product, err = tx.GetProductForUpdate(ctx, in.ProductID)
	}
	if err != nil {
		return nil, translate(err, "product", in.ProductID)
	}
	if in.RequireActive && !product.Active {
		return nil, invalid("productId", "product %d is not available", product.ID)
	}

	before := product.TotalStock
	after := before + in.Kind.Sign()*in.Quantity
	if after < 0 {
		return nil, fmt.Errorf("%w: product %d has %d in stock, %d requested",
			ErrInsufficientStock, product.ID, before, in.Quantity)
	}

	if err := tx.SetProductStock(ctx, product.ID, after); err != nil {
		return nil, translate(err, "product", product.ID)
	}

	movement := &models.StockMovement{
		ProductID:   product.ID,
		StockType:   in.Kind,
		Quantity:    in.Quantity,
		StockBefore: before,
		StockAfter:  after,
		OrderID:     in.OrderID,
		Note:        in.Note,
	}
	if err := tx.CreateStockMovement(ctx, movement); err != nil {
		return nil, err
	}

	product.TotalStock = after
	return &StockChange{Product: product, Movement: movement}, nil
}

// WalletChange is the outcome of one committed wallet transaction
type WalletChange struct {
	Wallet      *models.Wallet            `json:"wallet"`
	Transaction *models.WalletTransaction `json:"transaction"`
}

type walletChangeInput struct {
	UserID  string
	Kind    models.TransactionType
	Amount  decimal.Decimal
	OrderID *uint
	Note    string
}

// maxMoney is the first value a decimal(12,2) column cannot hold
var maxMoney = decimal.New(1, 10)

// validateMoney checks that a stored amount fits its decimal(12,2) column
// without rounding
func validateMoney(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(2)) {
		return invalid(field, "must have at most two decimal places")
	}
	if amount.Abs().GreaterThanOrEqual(maxMoney) {
		return invalid(field, "must be less than %s", maxMoney.String())
	}
	return nil
}

func validateWalletAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	return validateMoney("amount", amount)
}

// applyWalletTransaction must run inside a transaction. It locks the user's
// wallet, applies the signed amount and appends the matching ledger row. A debit
// that would overdraw the wallet leaves everything untouched.
func applyWalletTransaction(ctx context.Context, tx repository.Store, in walletChangeInput) (*WalletChange, error) {
	if err := requireUser(in.UserID); err != nil {
		return nil, err
	}
	if err := validateWalletAmount(in.Amount); err != nil {
		return nil, err
	}

	var delta decimal.Decimal
	switch {
	case in.Kind.IsCredit():
		delta = in.Amount
	case in.Kind.IsDebit():
		delta = in.Amount.Neg()
	default:
		return nil, invalid("transactionType", "must be one of credit, refund, debit, payment")
	}

	wallet, err := tx.GetWalletForUpdate(ctx, in.UserID)
	if err != nil {
		return nil, translate(err, "wallet", in.UserID)
	}

	before := wallet.Balance
	after := before.Add(delta)
	if after.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s, %s requested", ErrInsufficientFunds, before.StringFixed(2), in.Amount.StringFixed(2))
	}
	if after.GreaterThanOrEqual(maxMoney) {
		return nil, invalid("amount", "balance would exceed %s", maxMoney.String())
	}

	if err := tx.SetWalletBalance(ctx, wallet.ID, after); err != nil {
		return nil, translate(err, "wallet", wallet.ID)
	}

	txn := &models.WalletTransaction{
		WalletID:        wallet.ID,
		TransactionType: in.Kind,
		Amount:          in.Amount,
		BalanceBefore:   before,
		BalanceAfter:    after,
		OrderID:         in.OrderID,
		Note:            in.Note,
	}
	if err := tx.CreateWalletTransaction(ctx, txn); err != nil {
		return nil, err
	}

	wallet.Balance = after
	return &WalletChange{Wallet: wallet, Transaction: txn}, nil
}
