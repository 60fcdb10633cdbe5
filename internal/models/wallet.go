package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionCredit  TransactionType = "credit"
	TransactionRefund  TransactionType = "refund"
	TransactionDebit   TransactionType = "debit"
	TransactionPayment TransactionType = "payment"
)

// IsCredit reports whether the transaction adds to the balance
func (t TransactionType) IsCredit() bool {
	return t == TransactionCredit || t == TransactionRefund
}

// IsDebit reports whether the transaction removes from the balance
func (t TransactionType) IsDebit() bool {
	return t == TransactionDebit || t == TransactionPayment
}

// Wallet holds a non-negative balance for one user
type Wallet struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    string          `json:"userId" gorm:"size:128;not null;uniqueIndex"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// WalletTransaction is an immutable ledger row
type WalletTransaction struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	WalletID        uint            `json:"walletId" gorm:"not null;index"`
	TransactionType TransactionType `json:"transactionType" gorm:"size:20;not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	BalanceBefore   decimal.Decimal `json:"balanceBefore" gorm:"type:decimal(12,2);not null"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter" gorm:"type:decimal(12,2);not null"`
	OrderID         *uint           `json:"orderId,omitempty" gorm:"index"`
	Note            string          `json:"note,omitempty" gorm:"size:500"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"index"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

type WalletTransactionRequest struct {
	TransactionType TransactionType `json:"transactionType" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note"`
}
