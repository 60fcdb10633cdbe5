package models

import "time"

type StockType string

const (
	StockPurchase StockType = "purchase"
	StockSale     StockType = "sale"
	StockRestock  StockType = "restock"
)

// Valid reports whether t is a known movement kind
func (t StockType) Valid() bool {
	switch t {
	case StockPurchase, StockSale, StockRestock:
		return true
	}
	return false
}

// Sign is -1 for movements that remove stock and +1 otherwise
func (t StockType) Sign() int {
	if t == StockSale {
		return -1
	}
	return 1
}

// StockMovement is an immutable ledger row. Summing signed quantities per product
// reproduces Product.TotalStock.
type StockMovement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProductID   uint      `json:"productId" gorm:"not null;index"`
	StockType   StockType `json:"stockType" gorm:"size:20;not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	StockBefore int       `json:"stockBefore" gorm:"not null"`
	StockAfter  int       `json:"stockAfter" gorm:"not null"`
	OrderID     *uint     `json:"orderId,omitempty" gorm:"index"`
	Note        string    `json:"note,omitempty" gorm:"size:500"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

type UpdateStockRequest struct {
	StockType StockType `json:"stockType" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	Note      string    `json:"note"`
}
