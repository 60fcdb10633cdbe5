package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Cart is owned by exactly one user
type Cart struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"userId" gorm:"size:128;not null;uniqueIndex"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CartID    uint      `json:"cartId" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

type WishlistItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"size:128;not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"createdAt"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}

type Order struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	UserID         string      `json:"userId" gorm:"size:128;not null;index"`
	Status         OrderStatus `json:"status" gorm:"size:20;not null;index"`
	PaidWithWallet bool        `json:"paidWithWallet" gorm:"not null"`
	Items          []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// Total sums the order lines
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// OrderItem snapshots the unit price the product was sold at
type OrderItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	OrderID      uint            `json:"orderId" gorm:"not null;index"`
	ProductID    uint            `json:"productId" gorm:"not null;index"`
	ProductTitle string          `json:"productTitle" gorm:"size:255"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	UnitPrice    decimal.Decimal `json:"unitPrice" gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Views summed at read time

type CartLine struct {
	ItemID    uint            `json:"itemId"`
	ProductID uint            `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type CartView struct {
	ID        uint            `json:"id"`
	UserID    string          `json:"userId"`
	Lines     []CartLine      `json:"lines"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
}

type OrderView struct {
	*Order
	Total decimal.Decimal `json:"total"`
}

// Request DTOs

type AddCartItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type AddWishlistItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

type OrderLineRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// PlaceOrderRequest orders either the explicit Items or, when FromCart is set, the user's cart
type PlaceOrderRequest struct {
	Items         []OrderLineRequest `json:"items"`
	FromCart      bool               `json:"fromCart"`
	PayWithWallet bool               `json:"payWithWallet"`
}
