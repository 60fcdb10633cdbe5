package repository

import (
	"context"
	"time"

	"catalog-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Cart operations

// GetOrCreateCart returns the user's cart with items and their products, creating an empty cart on first use
func (r *Repository) GetOrCreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	db := r.db.WithContext(ctx)

	cart := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error; err != nil {
		return nil, translateError(err)
	}

	var loaded models.Cart
	err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&loaded).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &loaded, nil
}

func (r *Repository) GetCartItem(ctx context.Context, cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// AddCartItem inserts the product into the cart or increments the quantity already there
func (r *Repository) AddCartItem(ctx context.Context, cartID, productID uint, quantity int) (*models.CartItem, error) {
	db := r.db.WithContext(ctx)
	now := time.Now()

	item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	err := db.Omit("Product").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
			"updated_at": now,
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, translateError(err)
	}

	var stored models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&stored).Error; err != nil {
		return nil, translateError(err)
	}
	return &stored, nil
}

func (r *Repository) UpdateCartItem(ctx context.Context, item *models.CartItem) error {
	return translateError(r.db.WithContext(ctx).Model(item).
		Select("quantity", "updated_at").
		Updates(item).Error)
}

func (r *Repository) DeleteCartItem(ctx context.Context, cartID, itemID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ClearCart(ctx context.Context, cartID uint) error {
	return translateError(r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error)
}

// Wishlist operations

func (r *Repository) AddWishlistItem(ctx context.Context, item *models.WishlistItem) error {
	return translateError(r.db.WithContext(ctx).Omit("Product").Create(item).Error)
}

func (r *Repository) ListWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	return items, translateError(err)
}

func (r *Repository) DeleteWishlistItem(ctx context.Context, userID string, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Order operations

// CreateOrder inserts the order header only; lines go through CreateOrderItems
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error)
}

func (r *Repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Create(&items).Error)
}

func (r *Repository) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// GetOrderForUpdate locks the order row and loads its lines
func (r *Repository) GetOrderForUpdate(ctx context.Context, id uint) (*models.Order, error) {
	db := r.db.WithContext(ctx)

	var order models.Order
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error; err != nil {
		return nil, translateError(err)
	}
	if err := db.Where("order_id = ?", id).Order("id ASC").Find(&order.Items).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *Repository) ListOrders(ctx context.Context, userID string, params models.ListParams) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query, err := applyOrdering(query, params.Ordering, "-created_at", "created_at", "updated_at", "status", "id")
	if err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err = paginate(query, params).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Find(&orders).Error
	return orders, total, translateError(err)
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	result := r.db.WithContext(ctx).Model(order).
		Select("status", "paid_with_wallet", "updated_at").
		Updates(order)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
