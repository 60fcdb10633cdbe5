// Package mocks provides a testify mock of repository.Store.
package mocks

import (
	"context"
	"sync/atomic"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of repository.Store. Create methods assign
// sequential ids to records that have none when the expectation returns nil.
type Store struct {
	mock.Mock
	nextID atomic.Uint32
}

// Ensure Store implements the interface
var _ repository.Store = (*Store)(nil)

func (m *Store) assignID(id *uint) {
	if *id == 0 {
		*id = uint(m.nextID.Add(1))
	}
}

// WithTransaction executes the callback with the mock itself, so business logic
// can be tested without a database transaction
func (m *Store) WithTransaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(m)
}

// Taxonomy

func (m *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	if args.Error(0) == nil {
		m.assignID(&category.ID)
	}
	return args.Error(0)
}

func (m *Store) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *Store) ListCategories(ctx context.Context, params models.ListParams) ([]models.Category, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *Store) DeleteCategory(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Store) CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) error {
	args := m.Called(ctx, subcategory)
	if args.Error(0) == nil {
		m.assignID(&subcategory.ID)
	}
	return args.Error(0)
}

func (m *Store) GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subcategory), args.Error(1)
}

func (m *Store) ListSubcategories(ctx context.Context, params models.ListParams) ([]models.Subcategory, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]models.Subcategory), args.Get(1).(int64), args.Error(2)
}

func (m *Store) UpdateSubcategory(ctx context.Context, subcategory *models.Subcategory) error {
	return m.Called(ctx, subcategory).Error(0)
}

func (m *Store) DeleteSubcategory(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Store) CreateBrand(ctx context.Context, brand *models.Brand) error {
	args := m.Called(ctx, brand)
	if args.Error(0) == nil {
		m.assignID(&brand.ID)
	}
	return args.Error(0)
}

func (m *Store) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}

func (m *Store) ListBrands(ctx context.Context, params models.ListParams) ([]models.Brand, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]models.Brand), args.Get(1).(int64), args.Error(2)
}

func (m *Store) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *Store) DeleteBrand(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Store) SlugsWithPrefix(ctx context.Context, entity repository.SlugEntity, base string) ([]string, error) {
	args := m.Called(ctx, entity, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Products

func (m *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil {
		m.assignID(&product.ID)
	}
	return args.Error(0)
}

func (m *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *Store) ListProducts(ctx context.Context, params models.ListParams) ([]models.Product, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *Store) DeleteProduct(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Store) GetProductForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *Store) GetProductForRestock(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *Store) SetProductStock(ctx context.Context, id uint, stock int) error {
	return m.Called(ctx, id, stock).Error(0)
}

func (m *Store) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	args := m.Called(ctx, variant)
	if args.Error(0) == nil {
		m.assignID(&variant.ID)
	}
	return args.Error(0)
}

func (m *Store) GetVariant(ctx context.Context, productID, variantID uint) (*models.ProductVariant, error) {
	args := m.Called(ctx, productID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductVariant), args.Error(1)
}

func (m *Store) ListVariants(ctx context.Context, productID uint) ([]models.ProductVariant, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]models.ProductVariant), args.Error(1)
}

func (m *Store) UpdateVariant(ctx context.Context, variant *models.ProductVariant) error {
	return m.Called(ctx, variant).Error(0)
}

func (m *Store) DeleteVariant(ctx context.Context, productID, variantID uint) error {
	return m.Called(ctx, productID, variantID).Error(0)
}

func (m *Store) CreateImage(ctx context.Context, image *models.ProductImage) error {
	args := m.Called(ctx, image)
	if args.Error(0) == nil {
		m.assignID(&image.ID)
	}
	return args.Error(0)
}

func (m *Store) GetImage(ctx context.Context, productID, imageID uint) (*models.ProductImage, error) {
	args := m.Called(ctx, productID, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductImage), args.Error(1)
}

func (m *Store) ListImages(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]models.ProductImage), args.Error(1)
}

func (m *Store) UpdateImage(ctx context.Context, image *models.ProductImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *Store) DeleteImage(ctx context.Context, productID, imageID uint) error {
	return m.Called(ctx, productID, imageID).Error(0)
}

// Stock ledger

func (m *Store) CreateStockMovement(ctx context.Context, movement *models.StockMovement) error {
	args := m.Called(ctx, movement)
	if args.Error(0) == nil {
		m.assignID(&movement.ID)
	}
	return args.Error(0)
}

func (m *Store) ListStockMovements(ctx context.Context, productID uint, params models.ListParams) ([]models.StockMovement, int64, error) {
	args := m.Called(ctx, productID, params)
	return args.Get(0).([]models.StockMovement), args.Get(1).(int64), args.Error(2)
}

// Cart and wishlist

func (m *Store) GetOrCreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *Store) GetCartItem(ctx context.Context, cartID, itemID uint) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *Store) AddCartItem(ctx context.Context, cartID, productID uint, quantity int) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *Store) UpdateCartItem(ctx context.Context, item *models.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *Store) DeleteCartItem(ctx context.Context, cartID, itemID uint) error {
	return m.Called(ctx, cartID, itemID).Error(0)
}

func (m *Store) ClearCart(ctx context.Context, cartID uint) error {
	return m.Called(ctx, cartID).Error(0)
}

func (m *Store) AddWishlistItem(ctx context.Context, item *models.WishlistItem) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil {
		m.assignID(&item.ID)
	}
	return args.Error(0)
}

func (m *Store) ListWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.WishlistItem), args.Error(1)
}

func (m *Store) DeleteWishlistItem(ctx context.Context, userID string, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

// Orders

func (m *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		m.assignID(&order.ID)
	}
	return args.Error(0)
}

func (m *Store) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *Store) GetOrderForUpdate(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *Store) ListOrders(ctx context.Context, userID string, params models.ListParams) ([]models.Order, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *Store) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

// Wallet ledger

func (m *Store) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *Store) GetWalletForUpdate(ctx context.Context, userID string) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *Store) SetWalletBalance(ctx context.Context, walletID uint, balance decimal.Decimal) error {
	return m.Called(ctx, walletID, balance).Error(0)
}

func (m *Store) CreateWalletTransaction(ctx context.Context, txn *models.WalletTransaction) error {
	args := m.Called(ctx, txn)
	if args.Error(0) == nil {
		m.assignID(&txn.ID)
	}
	return args.Error(0)
}

func (m *Store) ListWalletTransactions(ctx context.Context, walletID uint, params models.ListParams) ([]models.WalletTransaction, int64, error) {
	args := m.Called(ctx, walletID, params)
	return args.Get(0).([]models.WalletTransaction), args.Get(1).(int64), args.Error(2)
}

// Reviews

func (m *Store) CreateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil {
		m.assignID(&review.ID)
	}
	return args.Error(0)
}

func (m *Store) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *Store) ListReviews(ctx context.Context, productID uint, params models.ListParams) ([]models.Review, int64, error) {
	args := m.Called(ctx, productID, params)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *Store) UpdateReview(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *Store) DeleteReview(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Store) GetRatingSummary(ctx context.Context, productID uint) (*models.RatingSummary, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RatingSummary), args.Error(1)
}

// Promotions

func (m *Store) CreatePromotion(ctx context.Context, promotion *models.Promotion) error {
	args := m.Called(ctx, promotion)
	if args.Error(0) == nil {
		m.assignID(&promotion.ID)
	}
	return args.Error(0)
}

func (m *Store) GetPromotion(ctx context.Context, id uint) (*models.Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

func (m *Store) ListPromotions(ctx context.Context, productID uint, liveAt *time.Time) ([]models.Promotion, error) {
	args := m.Called(ctx, productID, liveAt)
	return args.Get(0).([]models.Promotion), args.Error(1)
}

func (m *Store) DeletePromotion(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
