package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-service/internal/models"
	"github.com/Tesseract-Nexus/go-shared/cache"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("duplicate value violates unique constraint")
	ErrInvalidOrdering = errors.New("unsupported ordering")
)

// Cache TTL constants
const (
	ProductCacheTTL     = 5 * time.Minute
	ProductListCacheTTL = 2 * time.Minute
	TaxonomyCacheTTL    = 30 * time.Minute
)

// SlugEntity names a table whose rows carry a unique slug
type SlugEntity string

const (
	SlugCategories    SlugEntity = "categories"
	SlugSubcategories SlugEntity = "subcategories"
	SlugBrands        SlugEntity = "brands"
	SlugProducts      SlugEntity = "products"
)

// Store is the persistence contract used by the services. Methods called on the
// Store handed to WithTransaction's callback run inside that transaction.
type Store interface {
	WithTransaction(ctx context.Context, fn func(tx Store) error) error

	// Taxonomy
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	ListCategories(ctx context.Context, params models.ListParams) ([]models.Category, int64, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error

	CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) error
	GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error)
	ListSubcategories(ctx context.Context, params models.ListParams) ([]models.Subcategory, int64, error)
	UpdateSubcategory(ctx context.Context, subcategory *models.Subcategory) error
	DeleteSubcategory(ctx context.Context, id uint) error

	CreateBrand(ctx context.Context, brand *models.Brand) error
	GetBrand(ctx context.Context, id uint) (*models.Brand, error)
	ListBrands(ctx context.Context, params models.ListParams) ([]models.Brand, int64, error)
	UpdateBrand(ctx context.Context, brand *models.Brand) error
	DeleteBrand(ctx context.Context, id uint) error

	SlugsWithPrefix(ctx context.Context, entity SlugEntity, base string) ([]string, error)

	// Products
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListProducts(ctx context.Context, params models.ListParams) ([]models.Product, int64, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	GetProductForUpdate(ctx context.Context, id uint) (*models.Product, error)
	GetProductForRestock(ctx context.Context, id uint) (*models.Product, error)
	SetProductStock(ctx context.Context, id uint, stock int) error

	CreateVariant(ctx context.Context, variant *models.ProductVariant) error
	GetVariant(ctx context.Context, productID, variantID uint) (*models.ProductVariant, error)
	ListVariants(ctx context.Context, productID uint) ([]models.ProductVariant, error)
	UpdateVariant(ctx context.Context, variant *models.ProductVariant) error
	DeleteVariant(ctx context.Context, productID, variantID uint) error

	CreateImage(ctx context.Context, image *models.ProductImage) error
	GetImage(ctx context.Context, productID, imageID uint) (*models.ProductImage, error)
	ListImages(ctx context.Context, productID uint) ([]models.ProductImage, error)
	UpdateImage(ctx context.Context, image *models.ProductImage) error
	DeleteImage(ctx context.Context, productID, imageID uint) error

	// Stock ledger
	CreateStockMovement(ctx context.Context, movement *models.StockMovement) error
	ListStockMovements(ctx context.Context, productID uint, params models.ListParams) ([]models.StockMovement, int64, error)

	// Cart and wishlist
	GetOrCreateCart(ctx context.Context, userID string) (*models.Cart, error)
	GetCartItem(ctx context.Context, cartID, itemID uint) (*models.CartItem, error)
	AddCartItem(ctx context.Context, cartID, productID uint, quantity int) (*models.CartItem, error)
	UpdateCartItem(ctx context.Context, item *models.CartItem) error
	DeleteCartItem(ctx context.Context, cartID, itemID uint) error
	ClearCart(ctx context.Context, cartID uint) error

	AddWishlistItem(ctx context.Context, item *models.WishlistItem) error
	ListWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error)
	DeleteWishlistItem(ctx context.Context, userID string, id uint) error

	// Orders
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	GetOrderForUpdate(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context, userID string, params models.ListParams) ([]models.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, order *models.Order) error

	// Wallet ledger
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	GetWalletForUpdate(ctx context.Context, userID string) (*models.Wallet, error)
	SetWalletBalance(ctx context.Context, walletID uint, balance decimal.Decimal) error
	CreateWalletTransaction(ctx context.Context, txn *models.WalletTransaction) error
	ListWalletTransactions(ctx context.Context, walletID uint, params models.ListParams) ([]models.WalletTransaction, int64, error)

	// Reviews
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, id uint) (*models.Review, error)
	ListReviews(ctx context.Context, productID uint, params models.ListParams) ([]models.Review, int64, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id uint) error
	GetRatingSummary(ctx context.Context, productID uint) (*models.RatingSummary, error)

	// Promotions
	CreatePromotion(ctx context.Context, promotion *models.Promotion) error
	GetPromotion(ctx context.Context, id uint) (*models.Promotion, error)
	ListPromotions(ctx context.Context, productID uint, liveAt *time.Time) ([]models.Promotion, error)
	DeletePromotion(ctx context.Context, id uint) error
}

// Repository is the gorm implementation of Store
type Repository struct {
	db    *gorm.DB
	redis *redis.Client
	cache *cache.CacheLayer

	// pending is non-nil inside a transaction; cache invalidations are queued
	// there and flushed after commit.
	pending *pendingInvalidations
}

type pendingInvalidations struct {
	keys     []string
	patterns []string
}

var _ Store = (*Repository)(nil)

func NewRepository(db *gorm.DB, redis *redis.Client) *Repository {
	repo := &Repository{
		db:    db,
		redis: redis,
	}

	if redis != nil {
		cacheConfig := cache.CacheConfig{
			L1Enabled:  true,
			L1MaxItems: 5000,
			L1TTL:      30 * time.Second,
			DefaultTTL: ProductCacheTTL,
			KeyPrefix:  "catalog:",
		}
		repo.cache = cache.NewCacheLayerFromClient(redis, cacheConfig)
	}

	return repo
}

// WithTransaction runs fn inside a database transaction. Nested calls join the
// outer transaction's invalidation queue.
func (r *Repository) WithTransaction(ctx context.Context, fn func(tx Store) error) error {
	pending := r.pending
	nested := pending != nil
	if !nested {
		pending = &pendingInvalidations{}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx, redis: r.redis, cache: r.cache, pending: pending})
	})
	if err != nil {
		return err
	}

	if !nested {
		r.flush(ctx, pending)
	}
	return nil
}

// Ping checks database and redis connectivity
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if r.redis != nil {
		if err := r.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// CacheStats returns cache statistics
func (r *Repository) CacheStats() *cache.CacheStats {
	if r.cache == nil {
		return nil
	}
	stats := r.cache.Stats()
	return &stats
}

func (r *Repository) cacheable() bool {
	return r.cache != nil && r.pending == nil
}

func (r *Repository) invalidate(ctx context.Context, keys []string, patterns ...string) {
	if r.cache == nil {
		return
	}
	if r.pending != nil {
		r.pending.keys = append(r.pending.keys, keys...)
		r.pending.patterns = append(r.pending.patterns, patterns...)
		return
	}
	r.flush(ctx, &pendingInvalidations{keys: keys, patterns: patterns})
}

func (r *Repository) flush(ctx context.Context, p *pendingInvalidations) {
	if r.cache == nil || p == nil {
		return
	}
	if len(p.keys) > 0 {
		_ = r.cache.Delete(ctx, p.keys...)
	}
	seen := make(map[string]struct{}, len(p.patterns))
	for _, pattern := range p.patterns {
		if _, ok := seen[pattern]; ok {
			continue
		}
		seen[pattern] = struct{}{}
		_ = r.cache.DeletePattern(ctx, pattern)
	}
}

// generateListCacheKey creates a deterministic cache key for list queries
func generateListCacheKey(prefix string, params interface{}) string {
	data, _ := json.Marshal(params)
	hash := md5.Sum(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// translateError maps driver errors onto the package sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// applyOrdering orders query by a whitelisted column; a leading '-' sorts descending.
// An empty ordering falls back to fallback.
func applyOrdering(query *gorm.DB, ordering, fallback string, allowed ...string) (*gorm.DB, error) {
	if ordering == "" {
		ordering = fallback
	}
	desc := strings.HasPrefix(ordering, "-")
	column := strings.TrimPrefix(ordering, "-")

	for _, a := range allowed {
		if a == column {
			return query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
				Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc}), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidOrdering, ordering)
}

// paginate applies limit/offset when a limit is set
func paginate(query *gorm.DB, params models.ListParams) *gorm.DB {
	if params.Limit > 0 {
		query = query.Limit(params.Limit).Offset(params.Offset())
	}
	return query
}

// SlugsWithPrefix returns every slug in the entity table equal to base or
// starting with "base-", soft-deleted rows included.
func (r *Repository) SlugsWithPrefix(ctx context.Context, entity SlugEntity, base string) ([]string, error) {
	switch entity {
	case SlugCategories, SlugSubcategories, SlugBrands, SlugProducts:
	default:
		return nil, fmt.Errorf("unknown slug entity %q", entity)
	}

	var slugs []string
	err := r.db.WithContext(ctx).
		Table(string(entity)).
		Where("slug = ? OR slug LIKE ?", base, base+"-%").
		Pluck("slug", &slugs).Error
	return slugs, translateError(err)
}
