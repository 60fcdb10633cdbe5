package services

import (
	"context"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CartService manages the per-user cart and wishlist
type CartService struct {
	repo   repository.Store
	logger *logrus.Entry
	now    func() time.Time
}

func NewCartService(repo repository.Store, logger *logrus.Logger) *CartService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CartService{
		repo:   repo,
		logger: logger.WithField("component", "cart-service"),
		now:    time.Now,
	}
}

func requireUser(userID string) error {
	if userID == "" {
		return invalid("userId", "is required")
	}
	if len(userID) > models.MaxUserIDLength {
		return invalid("userId", "must be at most %d characters", models.MaxUserIDLength)
	}
	return nil
}

// GetCart returns the user's cart priced at the current quote of each product
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.CartView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, translate(err, "cart", userID)
	}
	return s.view(ctx, cart)
}

func (s *CartService) view(ctx context.Context, cart *models.Cart) (*models.CartView, error) {
	at := s.now()
	view := &models.CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Lines:  make([]models.CartLine, 0, len(cart.Items)),
		Total:  decimal.Zero,
	}

	for _, item := range cart.Items {
		// deleted products drop out of the cart view
		if item.Product == nil {
			continue
		}
		quote, err := quoteProduct(ctx, s.repo, item.Product, at)
		if err != nil {
			return nil, err
		}
		line := models.CartLine{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			Title:     item.Product.Title,
			Quantity:  item.Quantity,
			UnitPrice: quote.FinalPrice,
			LineTotal: quote.FinalPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
		view.Lines = append(view.Lines, line)
		view.ItemCount += item.Quantity
		view.Total = view.Total.Add(line.LineTotal)
	}
	return view, nil
}

// AddItem puts the product in the cart, adding to the quantity already there
func (s *CartService) AddItem(ctx context.Context, userID string, req models.AddCartItemRequest) (*models.CartView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, invalid("quantity", "must be greater than zero")
	}

	product, err := s.repo.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, translate(err, "product", req.ProductID)
	}
	if !product.Active {
		return nil, invalid("productId", "product %d is not available", product.ID)
	}

	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, translate(err, "cart", userID)
	}
	if _, err := s.repo.AddCartItem(ctx, cart.ID, product.ID, quantity); err != nil {
		return nil, translate(err, "cart item", product.ID)
	}

	return s.GetCart(ctx, userID)
}

// UpdateItem sets the quantity of one cart line
func (s *CartService) UpdateItem(ctx context.Context, userID string, itemID uint, req models.UpdateCartItemRequest) (*models.CartView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, invalid("quantity", "must be greater than zero")
	}

	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, translate(err, "cart", userID)
	}
	item, err := s.repo.GetCartItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, translate(err, "cart item", itemID)
	}
	item.Quantity = req.Quantity
	if err := s.repo.UpdateCartItem(ctx, item); err != nil {
		return nil, translate(err, "cart item", itemID)
	}

	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID uint) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return translate(err, "cart", userID)
	}
	return translate(s.repo.DeleteCartItem(ctx, cart.ID, itemID), "cart item", itemID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return translate(err, "cart", userID)
	}
	return translate(s.repo.ClearCart(ctx, cart.ID), "cart", userID)
}

// Wishlist

func (s *CartService) AddToWishlist(ctx context.Context, userID string, req models.AddWishlistItemRequest) (*models.WishlistItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	product, err := s.repo.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, translate(err, "product", req.ProductID)
	}

	item := &models.WishlistItem{UserID: userID, ProductID: product.ID}
	if err := s.repo.AddWishlistItem(ctx, item); err != nil {
		return nil, translate(err, "wishlist item", product.ID)
	}
	item.Product = product
	return item, nil
}

func (s *CartService) ListWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListWishlist(ctx, userID)
	if err != nil {
		return nil, translate(err, "wishlist item", nil)
	}
	return items, nil
}

func (s *CartService) RemoveFromWishlist(ctx context.Context, userID string, id uint) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return translate(s.repo.DeleteWishlistItem(ctx, userID, id), "wishlist item", id)
}
