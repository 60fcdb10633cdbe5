package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// OrderService places and cancels orders. Each operation moves stock, and
// optionally wallet funds, in a single transaction.
type OrderService struct {
	repo   repository.Store
	events EventPublisher
	logger *logrus.Entry
	now    func() time.Time
}

func NewOrderService(repo repository.Store, publisher EventPublisher, logger *logrus.Logger) *OrderService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OrderService{
		repo:   repo,
		events: publisherOrNoop(publisher),
		logger: logger.WithField("component", "order-service"),
		now:    time.Now,
	}
}

type orderLine struct {
	productID uint
	quantity  int
}

// mergeLines folds repeated products together and sorts by product id, which
// is also the order row locks are taken in
func mergeLines(lines []orderLine) ([]orderLine, error) {
	totals := make(map[uint]int, len(lines))
	for _, l := range lines {
		if l.productID == 0 {
			return nil, invalid("items", "productId is required")
		}
		if l.quantity <= 0 {
			return nil, invalid("items", "quantity for product %d must be greater than zero", l.productID)
		}
		totals[l.productID] += l.quantity
	}

	merged := make([]orderLine, 0, len(totals))
	for id, qty := range totals {
		merged = append(merged, orderLine{productID: id, quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].productID < merged[j].productID })
	return merged, nil
}

func toView(order *models.Order) *models.OrderView {
	return &models.OrderView{Order: order, Total: order.Total()}
}

// PlaceOrder creates an order from explicit lines or from the user's cart.
// Every line is sold out of stock at its current quote; with PayWithWallet the
// total is taken from the wallet and the order is marked paid. Nothing is
// written unless every step succeeds.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, req models.PlaceOrderRequest) (*models.OrderView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if req.FromCart && len(req.Items) > 0 {
		return nil, invalid("items", "must be empty when ordering from the cart")
	}

	at := s.now()
	var (
		order   *models.Order
		changes []*StockChange
	)

	err := s.repo.WithTransaction(ctx, func(tx repository.Store) error {
		var (
			raw  []orderLine
			cart *models.Cart
		)
		if req.FromCart {
			var err error
			if cart, err = tx.GetOrCreateCart(ctx, userID); err != nil {
				return translate(err, "cart", userID)
			}
			for _, item := range cart.Items {
				// lines for deleted products are hidden from the cart and skipped here
				if item.Product == nil {
					continue
				}
				raw = append(raw, orderLine{productID: item.ProductID, quantity: item.Quantity})
			}
		} else {
			for _, item := range req.Items {
				raw = append(raw, orderLine{productID: item.ProductID, quantity: item.Quantity})
			}
		}
		if len(raw) == 0 {
			return invalid("items", "order must contain at least one item")
		}
		lines, err := mergeLines(raw)
		if err != nil {
			return err
		}

		order = &models.Order{UserID: userID, Status: models.OrderStatusPending}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return translate(err, "order", nil)
		}

		items := make([]models.OrderItem, 0, len(lines))
		changes = make([]*StockChange, 0, len(lines))
		for _, line := range lines {
			change, err := applyStockChange(ctx, tx, stockChangeInput{
				ProductID:     line.productID,
				Kind:          models.StockSale,
				Quantity:      line.quantity,
				OrderID:       &order.ID,
				Note:          fmt.Sprintf("order %d", order.ID),
				RequireActive: true,
			})
			if err != nil {
				return err
			}
			changes = append(changes, change)

			quote, err := quoteProduct(ctx, tx, change.Product, at)
			if err != nil {
				return err
			}
			items = append(items, models.OrderItem{
				OrderID:      order.ID,
				ProductID:    change.Product.ID,
				ProductTitle: change.Product.Title,
				Quantity:     line.quantity,
				UnitPrice:    quote.FinalPrice,
			})
		}
		if err := tx.CreateOrderItems(ctx, items); err != nil {
			return translate(err, "order item", nil)
		}
		order.Items = items

		if req.PayWithWallet {
			if total := order.Total(); total.IsPositive() {
				if _, err := applyWalletTransaction(ctx, tx, walletChangeInput{
					UserID:  userID,
					Kind:    models.TransactionPayment,
					Amount:  total,
					OrderID: &order.ID,
					Note:    fmt.Sprintf("payment for order %d", order.ID),
				}); err != nil {
					return err
				}
			}
			order.Status = models.OrderStatusPaid
			order.PaidWithWallet = true
			if err := tx.UpdateOrderStatus(ctx, order); err != nil {
				return translate(err, "order", order.ID)
			}
		}

		if cart != nil {
			if err := tx.ClearCart(ctx, cart.ID); err != nil {
				return translate(err, "cart", userID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := toView(order)
	s.logger.WithFields(logrus.Fields{
		"orderId": order.ID,
		"userId":  userID,
		"lines":   len(order.Items),
		"total":   view.Total.StringFixed(2),
		"status":  order.Status,
	}).Info("Order placed")

	for _, change := range changes {
		s.events.StockChanged(ctx, change.Product, change.Movement)
	}
	return view, nil
}

// CancelOrder returns every line to stock and refunds a wallet payment
func (s *OrderService) CancelOrder(ctx context.Context, userID string, orderID uint) (*models.OrderView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var (
		order   *models.Order
		changes []*StockChange
	)
	err := s.repo.WithTransaction(ctx, func(tx repository.Store) error {
		var err error
		order, err = tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return translate(err, "order", orderID)
		}
		if order.UserID != userID {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		if order.Status == models.OrderStatusCancelled {
			return invalid("status", "order %d is already cancelled", orderID)
		}

		for _, item := range order.Items {
			change, err := applyStockChange(ctx, tx, stockChangeInput{
				ProductID:      item.ProductID,
				Kind:           models.StockRestock,
				Quantity:       item.Quantity,
				OrderID:        &order.ID,
				Note:           fmt.Sprintf("cancel order %d", order.ID),
				IncludeDeleted: true,
			})
			if err != nil {
				return err
			}
			changes = append(changes, change)
		}

		if order.PaidWithWallet {
			if total := order.Total(); total.IsPositive() {
				if _, err := applyWalletTransaction(ctx, tx, walletChangeInput{
					UserID:  userID,
					Kind:    models.TransactionRefund,
					Amount:  total,
					OrderID: &order.ID,
					Note:    fmt.Sprintf("refund for order %d", order.ID),
				}); err != nil {
					return err
				}
			}
		}

		order.Status = models.OrderStatusCancelled
		return translate(tx.UpdateOrderStatus(ctx, order), "order", order.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"orderId":  order.ID,
		"userId":   userID,
		"refunded": order.PaidWithWallet,
	}).Info("Order cancelled")

	for _, change := range changes {
		s.events.StockChanged(ctx, change.Product, change.Movement)
	}
	return toView(order), nil
}

// GetOrder returns one of the user's orders. Orders of other users are reported as not found.
func (s *OrderService) GetOrder(ctx context.Context, userID string, orderID uint) (*models.OrderView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, translate(err, "order", orderID)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	return toView(order), nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string, params models.ListParams) ([]models.OrderView, int64, error) {
	if err := requireUser(userID); err != nil {
		return nil, 0, err
	}
	orders, total, err := s.repo.ListOrders(ctx, userID, params)
	if err != nil {
		return nil, 0, translate(err, "order", nil)
	}

	views := make([]models.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *toView(&orders[i]))
	}
	return views, total, nil
}
