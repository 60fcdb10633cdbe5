package services

import (
	"context"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// InventoryService moves product stock through the stock ledger
type InventoryService struct {
	repo   repository.Store
	events EventPublisher
	logger *logrus.Entry
}

func NewInventoryService(repo repository.Store, publisher EventPublisher, logger *logrus.Logger) *InventoryService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &InventoryService{
		repo:   repo,
		events: publisherOrNoop(publisher),
		logger: logger.WithField("component", "inventory-service"),
	}
}

// UpdateStock applies one purchase, sale or restock to the product. The counter
// and its ledger row are written together or not at all.
func (s *InventoryService) UpdateStock(ctx context.Context, productID uint, req models.UpdateStockRequest) (*StockChange, error) {
	var change *StockChange
	err := s.repo.WithTransaction(ctx, func(tx repository.Store) error {
		var err error
		change, err = applyStockChange(ctx, tx, stockChangeInput{
			ProductID: productID,
			Kind:      req.StockType,
			Quantity:  req.Quantity,
			Note:      req.Note,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"productId":   productID,
		"stockType":   req.StockType,
		"quantity":    req.Quantity,
		"stockBefore": change.Movement.StockBefore,
		"stockAfter":  change.Movement.StockAfter,
	}).Info("Stock updated")

	s.events.StockChanged(ctx, change.Product, change.Movement)
	return change, nil
}

// ListMovements returns the product's ledger, newest first
func (s *InventoryService) ListMovements(ctx context.Context, productID uint, params models.ListParams) ([]models.StockMovement, int64, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, 0, translate(err, "product", productID)
	}
	movements, total, err := s.repo.ListStockMovements(ctx, productID, params)
	if err != nil {
		return nil, 0, translate(err, "stock movement", nil)
	}
	return movements, total, nil
}
