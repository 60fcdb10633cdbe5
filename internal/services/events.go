package services

import (
	"context"

	"catalog-service/internal/models"
)

// EventPublisher is notified after a change has been committed. Implementations
// must not block and must not fail the caller.
type EventPublisher interface {
	ProductCreated(ctx context.Context, product *models.Product)
	ProductUpdated(ctx context.Context, product, previous *models.Product, changedFields []string)
	ProductDeleted(ctx context.Context, product *models.Product)
	StockChanged(ctx context.Context, product *models.Product, movement *models.StockMovement)
}

type noopPublisher struct{}

func (noopPublisher) ProductCreated(context.Context, *models.Product) {}
func (noopPublisher) ProductUpdated(context.Context, *models.Product, *models.Product, []string) {}
func (noopPublisher) ProductDeleted(context.Context, *models.Product) {}
func (noopPublisher) StockChanged(context.Context, *models.Product, *models.StockMovement) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
