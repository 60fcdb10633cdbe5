// Package events publishes catalog and stock changes to NATS JetStream
package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"catalog-service/internal/models"
	"github.com/Tesseract-Nexus/go-shared/events"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const publishTimeout = 10 * time.Second

// Publisher sends product and inventory events. All methods return immediately;
// delivery happens in the background and failures are only logged. A nil
// *Publisher is valid and publishes nothing.
type Publisher struct {
	publisher *events.Publisher
	tenantID  string
	logger    *logrus.Entry
}

// NewPublisher connects to NATS and makes sure the product and inventory streams exist
func NewPublisher(natsURL, tenantID string, logger *logrus.Logger) (*Publisher, error) {
	if natsURL == "" {
		return nil, fmt.Errorf("NATS URL is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	config := events.DefaultPublisherConfig(natsURL)
	config.Name = "catalog-service"

	publisher, err := events.NewPublisher(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create events publisher: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := publisher.EnsureStream(ctx, events.StreamProducts, []string{"product.>"}); err != nil {
		logger.WithError(err).Warn("Failed to ensure products stream (may already exist)")
	}
	if err := publisher.EnsureStream(ctx, events.StreamInventory, []string{"inventory.>"}); err != nil {
		logger.WithError(err).Warn("Failed to ensure inventory stream (may already exist)")
	}

	return &Publisher{
		publisher: publisher,
		tenantID:  tenantID,
		logger:    logger.WithField("component", "catalog-events"),
	}, nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p != nil && p.publisher != nil {
		p.publisher.Close()
	}
}

func productID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func productSnapshot(product *models.Product) map[string]interface{} {
	return map[string]interface{}{
		"title":           product.Title,
		"price":           product.Price.StringFixed(2),
		"discountedPrice": product.DiscountedPrice.StringFixed(2),
		"active":          product.Active,
		"totalStock":      product.TotalStock,
	}
}

func productStatus(product *models.Product) string {
	if product.Active {
		return "active"
	}
	return "inactive"
}

func (p *Publisher) ProductCreated(ctx context.Context, product *models.Product) {
	if p == nil {
		return
	}
	event := p.buildProductEvent(events.ProductCreated, product)
	event.ChangeType = "created"
	p.publishProduct(event)
}

func (p *Publisher) ProductUpdated(ctx context.Context, product, previous *models.Product, changedFields []string) {
	if p == nil {
		return
	}
	event := p.buildProductEvent(events.ProductUpdated, product)
	event.ChangeType = "updated"
	event.ChangedFields = changedFields
	if previous != nil {
		event.OldValue = productSnapshot(previous)
	}
	event.NewValue = productSnapshot(product)
	p.publishProduct(event)
}

func (p *Publisher) ProductDeleted(ctx context.Context, product *models.Product) {
	if p == nil {
		return
	}
	event := p.buildProductEvent(events.ProductDeleted, product)
	event.ChangeType = "deleted"
	p.publishProduct(event)
}

func (p *Publisher) buildProductEvent(eventType string, product *models.Product) *events.ProductEvent {
	event := events.NewProductEvent(eventType, p.tenantID)
	event.SourceID = uuid.New().String()
	event.ProductID = productID(product.ID)
	event.ProductName = product.Title
	event.SKU = product.SKU
	event.Status = productStatus(product)
	event.Price = product.DiscountedPrice.InexactFloat64()
	event.CategoryID = productID(product.CategoryID)
	return event
}

func (p *Publisher) publishProduct(event *events.ProductEvent) {
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		fields := logrus.Fields{
			"eventType": event.EventType,
			"productId": event.ProductID,
			"tenantId":  event.TenantID,
		}
		if err := p.publisher.PublishProduct(pubCtx, event); err != nil {
			p.logger.WithFields(fields).WithError(err).Error("Failed to publish product event")
			return
		}
		p.logger.WithFields(fields).Debug("Product event published")
	}()
}

// stockNotice describes one inventory event to emit for a committed movement
type stockNotice struct {
	eventType  string
	alertLevel string
	message    string
}

// stockNotices always reports the adjustment. It adds an out-of-stock alert
// when the movement empties the product, or a low-stock alert when it brings
// the counter down to the product's threshold.
func stockNotices(product *models.Product, movement *models.StockMovement) []stockNotice {
	notices := []stockNotice{{
		eventType:  events.InventoryAdjusted,
		alertLevel: "info",
		message: fmt.Sprintf("Stock adjusted: %s (SKU: %s) changed from %d to %d",
			product.Title, product.SKU, movement.StockBefore, movement.StockAfter),
	}}

	if movement.StockAfter >= movement.StockBefore {
		return notices
	}

	switch after := movement.StockAfter; {
	case after == 0:
		notices = append(notices, stockNotice{
			eventType:  events.InventoryOutOfStock,
			alertLevel: "critical",
			message:    fmt.Sprintf("Out of stock: %s (SKU: %s) is now out of stock", product.Title, product.SKU),
		})
	case after <= product.LowStockThreshold:
		notices = append(notices, stockNotice{
			eventType:  events.InventoryLowStock,
			alertLevel: "warning",
			message: fmt.Sprintf("Low stock alert: %s (SKU: %s) has %d units remaining (threshold: %d)",
				product.Title, product.SKU, after, product.LowStockThreshold),
		})
	}
	return notices
}

func adjustmentType(movement *models.StockMovement) string {
	switch {
	case movement.StockAfter > movement.StockBefore:
		return "add"
	case movement.StockAfter < movement.StockBefore:
		return "remove"
	default:
		return "set"
	}
}

// StockChanged publishes inventory.adjusted plus any low or out of stock alert
func (p *Publisher) StockChanged(ctx context.Context, product *models.Product, movement *models.StockMovement) {
	if p == nil {
		return
	}

	item := events.InventoryItem{
		ProductID:     productID(product.ID),
		Name:          product.Title,
		SKU:           product.SKU,
		CurrentStock:  movement.StockAfter,
		PreviousStock: movement.StockBefore,
		ReorderPoint:  product.LowStockThreshold,
	}
	reason := string(movement.StockType)
	if movement.Note != "" {
		reason = fmt.Sprintf("%s: %s", movement.StockType, movement.Note)
	}

	for _, notice := range stockNotices(product, movement) {
		event := events.NewInventoryEvent(notice.eventType, p.tenantID)
		event.Items = []events.InventoryItem{item}
		event.AdjustmentReason = reason
		event.AdjustmentType = adjustmentType(movement)
		event.AlertLevel = notice.alertLevel
		event.AlertMessage = notice.message
		event.CalculateSummary()

		eventType := notice.eventType
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()

			fields := logrus.Fields{
				"eventType":  eventType,
				"productId":  product.ID,
				"stockAfter": movement.StockAfter,
			}
			if err := p.publisher.PublishInventory(pubCtx, event); err != nil {
				p.logger.WithFields(fields).WithError(err).Error("Failed to publish inventory event")
				return
			}
			p.logger.WithFields(fields).Debug("Inventory event published")
		}()
	}
}
