package services

import (
	"context"
	"sync"

	"catalog-service/internal/models"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// recordingPublisher captures published notifications for assertions
type recordingPublisher struct {
	mu      sync.Mutex
	created []*models.Product
	updated [][]string
	deleted []*models.Product
	stock   []*models.StockMovement
}

func (p *recordingPublisher) ProductCreated(_ context.Context, product *models.Product) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, product)
}

func (p *recordingPublisher) ProductUpdated(_ context.Context, _, _ *models.Product, changedFields []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updated = append(p.updated, changedFields)
}

func (p *recordingPublisher) ProductDeleted(_ context.Context, product *models.Product) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, product)
}

func (p *recordingPublisher) StockChanged(_ context.Context, _ *models.Product, movement *models.StockMovement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stock = append(p.stock, movement)
}

func createTestProduct(id uint, stock int) *models.Product {
	return &models.Product{
		ID:                id,
		Title:             "Test Product",
		Slug:              "test-product",
		SKU:               "1-abcdef12",
		MRP:               dec("120"),
		Price:             dec("100"),
		DiscountType:      models.DiscountNone,
		DiscountValue:     decimal.Zero,
		DiscountedPrice:   dec("100"),
		TotalStock:        stock,
		LowStockThreshold: 5,
		Active:            true,
		CategoryID:        1,
		BrandID:           2,
	}
}

func createTestWallet(id uint, userID, balance string) *models.Wallet {
	return &models.Wallet{ID: id, UserID: userID, Balance: dec(balance)}
}
