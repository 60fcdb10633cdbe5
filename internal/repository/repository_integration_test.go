//go:build integration

package repository_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"catalog-service/internal/config"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RepositorySuite runs against the database named by TEST_DATABASE_URL
type RepositorySuite struct {
	suite.Suite
	db   *gorm.DB
	repo *repository.Repository
	ctx  context.Context
}

func TestRepositorySuite(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, &RepositorySuite{})
}

func (s *RepositorySuite) SetupSuite() {
	db, err := gorm.Open(postgres.Open(os.Getenv("TEST_DATABASE_URL")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(config.AllModels()...))

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(20)

	s.db = db
	s.repo = repository.NewRepository(db, nil)
	s.ctx = context.Background()
}

func (s *RepositorySuite) TearDownSuite() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func unique(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func (s *RepositorySuite) createTaxonomy() (*models.Category, *models.Brand) {
	category := &models.Category{Title: "Lighting", Slug: unique("lighting"), Active: true}
	s.Require().NoError(s.repo.CreateCategory(s.ctx, category))
	brand := &models.Brand{Title: "Lumen", Slug: unique("lumen"), Active: true}
	s.Require().NoError(s.repo.CreateBrand(s.ctx, brand))
	return category, brand
}

func (s *RepositorySuite) createProduct(initialStock int) *models.Product {
	category, brand := s.createTaxonomy()
	product, err := services.NewProductService(s.repo, nil, nil, 5).CreateProduct(s.ctx, models.CreateProductRequest{
		Title:        unique("Desk Lamp"),
		MRP:          decimal.RequireFromString("60"),
		Price:        decimal.RequireFromString("49.99"),
		CostPrice:    decimal.RequireFromString("20"),
		InitialStock: initialStock,
		CategoryID:   category.ID,
		BrandID:      brand.ID,
	})
	s.Require().NoError(err)
	return product
}

func (s *RepositorySuite) TestConcurrentSalesNeverOversell() {
	product := s.createProduct(5)
	inventory := services.NewInventoryService(s.repo, nil, nil)

	const buyers = 12
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		sold, refused int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := inventory.UpdateStock(s.ctx, product.ID, models.UpdateStockRequest{
				StockType: models.StockSale,
				Quantity:  1,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				sold++
			case errors.Is(err, services.ErrInsufficientStock):
				refused++
			default:
				s.Failf("unexpected error", "%v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(5, sold)
	s.Equal(buyers-5, refused)

	stored, err := s.repo.GetProduct(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(0, stored.TotalStock)

	movements, total, err := s.repo.ListStockMovements(s.ctx, product.ID, models.ListParams{Page: 1, Limit: 100})
	s.Require().NoError(err)
	s.Equal(int64(6), total)

	sum := 0
	for _, m := range movements {
		sum += m.StockType.Sign() * m.Quantity
	}
	s.Equal(stored.TotalStock, sum)
}

func (s *RepositorySuite) TestConcurrentDebitsNeverOverdraw() {
	userID := unique("user")
	wallet := services.NewWalletService(s.repo, nil)

	_, err := wallet.Transact(s.ctx, userID, models.WalletTransactionRequest{
		TransactionType: models.TransactionCredit,
		Amount:          decimal.RequireFromString("10"),
	})
	s.Require().NoError(err)

	const debits = 15
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < debits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := wallet.Transact(s.ctx, userID, models.WalletTransactionRequest{
				TransactionType: models.TransactionDebit,
				Amount:          decimal.RequireFromString("1"),
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return
			}
			s.ErrorIs(err, services.ErrInsufficientFunds)
		}()
	}
	wg.Wait()

	s.Equal(10, accepted)

	stored, err := wallet.GetWallet(s.ctx, userID)
	s.Require().NoError(err)
	s.True(stored.Balance.IsZero(), "balance %s", stored.Balance)

	_, total, err := wallet.ListTransactions(s.ctx, userID, models.ListParams{Page: 1, Limit: 100})
	s.Require().NoError(err)
	s.Equal(int64(11), total)
}

func (s *RepositorySuite) TestSlugUniqueness() {
	category, brand := s.createTaxonomy()
	service := services.NewProductService(s.repo, nil, nil, 5)
	title := unique("Reading Lamp")

	req := models.CreateProductRequest{
		Title:      title,
		MRP:        decimal.RequireFromString("30"),
		Price:      decimal.RequireFromString("25"),
		CostPrice:  decimal.RequireFromString("10"),
		CategoryID: category.ID,
		BrandID:    brand.ID,
	}
	first, err := service.CreateProduct(s.ctx, req)
	s.Require().NoError(err)
	second, err := service.CreateProduct(s.ctx, req)
	s.Require().NoError(err)

	s.NotEqual(first.Slug, second.Slug)
	s.Equal(first.Slug+"-2", second.Slug)
	s.NotEqual(first.SKU, second.SKU)

	duplicate := *second
	duplicate.ID = 0
	duplicate.SKU = unique("sku")
	err = s.repo.CreateProduct(s.ctx, &duplicate)
	s.ErrorIs(err, repository.ErrDuplicate)
}

func (s *RepositorySuite) TestPlaceAndCancelOrderRestoresLedgers() {
	product := s.createProduct(4)
	userID := unique("buyer")

	wallet := services.NewWalletService(s.repo, nil)
	_, err := wallet.Transact(s.ctx, userID, models.WalletTransactionRequest{
		TransactionType: models.TransactionCredit,
		Amount:          decimal.RequireFromString("200"),
	})
	s.Require().NoError(err)

	orders := services.NewOrderService(s.repo, nil, nil)
	order, err := orders.PlaceOrder(s.ctx, userID, models.PlaceOrderRequest{
		Items:         []models.OrderLineRequest{{ProductID: product.ID, Quantity: 3}},
		PayWithWallet: true,
	})
	s.Require().NoError(err)
	s.Equal(models.OrderStatusPaid, order.Status)
	s.True(decimal.RequireFromString("149.97").Equal(order.Total), "total %s", order.Total)

	_, err = orders.CancelOrder(s.ctx, userID, order.ID)
	s.Require().NoError(err)

	stored, err := s.repo.GetProduct(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(4, stored.TotalStock)

	balance, err := wallet.GetWallet(s.ctx, userID)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("200").Equal(balance.Balance), "balance %s", balance.Balance)
}

func (s *RepositorySuite) TestCancelOrderAfterProductDeleted() {
	product := s.createProduct(4)
	userID := unique("buyer")

	wallet := services.NewWalletService(s.repo, nil)
	_, err := wallet.Transact(s.ctx, userID, models.WalletTransactionRequest{
		TransactionType: models.TransactionCredit,
		Amount:          decimal.RequireFromString("100"),
	})
	s.Require().NoError(err)

	orders := services.NewOrderService(s.repo, nil, nil)
	order, err := orders.PlaceOrder(s.ctx, userID, models.PlaceOrderRequest{
		Items:         []models.OrderLineRequest{{ProductID: product.ID, Quantity: 2}},
		PayWithWallet: true,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.DeleteProduct(s.ctx, product.ID))

	cancelled, err := orders.CancelOrder(s.ctx, userID, order.ID)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusCancelled, cancelled.Status)

	var stored models.Product
	s.Require().NoError(s.db.Unscoped().First(&stored, product.ID).Error)
	s.Equal(4, stored.TotalStock)

	balance, err := wallet.GetWallet(s.ctx, userID)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("100").Equal(balance.Balance), "balance %s", balance.Balance)
}
