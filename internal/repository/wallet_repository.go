package repository

import (
	"context"

	"catalog-service/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ensureWallet creates the user's zero-balance wallet if it does not exist yet
func ensureWallet(db *gorm.DB, userID string) error {
	wallet := models.Wallet{UserID: userID, Balance: decimal.Zero}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&wallet).Error
}

func (r *Repository) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	db := r.db.WithContext(ctx)
	if err := ensureWallet(db, userID); err != nil {
		return nil, translateError(err)
	}

	var wallet models.Wallet
	if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, translateError(err)
	}
	return &wallet, nil
}

// GetWalletForUpdate locks the user's wallet row (creating it first if needed)
// until the surrounding transaction ends
func (r *Repository) GetWalletForUpdate(ctx context.Context, userID string) (*models.Wallet, error) {
	db := r.db.WithContext(ctx)
	if err := ensureWallet(db, userID); err != nil {
		return nil, translateError(err)
	}

	var wallet models.Wallet
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &wallet, nil
}

// SetWalletBalance writes the balance. Callers hold the row lock.
func (r *Repository) SetWalletBalance(ctx context.Context, walletID uint, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update("balance", balance)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateWalletTransaction appends a ledger row; transactions are never updated or deleted
func (r *Repository) CreateWalletTransaction(ctx context.Context, txn *models.WalletTransaction) error {
	return translateError(r.db.WithContext(ctx).Create(txn).Error)
}

func (r *Repository) ListWalletTransactions(ctx context.Context, walletID uint, params models.ListParams) ([]models.WalletTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WalletTransaction{}).Where("wallet_id = ?", walletID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var txns []models.WalletTransaction
	err := paginate(query.Order("created_at DESC, id DESC"), params).Find(&txns).Error
	return txns, total, translateError(err)
}
