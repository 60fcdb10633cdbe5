package services

import (
	"context"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// WalletService manages per-user wallet balances and their ledger
type WalletService struct {
	repo   repository.Store
	logger *logrus.Entry
}

func NewWalletService(repo repository.Store, logger *logrus.Logger) *WalletService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &WalletService{
		repo:   repo,
		logger: logger.WithField("component", "wallet-service"),
	}
}

// GetWallet returns the user's wallet, creating an empty one on first access
func (s *WalletService) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	wallet, err := s.repo.GetWallet(ctx, userID)
	if err != nil {
		return nil, translate(err, "wallet", userID)
	}
	return wallet, nil
}

// Transact applies a credit, refund, debit or payment to the user's wallet
func (s *WalletService) Transact(ctx context.Context, userID string, req models.WalletTransactionRequest) (*WalletChange, error) {
	var change *WalletChange
	err := s.repo.WithTransaction(ctx, func(tx repository.Store) error {
		var err error
		change, err = applyWalletTransaction(ctx, tx, walletChangeInput{
			UserID: userID,
			Kind:   req.TransactionType,
			Amount: req.Amount,
			Note:   req.Note,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"walletId":        change.Wallet.ID,
		"transactionType": req.TransactionType,
		"amount":          req.Amount.StringFixed(2),
		"balanceAfter":    change.Transaction.BalanceAfter.StringFixed(2),
	}).Info("Wallet transaction applied")

	return change, nil
}

func (s *WalletService) ListTransactions(ctx context.Context, userID string, params models.ListParams) ([]models.WalletTransaction, int64, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	txns, total, err := s.repo.ListWalletTransactions(ctx, wallet.ID, params)
	if err != nil {
		return nil, 0, translate(err, "wallet transaction", nil)
	}
	return txns, total, nil
}
