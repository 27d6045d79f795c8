package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecycle/internal/repository"
	"ecycle/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type WalletResponse struct {
	UserID  string `json:"user_id"`
	Balance string `json:"balance"`
}

type TransactionResponse struct {
	ID        string `json:"id"`
	RequestID string `json:"request_id"`
	Amount    string `json:"amount"`
	Kind      string `json:"kind"`
	Outcome   string `json:"outcome"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

// WalletService exposes the read side of the ledger. All mutation happens
// inside VerifyCompletion's settlement; nothing here writes.
type WalletService interface {
	GetWallet(ctx context.Context, userID string) (WalletResponse, error)
	ListTransactions(ctx context.Context, userID string) ([]TransactionResponse, error)
}

type walletService struct {
	wallets repository.WalletRepository
}

func NewWalletService(wallets repository.WalletRepository) WalletService {
	return &walletService{wallets: wallets}
}

// GetWallet returns the wallet for a user. A user who has never been
// credited has no row yet; that reads as a zero balance, not an error.
func (s *walletService) GetWallet(ctx context.Context, userID string) (WalletResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return WalletResponse{}, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}

	wallet, err := s.wallets.GetByUserID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WalletResponse{UserID: userID, Balance: "0.00"}, nil
		}
		return WalletResponse{}, fmt.Errorf("failed to load wallet: %w", err)
	}

	return WalletResponse{
		UserID:  wallet.UserID.String(),
		Balance: wallet.Balance.StringFixed(2),
	}, nil
}

func (s *walletService) ListTransactions(ctx context.Context, userID string) ([]TransactionResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}

	txs, err := s.wallets.ListTransactions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, TransactionResponse{
			ID:        tx.ID.String(),
			RequestID: tx.RequestID.String(),
			Amount:    tx.Amount.StringFixed(2),
			Kind:      tx.Kind,
			Outcome:   tx.Outcome,
			CreatedAt: tx.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
