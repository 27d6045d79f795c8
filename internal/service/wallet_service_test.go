package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ecycle/internal/model"
	"ecycle/pkg/apperr"
)

func TestGetWalletUnknownUserReadsAsZero(t *testing.T) {
	wallets := newMockWalletRepo()
	svc := NewWalletService(wallets)

	resp, err := svc.GetWallet(context.Background(), uuid.New().String())
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if resp.Balance != "0.00" {
		t.Errorf("balance = %q, want 0.00", resp.Balance)
	}
}

func TestGetWalletInvalidID(t *testing.T) {
	svc := NewWalletService(newMockWalletRepo())

	if _, err := svc.GetWallet(context.Background(), "not-a-uuid"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestGetWalletReturnsBalance(t *testing.T) {
	wallets := newMockWalletRepo()
	svc := NewWalletService(wallets)

	userID := uuid.New()
	_ = wallets.Save(context.Background(), &model.Wallet{
		ID:      uuid.New(),
		UserID:  userID,
		Balance: decimal.RequireFromString("123.45"),
	})

	resp, err := svc.GetWallet(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if resp.Balance != "123.45" {
		t.Errorf("balance = %q, want 123.45", resp.Balance)
	}
}

func TestListTransactions(t *testing.T) {
	wallets := newMockWalletRepo()
	svc := NewWalletService(wallets)

	userID := uuid.New()
	otherID := uuid.New()
	_ = wallets.AppendTransaction(context.Background(), &model.Transaction{
		UserID:    userID,
		RequestID: uuid.New(),
		Amount:    decimal.RequireFromString("50.00"),
		Kind:      model.TxKindCredit,
		Outcome:   model.TxOutcomeSuccess,
	})
	_ = wallets.AppendTransaction(context.Background(), &model.Transaction{
		UserID:    otherID,
		RequestID: uuid.New(),
		Amount:    decimal.RequireFromString("75.00"),
		Kind:      model.TxKindCredit,
		Outcome:   model.TxOutcomeSuccess,
	})

	txs, err := svc.ListTransactions(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("transactions = %d, want 1 (only the caller's)", len(txs))
	}
	if txs[0].Amount != "50.00" || txs[0].Kind != model.TxKindCredit {
		t.Errorf("transaction = %+v", txs[0])
	}
}
