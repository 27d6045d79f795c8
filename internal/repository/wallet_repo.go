package repository

import (
	"context"

	"ecycle/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository is the persistence contract for wallets and the
// append-only transaction ledger. GetOrCreateForUpdate serializes all wallet
// mutation per user id, independently of the per-request lock, so a
// requester with several concurrently-completing requests still accumulates
// a correct balance.
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Wallet, error)
	GetOrCreateForUpdate(ctx context.Context, userID uuid.UUID) (*model.Wallet, error)
	Save(ctx context.Context, wallet *model.Wallet) error
	AppendTransaction(ctx context.Context, tx *model.Transaction) error
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
	SumCredited(ctx context.Context) (decimal.Decimal, error)
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	var wallet model.Wallet
	if err := GetDB(ctx, r.db).First(&wallet, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetOrCreateForUpdate must run inside a transaction. The advisory lock
// serializes concurrent settlements for the same user even across the lazy
// creation window, where there is no row yet to lock.
func (r *walletRepository) GetOrCreateForUpdate(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	db := GetDB(ctx, r.db)

	if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "wallet:"+userID.String()).Error; err != nil {
		return nil, err
	}

	var wallet model.Wallet
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wallet, "user_id = ?", userID).Error
	if err == nil {
		return &wallet, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	wallet = model.Wallet{UserID: userID, Balance: decimal.Zero}
	if err := db.Create(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) Save(ctx context.Context, wallet *model.Wallet) error {
	return GetDB(ctx, r.db).Save(wallet).Error
}

func (r *walletRepository) AppendTransaction(ctx context.Context, tx *model.Transaction) error {
	return GetDB(ctx, r.db).Create(tx).Error
}

func (r *walletRepository) ListTransactions(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *walletRepository) SumCredited(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := GetDB(ctx, r.db).Model(&model.Transaction{}).
		Where("kind = ? AND outcome = ?", model.TxKindCredit, model.TxOutcomeSuccess).
		Select("SUM(amount)").Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
