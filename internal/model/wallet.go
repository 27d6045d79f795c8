package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind enum constants
const (
	TxKindCredit = "CREDIT"
	TxKindDebit  = "DEBIT"
)

// TransactionOutcome enum constants
const (
	TxOutcomeSuccess = "SUCCESS"
	TxOutcomeFailed  = "FAILED"
)

// PaymentStatus constant set on a request once settlement commits
const PaymentStatusPaid = "PAID"

// Wallet holds a requester's running balance. Created lazily on first credit.
type Wallet struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Transaction is an append-only ledger entry. Rows are inserted inside the
// same database transaction as the wallet mutation and are never updated
// or deleted afterwards; the wallet balance must always equal the sum of
// SUCCESS credits minus SUCCESS debits per user.
type Transaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	RequestID uuid.UUID       `gorm:"type:uuid;not null;index" json:"request_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Kind      string          `gorm:"type:varchar(10);not null" json:"kind"`    // CREDIT, DEBIT
	Outcome   string          `gorm:"type:varchar(10);not null" json:"outcome"` // SUCCESS, FAILED
	CreatedAt time.Time       `json:"created_at"`
}
