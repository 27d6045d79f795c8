package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ecycle/internal/model"
)

// ── Mock TransactionManager ──

// mockTxManager runs the unit directly; atomicity is the store's concern
// and the services only care that everything happens inside one callback.
type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// ── Mock RequestRepository ──

type mockRequestRepo struct {
	requests map[uuid.UUID]*model.PickupRequest
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[uuid.UUID]*model.PickupRequest)}
}

func (m *mockRequestRepo) Create(_ context.Context, req *model.PickupRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	stored := *req
	m.requests[req.ID] = &stored
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*model.PickupRequest, error) {
	if r, ok := m.requests[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PickupRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *mockRequestRepo) Save(_ context.Context, req *model.PickupRequest) error {
	if _, ok := m.requests[req.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	req.UpdatedAt = time.Now()
	stored := *req
	m.requests[req.ID] = &stored
	return nil
}

func (m *mockRequestRepo) ListByRequester(_ context.Context, requesterID uuid.UUID) ([]model.PickupRequest, error) {
	var result []model.PickupRequest
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRequestRepo) ListByAgent(_ context.Context, agentID uuid.UUID) ([]model.PickupRequest, error) {
	var result []model.PickupRequest
	for _, r := range m.requests {
		if r.Assignment.AgentID != nil && *r.Assignment.AgentID == agentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRequestRepo) ListByStatus(_ context.Context, status string, _, _ int) ([]model.PickupRequest, int64, error) {
	var result []model.PickupRequest
	for _, r := range m.requests {
		if status == "" || r.Status == status {
			result = append(result, *r)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockRequestRepo) ListAwaitingResponseBefore(_ context.Context, deadline time.Time) ([]model.PickupRequest, error) {
	var result []model.PickupRequest
	for _, r := range m.requests {
		if r.Assignment.ResponseStatus == model.ResponseAwaiting &&
			r.Assignment.ResponseDeadline != nil &&
			r.Assignment.ResponseDeadline.Before(deadline) {
			result = append(result, *r)
		}
	}
	return result, nil
}

// ── Mock WalletRepository ──

type mockWalletRepo struct {
	wallets      map[uuid.UUID]*model.Wallet
	transactions []model.Transaction
}

func newMockWalletRepo() *mockWalletRepo {
	return &mockWalletRepo{wallets: make(map[uuid.UUID]*model.Wallet)}
}

func (m *mockWalletRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Wallet, error) {
	if w, ok := m.wallets[userID]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWalletRepo) GetOrCreateForUpdate(_ context.Context, userID uuid.UUID) (*model.Wallet, error) {
	if w, ok := m.wallets[userID]; ok {
		copied := *w
		return &copied, nil
	}
	wallet := &model.Wallet{ID: uuid.New(), UserID: userID, Balance: decimal.Zero}
	m.wallets[userID] = wallet
	copied := *wallet
	return &copied, nil
}

func (m *mockWalletRepo) Save(_ context.Context, wallet *model.Wallet) error {
	stored := *wallet
	m.wallets[wallet.UserID] = &stored
	return nil
}

func (m *mockWalletRepo) AppendTransaction(_ context.Context, tx *model.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	tx.CreatedAt = time.Now()
	m.transactions = append(m.transactions, *tx)
	return nil
}

func (m *mockWalletRepo) ListTransactions(_ context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	var result []model.Transaction
	for _, tx := range m.transactions {
		if tx.UserID == userID {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (m *mockWalletRepo) SumCredited(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range m.transactions {
		if tx.Kind == model.TxKindCredit && tx.Outcome == model.TxOutcomeSuccess {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uuid.UUID]*model.User
	tokens map[string]*model.RefreshToken
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[uuid.UUID]*model.User),
		tokens: make(map[string]*model.RefreshToken),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) List(_ context.Context, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) CreateRefreshToken(_ context.Context, token *model.RefreshToken) error {
	stored := *token
	m.tokens[token.Token] = &stored
	return nil
}

func (m *mockUserRepo) GetRefreshToken(_ context.Context, token string) (*model.RefreshToken, error) {
	if t, ok := m.tokens[token]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) DeleteRefreshTokensForUser(_ context.Context, userID uuid.UUID) error {
	for key, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, key)
		}
	}
	return nil
}

func (m *mockUserRepo) DeleteExpiredRefreshTokens(_ context.Context, before time.Time) error {
	for key, t := range m.tokens {
		if t.ExpiresAt.Before(before) {
			delete(m.tokens, key)
		}
	}
	return nil
}

// ── Mock AuditRepository ──

type mockAuditRepo struct {
	entries []model.AuditLog
}

func newMockAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{}
}

func (m *mockAuditRepo) Create(_ context.Context, entry *model.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditRepo) List(_ context.Context, _, _ int) ([]model.AuditLog, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

func (m *mockAuditRepo) actions() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}
