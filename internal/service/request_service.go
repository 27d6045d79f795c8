package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"ecycle/internal/model"
	"ecycle/internal/notification"
	"ecycle/internal/repository"
	"ecycle/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResponseWindow is the fixed period an agent has to accept or decline an
// assignment before the sweeper reclaims it.
const ResponseWindow = 12 * time.Hour

// --- DTOs ---

type SubmitRequestDTO struct {
	RequesterID    string   `json:"requester_id" binding:"required"`
	RequesterName  string   `json:"requester_name" binding:"required"`
	RequesterEmail string   `json:"requester_email" binding:"required,email"`
	PickupAddress  string   `json:"pickup_address" binding:"required"`
	DeviceType     string   `json:"device_type" binding:"required"`
	Brand          string   `json:"brand"`
	Model          string   `json:"model"`
	Condition      string   `json:"condition" binding:"omitempty,oneof=WORKING PARTIALLY_WORKING NOT_WORKING"`
	Quantity       int      `json:"quantity"`
	Remarks        string   `json:"remarks"`
	ImagePaths     []string `json:"image_paths"`
}

type ApproveRequestDTO struct {
	AllocatedRange  string `json:"allocated_range"`
	AllocatedAmount string `json:"allocated_amount"` // decimal string, alternative to a range
}

type AssignPickupDTO struct {
	AgentID  string    `json:"agent_id" binding:"required"`
	PickupAt time.Time `json:"pickup_at" binding:"required"`
}

type VerifyCompletionDTO struct {
	Code   string `json:"code" binding:"required"`
	Amount string `json:"amount" binding:"required"` // decimal string
}

type AssignmentResponse struct {
	AgentID          string `json:"agent_id,omitempty"`
	AgentName        string `json:"agent_name,omitempty"`
	PickupAt         string `json:"pickup_at,omitempty"`
	AssignedAt       string `json:"assigned_at,omitempty"`
	ResponseStatus   string `json:"response_status,omitempty"`
	ResponseDeadline string `json:"response_deadline,omitempty"`
	RespondedAt      string `json:"responded_at,omitempty"`
}

type RequestResponse struct {
	ID              string              `json:"id"`
	RequesterID     string              `json:"requester_id"`
	RequesterName   string              `json:"requester_name"`
	RequesterEmail  string              `json:"requester_email"`
	PickupAddress   string              `json:"pickup_address"`
	DeviceType      string              `json:"device_type"`
	Brand           string              `json:"brand,omitempty"`
	Model           string              `json:"model,omitempty"`
	Condition       string              `json:"condition,omitempty"`
	Quantity        int                 `json:"quantity"`
	Remarks         string              `json:"remarks,omitempty"`
	ImagePaths      string              `json:"image_paths,omitempty"`
	Status          string              `json:"status"`
	RejectionReason string              `json:"rejection_reason,omitempty"`
	AllocatedRange  string              `json:"allocated_range,omitempty"`
	AllocatedAmount string              `json:"allocated_amount,omitempty"`
	Assignment      *AssignmentResponse `json:"assignment,omitempty"`
	PaymentStatus   string              `json:"payment_status,omitempty"`
	PaidAmount      string              `json:"paid_amount,omitempty"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
}

// --- Interface ---

// RequestService is the authority for every lifecycle transition on a
// pickup request. Each operation reads, validates the guard and writes as
// one atomic unit; concurrent operations on the same request serialize on
// the row lock taken inside the unit.
type RequestService interface {
	Submit(ctx context.Context, req SubmitRequestDTO) (RequestResponse, error)
	Approve(ctx context.Context, id, adminID string, req ApproveRequestDTO) (RequestResponse, error)
	Reject(ctx context.Context, id, adminID, reason string) (RequestResponse, error)
	AssignPickup(ctx context.Context, id, adminID string, req AssignPickupDTO) (RequestResponse, error)
	AgentRespond(ctx context.Context, id, agentID string, accept bool) (RequestResponse, error)
	RequestCompletionCode(ctx context.Context, id, agentID string) (RequestResponse, error)
	VerifyCompletion(ctx context.Context, id, agentID string, req VerifyCompletionDTO) (RequestResponse, error)
	ExpireAssignment(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id string) (RequestResponse, error)
	ListByRequester(ctx context.Context, requesterID string) ([]RequestResponse, error)
	ListByAgent(ctx context.Context, agentID string) ([]RequestResponse, error)
	ListByStatus(ctx context.Context, status string, page, limit int) ([]RequestResponse, int64, error)
}

type broadcaster interface {
	GetBroadcast() chan []byte
}

type requestService struct {
	requests repository.RequestRepository
	wallets  repository.WalletRepository
	users    repository.UserRepository
	audits   repository.AuditRepository
	tx       repository.TransactionManager
	notifier notification.Dispatcher
	hub      broadcaster // optional websocket hub
}

// NewRequestService wires the lifecycle core. notifier and hub may be nil.
func NewRequestService(
	requests repository.RequestRepository,
	wallets repository.WalletRepository,
	users repository.UserRepository,
	audits repository.AuditRepository,
	tx repository.TransactionManager,
	notifier notification.Dispatcher,
	hub broadcaster,
) RequestService {
	return &requestService{
		requests: requests,
		wallets:  wallets,
		users:    users,
		audits:   audits,
		tx:       tx,
		notifier: notifier,
		hub:      hub,
	}
}

// --- Transitions ---

func (s *requestService) Submit(ctx context.Context, req SubmitRequestDTO) (RequestResponse, error) {
	requesterID, err := uuid.Parse(req.RequesterID)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("%w: invalid requester_id", apperr.ErrValidation)
	}
	if req.RequesterName == "" || req.RequesterEmail == "" {
		return RequestResponse{}, fmt.Errorf("%w: requester name and email are required", apperr.ErrValidation)
	}
	if req.DeviceType == "" || req.PickupAddress == "" {
		return RequestResponse{}, fmt.Errorf("%w: device type and pickup address are required", apperr.ErrValidation)
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	record := model.PickupRequest{
		RequesterID:    requesterID,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		PickupAddress:  req.PickupAddress,
		DeviceType:     req.DeviceType,
		Brand:          req.Brand,
		Model:          req.Model,
		Condition:      req.Condition,
		Quantity:       req.Quantity,
		Remarks:        req.Remarks,
		ImagePaths:     joinPaths(req.ImagePaths),
		Status:         model.StatusPending,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.requests.Create(txCtx, &record); createErr != nil {
			return fmt.Errorf("failed to create request: %w", createErr)
		}
		return s.audit(txCtx, &requesterID, model.ActionSubmitRequest, &record, map[string]interface{}{
			"device_type": record.DeviceType,
			"quantity":    record.Quantity,
		})
	})
	if err != nil {
		return RequestResponse{}, err
	}

	s.emit(notification.Event{
		Kind:      notification.EventRequestSubmitted,
		RequestID: record.ID,
		Recipient: record.RequesterEmail,
		Data:      map[string]string{"userName": record.RequesterName},
	})

	return toRequestResponse(&record), nil
}

func (s *requestService) Approve(ctx context.Context, id, adminID string, req ApproveRequestDTO) (RequestResponse, error) {
	if req.AllocatedRange == "" && req.AllocatedAmount == "" {
		return RequestResponse{}, fmt.Errorf("%w: an allocated range or amount is required", apperr.ErrValidation)
	}

	var allocated *decimal.Decimal
	if req.AllocatedAmount != "" {
		parsed, parseErr := decimal.NewFromString(req.AllocatedAmount)
		if parseErr != nil || parsed.IsNegative() {
			return RequestResponse{}, fmt.Errorf("%w: allocated_amount must be a non-negative decimal", apperr.ErrValidation)
		}
		allocated = &parsed
	}

	record, err := s.transition(ctx, id, adminID, model.ActionApproveRequest,
		func(r *model.PickupRequest) error {
			if r.Status != model.StatusPending {
				return fmt.Errorf("%w: cannot approve a %s request", apperr.ErrInvalidTransition, r.Status)
			}
			r.Status = model.StatusApproved
			r.AllocatedRange = req.AllocatedRange
			r.AllocatedAmount = allocated
			return nil
		},
		map[string]interface{}{"allocated_range": req.AllocatedRange, "allocated_amount": req.AllocatedAmount},
	)
	if err != nil {
		return RequestResponse{}, err
	}

	s.emit(notification.Event{
		Kind:      notification.EventRequestApproved,
		RequestID: record.ID,
		Recipient: record.RequesterEmail,
		Data: map[string]string{
			"userName":       record.RequesterName,
			"allocatedRange": record.AllocatedRange,
		},
	})

	return toRequestResponse(record), nil
}

func (s *requestService) Reject(ctx context.Context, id, adminID, reason string) (RequestResponse, error) {
	if reason == "" {
		reason = "Not provided"
	}

	record, err := s.transition(ctx, id, adminID, model.ActionRejectRequest,
		func(r *model.PickupRequest) error {
			if r.Status != model.StatusPending && r.Status != model.StatusApproved {
				return fmt.Errorf("%w: cannot reject a %s request", apperr.ErrInvalidTransition, r.Status)
			}
			r.Status = model.StatusRejected
			r.RejectionReason = reason
			r.AllocatedRange = ""
			r.AllocatedAmount = nil
			return nil
		},
		map[string]interface{}{"reason": reason},
	)
	if err != nil {
		return RequestResponse{}, err
	}

	s.emit(notification.Event{
		Kind:      notification.EventRequestRejected,
		RequestID: record.ID,
		Recipient: record.RequesterEmail,
		Data: map[string]string{
			"userName": record.RequesterName,
			"reason":   reason,
		},
	})

	return toRequestResponse(record), nil
}

func (s *requestService) AssignPickup(ctx context.Context, id, adminID string, req AssignPickupDTO) (RequestResponse, error) {
	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("%w: invalid agent_id", apperr.ErrValidation)
	}
	if req.PickupAt.Before(time.Now()) {
		return RequestResponse{}, fmt.Errorf("%w: pickup time is in the past", apperr.ErrValidation)
	}

	agent, err := s.users.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, fmt.Errorf("%w: agent %s", apperr.ErrNotFound, req.AgentID)
		}
		return RequestResponse{}, fmt.Errorf("failed to load agent: %w", err)
	}
	if agent.Role != model.RoleAgent {
		return RequestResponse{}, fmt.Errorf("%w: user %s is not a pickup agent", apperr.ErrValidation, req.AgentID)
	}

	now := time.Now()
	deadline := now.Add(ResponseWindow)
	pickupAt := req.PickupAt

	record, err := s.transition(ctx, id, adminID, model.ActionAssignPickup,
		func(r *model.PickupRequest) error {
			if r.Status != model.StatusApproved {
				return fmt.Errorf("%w: cannot schedule a %s request", apperr.ErrInvalidTransition, r.Status)
			}
			r.Status = model.StatusScheduled
			r.Assignment = model.PickupAssignment{
				AgentID:          &agent.ID,
				AgentName:        agent.Username,
				PickupAt:         &pickupAt,
				AssignedAt:       &now,
				ResponseStatus:   model.ResponseAwaiting,
				ResponseDeadline: &deadline,
			}
			return nil
		},
		map[string]interface{}{"agent_id": agent.ID.String(), "pickup_at": pickupAt.Format(time.RFC3339)},
	)
	if err != nil {
		return RequestResponse{}, err
	}

	s.emit(notification.Event{
		Kind:      notification.EventPickupAssigned,
		RequestID: record.ID,
		Recipient: agent.Email,
		Data: map[string]string{
			"pickupPerson":  agent.Username,
			"userName":      record.RequesterName,
			"pickupAddress": record.PickupAddress,
			"deviceType":    record.DeviceType,
			"pickupAt":      pickupAt.Format(time.RFC3339),
			"respondBy":     deadline.Format(time.RFC3339),
		},
	})

	return toRequestResponse(record), nil
}

func (s *requestService) AgentRespond(ctx context.Context, id, agentID string, accept bool) (RequestResponse, error) {
	action := model.ActionAcceptPickup
	if !accept {
		action = model.ActionDeclinePickup
	}

	record, err := s.transition(ctx, id, agentID, action,
		func(r *model.PickupRequest) error {
			if r.Status != model.StatusScheduled || r.Assignment.ResponseStatus != model.ResponseAwaiting {
				return fmt.Errorf("%w: assignment is not awaiting a response", apperr.ErrInvalidTransition)
			}
			now := time.Now()
			if accept {
				r.Assignment.ResponseStatus = model.ResponseAccepted
				r.Assignment.RespondedAt = &now
				return nil
			}
			// Declining unwinds the proposal: the request re-enters the
			// assignable pool as if never scheduled, except responded_at.
			r.Status = model.StatusApproved
			r.ClearAssignment(&now)
			return nil
		},
		map[string]interface{}{"accepted": accept},
	)
	if err != nil {
		return RequestResponse{}, err
	}

	if accept {
		s.emit(notification.Event{
			Kind:      notification.EventPickupConfirmed,
			RequestID: record.ID,
			Recipient: record.RequesterEmail,
			Data: map[string]string{
				"userName":     record.RequesterName,
				"pickupPerson": record.Assignment.AgentName,
				"pickupAt":     formatTimePtr(record.Assignment.PickupAt),
			},
		})
	}

	return toRequestResponse(record), nil
}

func (s *requestService) RequestCompletionCode(ctx context.Context, id, agentID string) (RequestResponse, error) {
	code, err := generateCompletionCode()
	if err != nil {
		return RequestResponse{}, fmt.Errorf("failed to generate completion code: %w", err)
	}

	record, err := s.transition(ctx, id, agentID, model.ActionIssueCode,
		func(r *model.PickupRequest) error {
			if r.Status != model.StatusScheduled || r.Assignment.ResponseStatus != model.ResponseAccepted {
				return fmt.Errorf("%w: completion code requires a confirmed pickup", apperr.ErrInvalidTransition)
			}
			r.CompletionCode = code
			return nil
		},
		nil, // never write the code into the audit trail
	)
	if err != nil {
		return RequestResponse{}, err
	}

	s.emit(notification.Event{
		Kind:      notification.EventCompletionCode,
		RequestID: record.ID,
		Recipient: record.RequesterEmail,
		Data: map[string]string{
			"userName": record.RequesterName,
			"code":     code,
		},
	})

	return toRequestResponse(record), nil
}

// VerifyCompletion checks the one-time code and, in the same atomic unit,
// flips the request to Completed and settles the credit: lazy wallet
// creation, balance update, one immutable ledger row. Any failure past the
// guards aborts the entire unit so a Completed request can never lack its
// matching transaction.
func (s *requestService) VerifyCompletion(ctx context.Context, id, agentID string, req VerifyCompletionDTO) (RequestResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return RequestResponse{}, fmt.Errorf("%w: amount must be a non-negative decimal", apperr.ErrValidation)
	}

	record, err := s.transition(ctx, id, agentID, model.ActionCompleteRequest,
		func(r *model.PickupRequest) error {
			// Code check precedes the state guard: a replay against an
			// already-settled request reports InvalidOtp, never re-credits.
			if r.CompletionCode == "" ||
				subtle.ConstantTimeCompare([]byte(r.CompletionCode), []byte(req.Code)) != 1 {
				return apperr.ErrInvalidOTP
			}
			if r.Status != model.StatusScheduled || r.Assignment.ResponseStatus != model.ResponseAccepted {
				return fmt.Errorf("%w: cannot complete a %s request", apperr.ErrInvalidTransition, r.Status)
			}

			r.Status = model.StatusCompleted
			r.CompletionCode = ""
			r.PaymentStatus = model.PaymentStatusPaid
			r.PaidAmount = &amount
			r.AllocatedAmount = &amount
			return nil
		},
		map[string]interface{}{"amount": amount.StringFixed(2)},
		func(txCtx context.Context, r *model.PickupRequest) error {
			return s.settle(txCtx, r, amount)
		},
	)
	if err != nil {
		return RequestResponse{}, err
	}

	s.emit(notification.Event{
		Kind:      notification.EventRequestCompleted,
		RequestID: record.ID,
		Recipient: record.RequesterEmail,
		Data: map[string]string{
			"userName":     record.RequesterName,
			"deviceType":   record.DeviceType,
			"pickupPerson": record.Assignment.AgentName,
			"paidAmount":   amount.StringFixed(2),
		},
	})

	return toRequestResponse(record), nil
}

// ExpireAssignment is the sweeper's entry point: the same rollback an
// explicit decline performs, except responded_at stays unset because the
// agent never answered. Losing the race against a live AgentRespond
// surfaces as ErrInvalidTransition, which the sweeper treats as resolved.
func (s *requestService) ExpireAssignment(ctx context.Context, id uuid.UUID) error {
	_, err := s.transition(ctx, id.String(), "", model.ActionExpireAssignment,
		func(r *model.PickupRequest) error {
			if r.Status != model.StatusScheduled || r.Assignment.ResponseStatus != model.ResponseAwaiting {
				return fmt.Errorf("%w: assignment already resolved", apperr.ErrInvalidTransition)
			}
			if r.Assignment.ResponseDeadline == nil || time.Now().Before(*r.Assignment.ResponseDeadline) {
				return fmt.Errorf("%w: response deadline has not elapsed", apperr.ErrInvalidTransition)
			}
			r.Status = model.StatusApproved
			r.ClearAssignment(nil)
			return nil
		},
		map[string]interface{}{"expired": true},
	)
	return err
}

// --- Reads ---

func (s *requestService) GetByID(ctx context.Context, id string) (RequestResponse, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("%w: invalid request id", apperr.ErrValidation)
	}

	record, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, fmt.Errorf("%w: request %s", apperr.ErrNotFound, id)
		}
		return RequestResponse{}, fmt.Errorf("failed to load request: %w", err)
	}
	return toRequestResponse(record), nil
}

func (s *requestService) ListByRequester(ctx context.Context, requesterID string) ([]RequestResponse, error) {
	id, err := uuid.Parse(requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid requester id", apperr.ErrValidation)
	}

	records, err := s.requests.ListByRequester(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return toRequestResponses(records), nil
}

func (s *requestService) ListByAgent(ctx context.Context, agentID string) ([]RequestResponse, error) {
	id, err := uuid.Parse(agentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid agent id", apperr.ErrValidation)
	}

	records, err := s.requests.ListByAgent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned requests: %w", err)
	}
	return toRequestResponses(records), nil
}

func (s *requestService) ListByStatus(ctx context.Context, status string, page, limit int) ([]RequestResponse, int64, error) {
	if status != "" && !validStatus(status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, status)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	records, total, err := s.requests.ListByStatus(ctx, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}
	return toRequestResponses(records), total, nil
}

// --- Internals ---

// transition runs one guarded lifecycle mutation as a single atomic unit:
// row-lock, guard+mutate, save, optional in-tx side effects, audit row.
func (s *requestService) transition(
	ctx context.Context,
	id, actorID, action string,
	mutate func(r *model.PickupRequest) error,
	details map[string]interface{},
	sideEffects ...func(txCtx context.Context, r *model.PickupRequest) error,
) (*model.PickupRequest, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid request id", apperr.ErrValidation)
	}

	var actor *uuid.UUID
	if actorID != "" {
		if parsed, parseErr := uuid.Parse(actorID); parseErr == nil {
			actor = &parsed
		}
	}

	var record *model.PickupRequest
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, findErr := s.requests.GetByIDForUpdate(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: request %s", apperr.ErrNotFound, id)
			}
			return fmt.Errorf("failed to load request: %w", findErr)
		}

		if guardErr := mutate(r); guardErr != nil {
			return guardErr
		}

		if saveErr := s.requests.Save(txCtx, r); saveErr != nil {
			return fmt.Errorf("failed to save request: %w", saveErr)
		}

		for _, effect := range sideEffects {
			if effectErr := effect(txCtx, r); effectErr != nil {
				return effectErr
			}
		}

		if auditErr := s.audit(txCtx, actor, action, r, details); auditErr != nil {
			return auditErr
		}

		record = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// settle credits the requester's wallet and appends the ledger row. Runs
// inside the VerifyCompletion transaction; the wallet lock scope is per
// requester, independent of the request row lock.
func (s *requestService) settle(txCtx context.Context, r *model.PickupRequest, amount decimal.Decimal) error {
	wallet, err := s.wallets.GetOrCreateForUpdate(txCtx, r.RequesterID)
	if err != nil {
		return fmt.Errorf("failed to load wallet: %w", err)
	}

	wallet.Balance = wallet.Balance.Add(amount)
	if err := s.wallets.Save(txCtx, wallet); err != nil {
		return fmt.Errorf("failed to persist wallet: %w", err)
	}

	ledger := model.Transaction{
		UserID:    r.RequesterID,
		RequestID: r.ID,
		Amount:    amount,
		Kind:      model.TxKindCredit,
		Outcome:   model.TxOutcomeSuccess,
	}
	if err := s.wallets.AppendTransaction(txCtx, &ledger); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	return s.audit(txCtx, nil, model.ActionCreditWallet, r, map[string]interface{}{
		"amount":  amount.StringFixed(2),
		"balance": wallet.Balance.StringFixed(2),
	})
}

func (s *requestService) audit(ctx context.Context, actor *uuid.UUID, action string, r *model.PickupRequest, details map[string]interface{}) error {
	payload := "{}"
	if details != nil {
		raw, _ := json.Marshal(details)
		payload = string(raw)
	}
	entry := model.AuditLog{
		UserID:     actor,
		Action:     action,
		EntityID:   r.ID.String(),
		EntityName: r.DeviceType,
		Details:    payload,
	}
	if err := s.audits.Create(ctx, &entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// emit fans an event out to the dispatcher and the websocket hub after a
// transition committed. Delivery is fire-and-forget: failures are logged
// and never affect the transition.
func (s *requestService) emit(ev notification.Event) {
	if s.notifier != nil {
		go func() {
			if err := s.notifier.Dispatch(context.Background(), ev); err != nil {
				log.Printf("notification dispatch failed: %v", err)
			}
		}()
	}
	if s.hub != nil {
		payload, err := json.Marshal(map[string]interface{}{
			"event":      ev.Kind,
			"request_id": ev.RequestID.String(),
			"data":       ev.Data,
		})
		if err == nil {
			select {
			case s.hub.GetBroadcast() <- payload:
			default: // no dashboard connected, drop
			}
		}
	}
}

func generateCompletionCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func validStatus(status string) bool {
	switch status {
	case model.StatusPending, model.StatusApproved, model.StatusRejected,
		model.StatusScheduled, model.StatusCompleted:
		return true
	}
	return false
}

func joinPaths(paths []string) string {
	out := ""
	for i, p := range paths {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// --- Helpers ---

func toRequestResponse(r *model.PickupRequest) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID.String(),
		RequesterID:     r.RequesterID.String(),
		RequesterName:   r.RequesterName,
		RequesterEmail:  r.RequesterEmail,
		PickupAddress:   r.PickupAddress,
		DeviceType:      r.DeviceType,
		Brand:           r.Brand,
		Model:           r.Model,
		Condition:       r.Condition,
		Quantity:        r.Quantity,
		Remarks:         r.Remarks,
		ImagePaths:      r.ImagePaths,
		Status:          r.Status,
		RejectionReason: r.RejectionReason,
		AllocatedRange:  r.AllocatedRange,
		PaymentStatus:   r.PaymentStatus,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}

	if r.AllocatedAmount != nil {
		resp.AllocatedAmount = r.AllocatedAmount.StringFixed(2)
	}
	if r.PaidAmount != nil {
		resp.PaidAmount = r.PaidAmount.StringFixed(2)
	}

	if r.HasAssignment() {
		a := &AssignmentResponse{
			AgentName:        r.Assignment.AgentName,
			ResponseStatus:   r.Assignment.ResponseStatus,
			PickupAt:         formatTimePtr(r.Assignment.PickupAt),
			AssignedAt:       formatTimePtr(r.Assignment.AssignedAt),
			ResponseDeadline: formatTimePtr(r.Assignment.ResponseDeadline),
			RespondedAt:      formatTimePtr(r.Assignment.RespondedAt),
		}
		if r.Assignment.AgentID != nil {
			a.AgentID = r.Assignment.AgentID.String()
		}
		resp.Assignment = a
	}

	return resp
}

func toRequestResponses(records []model.PickupRequest) []RequestResponse {
	out := make([]RequestResponse, 0, len(records))
	for i := range records {
		out = append(out, toRequestResponse(&records[i]))
	}
	return out
}
