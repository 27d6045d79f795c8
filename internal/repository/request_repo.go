package repository

import (
	"context"
	"time"

	"ecycle/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestRepository is the persistence contract for pickup requests. Save is
// an upsert that bumps updated_at; GetByIDForUpdate takes a row lock so
// concurrent transitions on the same request id serialize at the store.
type RequestRepository interface {
	Create(ctx context.Context, req *model.PickupRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.PickupRequest, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PickupRequest, error)
	Save(ctx context.Context, req *model.PickupRequest) error
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.PickupRequest, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]model.PickupRequest, error)
	ListByStatus(ctx context.Context, status string, page, limit int) ([]model.PickupRequest, int64, error)
	ListAwaitingResponseBefore(ctx context.Context, deadline time.Time) ([]model.PickupRequest, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *model.PickupRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PickupRequest, error) {
	var req model.PickupRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PickupRequest, error) {
	var req model.PickupRequest
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) Save(ctx context.Context, req *model.PickupRequest) error {
	return GetDB(ctx, r.db).Save(req).Error
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.PickupRequest, error) {
	var requests []model.PickupRequest
	if err := GetDB(ctx, r.db).Where("requester_id = ?", requesterID).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]model.PickupRequest, error) {
	var requests []model.PickupRequest
	if err := GetDB(ctx, r.db).Where("pickup_agent_id = ?", agentID).
		Order("pickup_pickup_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) ListByStatus(ctx context.Context, status string, page, limit int) ([]model.PickupRequest, int64, error) {
	var requests []model.PickupRequest
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.PickupRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Order("created_at DESC").Offset(offset).Limit(limit)
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if err := fetchQuery.Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *requestRepository) ListAwaitingResponseBefore(ctx context.Context, deadline time.Time) ([]model.PickupRequest, error) {
	var requests []model.PickupRequest
	if err := GetDB(ctx, r.db).
		Where("pickup_response_status = ? AND pickup_response_deadline < ?", model.ResponseAwaiting, deadline).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
