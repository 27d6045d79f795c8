package service

import (
	"context"
	"fmt"

	"ecycle/internal/model"
	"ecycle/internal/repository"

	"gorm.io/gorm"
)

// --- DTOs ---

type OverviewResponse struct {
	TotalRequests   int64            `json:"total_requests"`
	CountsByStatus  map[string]int64 `json:"counts_by_status"`
	AwaitingPickups int64            `json:"awaiting_pickups"`
	TotalCredited   string           `json:"total_credited"`
}

// --- Interface ---

type StatisticsService interface {
	GetOverview(ctx context.Context) (OverviewResponse, error)
}

type statisticsService struct {
	db      *gorm.DB
	wallets repository.WalletRepository
}

func NewStatisticsService(db *gorm.DB, wallets repository.WalletRepository) StatisticsService {
	return &statisticsService{db: db, wallets: wallets}
}

// GetOverview aggregates the admin dashboard numbers: request counts per
// lifecycle status, assignments still waiting on an agent, and the total
// amount ever credited to requesters.
func (s *statisticsService) GetOverview(ctx context.Context) (OverviewResponse, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	if err := s.db.WithContext(ctx).Model(&model.PickupRequest{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return OverviewResponse{}, fmt.Errorf("failed to count requests by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	var total int64
	for _, row := range rows {
		counts[row.Status] = row.Count
		total += row.Count
	}

	var awaiting int64
	if err := s.db.WithContext(ctx).Model(&model.PickupRequest{}).
		Where("pickup_response_status = ?", model.ResponseAwaiting).
		Count(&awaiting).Error; err != nil {
		return OverviewResponse{}, fmt.Errorf("failed to count awaiting pickups: %w", err)
	}

	credited, err := s.wallets.SumCredited(ctx)
	if err != nil {
		return OverviewResponse{}, fmt.Errorf("failed to sum credited amounts: %w", err)
	}

	return OverviewResponse{
		TotalRequests:   total,
		CountsByStatus:  counts,
		AwaitingPickups: awaiting,
		TotalCredited:   credited.StringFixed(2),
	}, nil
}
