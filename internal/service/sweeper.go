package service

import (
	"context"
	"errors"
	"log"
	"time"

	"ecycle/internal/repository"
	"ecycle/pkg/apperr"
)

// AssignmentSweeper periodically reclaims scheduled pickups whose response
// deadline elapsed without an agent answer, rolling them back through the
// state machine so they re-enter the assignable pool.
type AssignmentSweeper struct {
	requests repository.RequestRepository
	service  RequestService
}

func NewAssignmentSweeper(requests repository.RequestRepository, service RequestService) *AssignmentSweeper {
	return &AssignmentSweeper{requests: requests, service: service}
}

// Sweep rolls back every expired, unanswered assignment and returns how
// many it unwound. An assignment resolved between the scan and the rollback
// (an agent answering, or another sweep) fails the transition guard; that
// outcome means the work is already done and is not an error.
func (s *AssignmentSweeper) Sweep(ctx context.Context) (int, error) {
	expired, err := s.requests.ListAwaitingResponseBefore(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range expired {
		err := s.service.ExpireAssignment(ctx, expired[i].ID)
		if err != nil {
			if errors.Is(err, apperr.ErrInvalidTransition) || errors.Is(err, apperr.ErrNotFound) {
				continue // already resolved
			}
			log.Printf("sweeper: failed to expire assignment on request %s: %v", expired[i].ID, err)
			continue
		}
		swept++
	}
	return swept, nil
}

// Run sweeps on a fixed interval until the context is cancelled. The
// interval is a deployment parameter, not a correctness one: the deadline
// lives on the record and each rollback is individually guarded.
func (s *AssignmentSweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("assignment sweeper running every %s", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("assignment sweeper stopped")
			return
		case <-ticker.C:
			swept, err := s.Sweep(ctx)
			if err != nil {
				log.Printf("sweeper: scan failed: %v", err)
				continue
			}
			if swept > 0 {
				log.Printf("sweeper: rolled back %d expired assignments", swept)
			}
		}
	}
}
