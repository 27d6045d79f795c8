package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"ecycle/internal/model"
)

func scheduleWithDeadline(t *testing.T, f *lifecycleFixture, deadline time.Time) uuid.UUID {
	t.Helper()

	submitted := f.submit(t)
	f.approve(t, submitted.ID)
	f.schedule(t, submitted.ID)

	id := uuid.MustParse(submitted.ID)
	f.requests.requests[id].Assignment.ResponseDeadline = &deadline
	return id
}

func TestSweepRollsBackExpiredAssignments(t *testing.T) {
	f := newLifecycleFixture(t)
	sweeper := NewAssignmentSweeper(f.requests, f.service)

	expired := scheduleWithDeadline(t, f, time.Now().Add(-time.Hour))
	live := scheduleWithDeadline(t, f, time.Now().Add(time.Hour))

	swept, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if swept != 1 {
		t.Fatalf("swept = %d, want 1", swept)
	}

	rolledBack := f.requests.requests[expired]
	if rolledBack.Status != model.StatusApproved || rolledBack.HasAssignment() {
		t.Errorf("expired request = %s with assignment %v, want Approved without assignment",
			rolledBack.Status, rolledBack.HasAssignment())
	}
	if rolledBack.Assignment.RespondedAt != nil {
		t.Error("sweeper rollback must not fabricate a responded_at")
	}

	untouched := f.requests.requests[live]
	if untouched.Status != model.StatusScheduled || untouched.Assignment.ResponseStatus != model.ResponseAwaiting {
		t.Error("a live assignment must survive the sweep")
	}
}

func TestSweepSkipsAssignmentsResolvedInFlight(t *testing.T) {
	f := newLifecycleFixture(t)
	sweeper := NewAssignmentSweeper(f.requests, f.service)

	id := scheduleWithDeadline(t, f, time.Now().Add(-time.Hour))

	// The agent answered before the sweep ran; nothing is awaiting anymore
	// and the sweep must leave the accepted assignment alone.
	f.requests.requests[id].Assignment.ResponseStatus = model.ResponseAccepted
	now := time.Now()
	f.requests.requests[id].Assignment.RespondedAt = &now

	swept, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if swept != 0 {
		t.Errorf("swept = %d, want 0", swept)
	}
	if f.requests.requests[id].Assignment.ResponseStatus != model.ResponseAccepted {
		t.Error("the accepted assignment must survive")
	}
}

func TestSweepEmptyPool(t *testing.T) {
	f := newLifecycleFixture(t)
	sweeper := NewAssignmentSweeper(f.requests, f.service)

	swept, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if swept != 0 {
		t.Errorf("swept = %d, want 0", swept)
	}
}
