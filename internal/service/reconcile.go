package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stridehq/stride/internal/clock"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

// ReconcileResult aggregates one reconciliation run. Unit failures are
// counted here rather than aborting the run; the invoker decides how to
// report them to the scheduler.
type ReconcileResult struct {
	DateKey string `json:"dateKey"`
	Users   int    `json:"users"`
	Goals   int    `json:"goals"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// ReconcileService walks every user's active goals once per day and makes
// sure each has a pending check-in record for today. Creation is an atomic
// conditional insert, so re-running for the same date is a no-op and two
// overlapping runs cannot duplicate or overwrite a record. The job reads
// goals and only ever inserts check-ins; it never updates either.
type ReconcileService struct {
	users    repository.UserRepository
	goals    repository.GoalRepository
	checkins repository.CheckinRepository
	clock    clock.Clock
	workers  int
}

func NewReconcileService(
	users repository.UserRepository,
	goals repository.GoalRepository,
	checkins repository.CheckinRepository,
	clk clock.Clock,
	workers int,
) *ReconcileService {
	if workers < 1 {
		workers = 1
	}
	return &ReconcileService{
		users:    users,
		goals:    goals,
		checkins: checkins,
		clock:    clk,
		workers:  workers,
	}
}

// Run executes one reconciliation pass for the current UTC date.
//
// Failing to enumerate users is fatal and returns an error; everything
// after that is per-unit. Users are fanned out across a bounded worker
// pool since no ordering is required between users or goals.
func (s *ReconcileService) Run(ctx context.Context) (*ReconcileResult, error) {
	now := s.clock.Now()
	dateKey := model.DateKey(now)

	userIDs, err := s.users.IDs()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate users: %w", err)
	}

	var goalCount, created, skipped, failed atomic.Int64

	jobs := make(chan string)
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for userID := range jobs {
				g, c, sk, f := s.reconcileUser(userID, dateKey, now)
				goalCount.Add(int64(g))
				created.Add(int64(c))
				skipped.Add(int64(sk))
				failed.Add(int64(f))
			}
		}()
	}

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			// The next scheduled run picks up where this one stopped;
			// idempotency makes the partial pass harmless.
			slog.Warn("reconcile run canceled", "date_key", dateKey, "error", ctx.Err())
			break
		}
		jobs <- userID
	}
	close(jobs)
	wg.Wait()

	result := &ReconcileResult{
		DateKey: dateKey,
		Users:   len(userIDs),
		Goals:   int(goalCount.Load()),
		Created: int(created.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}

	slog.Info("reconcile run complete",
		"date_key", result.DateKey,
		"users", result.Users,
		"goals", result.Goals,
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	return result, nil
}

// reconcileUser processes one user's active goals sequentially. A failure
// on one goal is logged and counted but never stops the remaining goals,
// and a failure to list one user's goals never stops other users.
func (s *ReconcileService) reconcileUser(userID, dateKey string, now time.Time) (goals, created, skipped, failed int) {
	activeGoals, err := s.goals.ActiveGoals(userID)
	if err != nil {
		slog.Error("reconcile failed to list active goals", "error", err, "user_id", userID, "date_key", dateKey)
		return 0, 0, 0, 1
	}

	for _, goal := range activeGoals {
		goals++

		ok, err := s.checkins.CreateIfAbsent(&model.Checkin{
			ID:        model.CheckinID(dateKey, goal.ID),
			UserID:    userID,
			GoalID:    goal.ID,
			DateKey:   dateKey,
			Status:    model.CheckinStatusPending,
			CreatedAt: now,
		})
		if err != nil {
			failed++
			slog.Error("reconcile failed to create checkin", "error", err, "user_id", userID, "goal_id", goal.ID, "date_key", dateKey)
			continue
		}

		if ok {
			created++
		} else {
			skipped++
		}
	}

	return goals, created, skipped, failed
}
