package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stridehq/stride/internal/clock"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

var (
	ErrNoActiveGoals = errors.New("no active goals to check in on")
)

// CheckinService owns the interactive check-in flow: listing today's
// records, the existence helper the UI uses to avoid double prompting,
// and submitting notes for an AI-generated summary.
type CheckinService struct {
	checkins repository.CheckinRepository
	goals    repository.GoalRepository
	coach    *CoachService
	email    *EmailService
	clock    clock.Clock
}

func NewCheckinService(
	checkins repository.CheckinRepository,
	goals repository.GoalRepository,
	coach *CoachService,
	email *EmailService,
	clk clock.Clock,
) *CheckinService {
	return &CheckinService{
		checkins: checkins,
		goals:    goals,
		coach:    coach,
		email:    email,
		clock:    clk,
	}
}

// Today returns the current UTC date key and the user's check-in records
// for it, in composite-key order.
func (s *CheckinService) Today(userID string) (string, []*model.Checkin, error) {
	dateKey := model.DateKey(s.clock.Now())
	checkins, err := s.checkins.ByDate(userID, dateKey)
	if err != nil {
		return "", nil, err
	}
	return dateKey, checkins, nil
}

// ExistsForDate reports whether a check-in record exists for the goal on
// the given date. Same composite-key lookup the reconciliation job uses.
func (s *CheckinService) ExistsForDate(userID, dateKey, goalID string) (bool, error) {
	return s.checkins.Exists(userID, model.CheckinID(dateKey, goalID))
}

// Submit runs one interactive check-in: build the prompts from today's
// active goals and the user's notes, ask the coach for a summary, then
// mark every active goal's record for today generated (creating records
// the reconciliation job has not made yet). The coach call is all or
// nothing; per-goal store failures after it are logged and skipped so one
// bad record does not lose the summary for the rest.
func (s *CheckinService) Submit(ctx context.Context, user *model.User, notes string) (*CoachSummary, []*model.Checkin, error) {
	notes = strings.TrimSpace(notes)
	now := s.clock.Now()
	dateKey := model.DateKey(now)

	activeGoals, err := s.goals.ActiveGoals(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list active goals: %w", err)
	}
	if len(activeGoals) == 0 {
		return nil, nil, ErrNoActiveGoals
	}

	summary, err := s.coach.GenerateCheckin(ctx, CheckinSystemPrompt, BuildUserPrompt(dateKey, notes, activeGoals))
	if err != nil {
		return nil, nil, err
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode summary: %w", err)
	}

	var records []*model.Checkin
	for _, goal := range activeGoals {
		record := &model.Checkin{
			ID:        model.CheckinID(dateKey, goal.ID),
			UserID:    user.ID,
			GoalID:    goal.ID,
			DateKey:   dateKey,
			Status:    model.CheckinStatusGenerated,
			Notes:     notes,
			Summary:   string(summaryJSON),
			CreatedAt: now,
		}

		created, err := s.checkins.CreateIfAbsent(record)
		if err != nil {
			slog.Error("checkin submit failed to create record", "error", err, "user_id", user.ID, "goal_id", goal.ID, "date_key", dateKey)
			continue
		}
		if !created {
			// The job already placed a pending record for this goal.
			err = s.checkins.MarkGenerated(user.ID, record.ID, notes, string(summaryJSON))
			if err != nil {
				slog.Error("checkin submit failed to mark record generated", "error", err, "user_id", user.ID, "goal_id", goal.ID, "date_key", dateKey)
				continue
			}
		}

		records = append(records, record)
	}

	if user.HasEmail() && s.email != nil {
		err = s.email.SendCheckinSummary(*user.Email, dateKey, summary)
		if err != nil {
			slog.Warn("failed to email checkin summary", "error", err, "user_id", user.ID)
		}
	}

	return summary, records, nil
}
