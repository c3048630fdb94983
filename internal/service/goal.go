package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride/internal/clock"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

// starterGoals are seeded for a fresh account so the first check-in has
// something to talk about.
var starterGoals = []string{
	"Drink 80oz water",
	"10-minute walk",
	"Protein at breakfast",
}

type GoalService struct {
	repo  repository.GoalRepository
	clock clock.Clock
}

func NewGoalService(repo repository.GoalRepository, clk clock.Clock) *GoalService {
	return &GoalService{
		repo:  repo,
		clock: clk,
	}
}

func (s *GoalService) Create(userID, title, why, frequency string) (*model.Goal, error) {
	now := s.clock.Now()
	goal := &model.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Why:       why,
		Frequency: frequency,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := goal.Normalize()
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.Goals(userID)
}

func (s *GoalService) ActiveGoals(userID string) ([]*model.Goal, error) {
	return s.repo.ActiveGoals(userID)
}

func (s *GoalService) SetActive(userID, goalID string, active bool) error {
	return s.repo.SetActive(userID, goalID, active)
}

// EnsureStarterGoals seeds the default goals for a user that has none.
// A user with any goal at all, active or not, is left untouched.
func (s *GoalService) EnsureStarterGoals(userID string) error {
	count, err := s.repo.CountGoals(userID)
	if err != nil {
		return fmt.Errorf("failed to count goals: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := s.clock.Now()
	for i, title := range starterGoals {
		// Stagger created_at so listings keep the seeded order.
		createdAt := now.Add(time.Duration(i) * time.Millisecond)
		goal := &model.Goal{
			ID:        uuid.New().String(),
			UserID:    userID,
			Title:     title,
			Frequency: model.FrequencyDaily,
			Active:    true,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		err = s.repo.Create(goal)
		if err != nil {
			return fmt.Errorf("failed to seed starter goal: %w", err)
		}
	}

	return nil
}
