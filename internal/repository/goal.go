package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	Goals(userID string) ([]*model.Goal, error)
	// ActiveGoals is a filtered read on active = true, not a scan of all
	// goals. The reconciliation job never sees inactive goals.
	ActiveGoals(userID string) ([]*model.Goal, error)
	CountGoals(userID string) (int, error)
	SetActive(userID, goalID string, active bool) error
	Update(goal *model.Goal) error
	Delete(userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, why, frequency, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Why,
		goal.Frequency,
		goal.Active,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	err = goal.Normalize()
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) Goals(userID string) ([]*model.Goal, error) {
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at DESC`
	return r.selectGoals(query, userID)
}

func (r *goalRepository) ActiveGoals(userID string) ([]*model.Goal, error) {
	query := `SELECT * FROM goals WHERE user_id = $1 AND active = TRUE ORDER BY created_at ASC`
	return r.selectGoals(query, userID)
}

func (r *goalRepository) selectGoals(query, userID string) ([]*model.Goal, error) {
	var goals []*model.Goal

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	// Drop rows the normalizer cannot repair instead of failing the listing.
	valid := goals[:0]
	for _, goal := range goals {
		if goal.Normalize() == nil {
			valid = append(valid, goal)
		}
	}

	return valid, nil
}

func (r *goalRepository) CountGoals(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *goalRepository) SetActive(userID, goalID string, active bool) error {
	query := `UPDATE goals SET active = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, active, time.Now(), goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, why = $2, frequency = $3, active = $4, updated_at = $5
	          WHERE id = $6 AND user_id = $7`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Why,
		goal.Frequency,
		goal.Active,
		time.Now(),
		goal.ID,
		goal.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, goalID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
