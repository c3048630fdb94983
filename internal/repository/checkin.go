package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

var (
	ErrCheckinNotFound = errors.New("checkin not found")
)

type CheckinRepository interface {
	// CreateIfAbsent inserts the record unless one already exists for its
	// (user_id, id) composite key. Returns created=false and no error when
	// the key is taken, whatever the existing record's status. This is the
	// atomic conditional create the reconciliation job relies on: two
	// overlapping runs racing on the same key produce one row and one skip,
	// never an overwrite.
	CreateIfAbsent(checkin *model.Checkin) (created bool, err error)
	ByID(userID, checkinID string) (*model.Checkin, error)
	Exists(userID, checkinID string) (bool, error)
	ByDate(userID, dateKey string) ([]*model.Checkin, error)
	// MarkGenerated transitions a record to generated and attaches the
	// user's notes and the coach summary. The reconciliation job never
	// calls this; only the interactive check-in flow does.
	MarkGenerated(userID, checkinID, notes, summary string) error
}

type checkinRepository struct {
	db *sqlx.DB
}

func NewCheckinRepository(db *sqlx.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) CreateIfAbsent(checkin *model.Checkin) (bool, error) {
	query := `INSERT INTO checkins (user_id, id, goal_id, date_key, status, notes, summary, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (user_id, id) DO NOTHING`

	result, err := r.db.Exec(query,
		checkin.UserID,
		checkin.ID,
		checkin.GoalID,
		checkin.DateKey,
		checkin.Status,
		checkin.Notes,
		checkin.Summary,
		checkin.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (r *checkinRepository) ByID(userID, checkinID string) (*model.Checkin, error) {
	checkin := &model.Checkin{}
	query := `SELECT * FROM checkins WHERE user_id = $1 AND id = $2`

	err := r.db.Get(checkin, query, userID, checkinID)
	if err == sql.ErrNoRows {
		return nil, ErrCheckinNotFound
	}

	return checkin, err
}

func (r *checkinRepository) Exists(userID, checkinID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM checkins WHERE user_id = $1 AND id = $2`

	err := r.db.QueryRow(query, userID, checkinID).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *checkinRepository) ByDate(userID, dateKey string) ([]*model.Checkin, error) {
	var checkins []*model.Checkin
	query := `SELECT * FROM checkins WHERE user_id = $1 AND date_key = $2 ORDER BY id ASC`

	err := r.db.Select(&checkins, query, userID, dateKey)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}

func (r *checkinRepository) MarkGenerated(userID, checkinID, notes, summary string) error {
	query := `UPDATE checkins
	          SET status = $1, notes = $2, summary = $3
	          WHERE user_id = $4 AND id = $5`

	result, err := r.db.Exec(query, model.CheckinStatusGenerated, notes, summary, userID, checkinID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCheckinNotFound
	}

	return nil
}
