package model

import (
	"time"
)

const (
	CheckinStatusPending   = "pending"
	CheckinStatusGenerated = "generated"
)

// DateKeyLayout is the ISO calendar date format used to key check-ins.
// Dates are always computed in UTC so "today" is unambiguous across users.
const DateKeyLayout = "2006-01-02"

// Checkin is one check-in record for a (user, goal, calendar date) triple.
// Its identity within a user's subtree is the composite ID returned by
// CheckinID; at most one record may exist per (user, goal, date).
type Checkin struct {
	ID        string    `db:"id"` // "{dateKey}_{goalID}"
	UserID    string    `db:"user_id"`
	GoalID    string    `db:"goal_id"`
	DateKey   string    `db:"date_key"`
	Status    string    `db:"status"`
	Notes     string    `db:"notes"`
	Summary   string    `db:"summary"` // JSON coach summary, empty until generated
	CreatedAt time.Time `db:"created_at"`
}

// CheckinID builds the deterministic composite key for a goal's check-in
// on a given date.
func CheckinID(dateKey, goalID string) string {
	return dateKey + "_" + goalID
}

// DateKey formats t as the UTC calendar date used for check-in identity.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}
