package model

import (
	"errors"
	"strings"
	"time"
)

const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

var (
	ErrTitleRequired    = errors.New("goal title is required")
	ErrInvalidFrequency = errors.New("goal frequency must be daily or weekly")
)

type Goal struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Why       string    `db:"why"`
	Frequency string    `db:"frequency"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Normalize trims free-text fields and applies defaults for fields the
// store may hold in a malformed state. Returns an error for values that
// cannot be repaired.
func (g *Goal) Normalize() error {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return ErrTitleRequired
	}

	g.Why = strings.TrimSpace(g.Why)

	switch g.Frequency {
	case FrequencyDaily, FrequencyWeekly:
	case "":
		g.Frequency = FrequencyDaily
	default:
		return ErrInvalidFrequency
	}

	return nil
}
