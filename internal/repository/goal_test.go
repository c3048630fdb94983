package repository

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

func seedGoal(t *testing.T, database *sqlx.DB, id, userID string, active bool, createdAt time.Time) {
	t.Helper()

	err := NewGoalRepository(database).Create(&model.Goal{
		ID:        id,
		UserID:    userID,
		Title:     "goal " + id,
		Frequency: model.FrequencyDaily,
		Active:    active,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}
}

func TestActiveGoals_FiltersInactive(t *testing.T) {
	database := testDB(t)
	seedUser(t, database, "u1")
	repo := NewGoalRepository(database)

	now := time.Now()
	seedGoal(t, database, "g1", "u1", true, now)
	seedGoal(t, database, "g2", "u1", false, now.Add(time.Second))
	seedGoal(t, database, "g3", "u1", true, now.Add(2*time.Second))

	active, err := repo.ActiveGoals("u1")
	if err != nil {
		t.Fatalf("ActiveGoals() error = %v", err)
	}

	if len(active) != 2 {
		t.Fatalf("active = %d; want 2", len(active))
	}
	if active[0].ID != "g1" || active[1].ID != "g3" {
		t.Fatalf("order = %q, %q; want g1, g3", active[0].ID, active[1].ID)
	}
}

func TestSetActive(t *testing.T) {
	database := testDB(t)
	seedUser(t, database, "u1")
	repo := NewGoalRepository(database)

	seedGoal(t, database, "g1", "u1", true, time.Now())

	err := repo.SetActive("u1", "g1", false)
	if err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	active, err := repo.ActiveGoals("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated goal still listed active: %d", len(active))
	}

	// Unknown goal or wrong owner.
	err = repo.SetActive("u1", "missing", true)
	if err != ErrGoalNotFound {
		t.Fatalf("err = %v; want ErrGoalNotFound", err)
	}
	err = repo.SetActive("u2", "g1", true)
	if err != ErrGoalNotFound {
		t.Fatalf("cross-user err = %v; want ErrGoalNotFound", err)
	}
}

func TestUserIDs_EnumeratesAll(t *testing.T) {
	database := testDB(t)
	repo := NewUserRepository(database)

	ids, err := repo.IDs()
	if err != nil {
		t.Fatalf("IDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("ids = %d; want 0", len(ids))
	}

	seedUser(t, database, "u1")
	seedUser(t, database, "u2")

	ids, err = repo.IDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %d; want 2", len(ids))
	}
}
