package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stridehq/stride/internal/clock"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

// ----- Fakes -----

type fakeUserRepo struct {
	ids    []string
	idsErr error
}

func (r *fakeUserRepo) Create(*model.User) error                  { return nil }
func (r *fakeUserRepo) ByID(string) (*model.User, error)          { return nil, repository.ErrUserNotFound }
func (r *fakeUserRepo) ByEmail(string) (*model.User, error)       { return nil, repository.ErrUserNotFound }
func (r *fakeUserRepo) Update(*model.User) error                  { return nil }
func (r *fakeUserRepo) Delete(string) error                       { return nil }
func (r *fakeUserRepo) IDs() ([]string, error)                    { return r.ids, r.idsErr }

type fakeGoalRepo struct {
	byUser map[string][]*model.Goal
	errFor map[string]error // user ID -> ActiveGoals error
}

func (r *fakeGoalRepo) Create(*model.Goal) error                      { return nil }
func (r *fakeGoalRepo) ByID(string, string) (*model.Goal, error)      { return nil, repository.ErrGoalNotFound }
func (r *fakeGoalRepo) Goals(userID string) ([]*model.Goal, error)    { return r.byUser[userID], nil }
func (r *fakeGoalRepo) CountGoals(string) (int, error)                { return 0, nil }
func (r *fakeGoalRepo) SetActive(string, string, bool) error          { return nil }
func (r *fakeGoalRepo) Update(*model.Goal) error                      { return nil }
func (r *fakeGoalRepo) Delete(string, string) error                   { return nil }

func (r *fakeGoalRepo) ActiveGoals(userID string) ([]*model.Goal, error) {
	if err := r.errFor[userID]; err != nil {
		return nil, err
	}
	var active []*model.Goal
	for _, goal := range r.byUser[userID] {
		if goal.Active {
			active = append(active, goal)
		}
	}
	return active, nil
}

// fakeCheckinStore is an in-memory store whose CreateIfAbsent is atomic,
// matching the conditional insert the real repository performs.
type fakeCheckinStore struct {
	mu      sync.Mutex
	records map[string]*model.Checkin // "uid/id" -> record
	writes  int
	failOn  map[string]error // goal ID -> CreateIfAbsent error
}

func newFakeCheckinStore() *fakeCheckinStore {
	return &fakeCheckinStore{
		records: make(map[string]*model.Checkin),
		failOn:  make(map[string]error),
	}
}

func (s *fakeCheckinStore) key(userID, id string) string { return userID + "/" + id }

func (s *fakeCheckinStore) CreateIfAbsent(checkin *model.Checkin) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failOn[checkin.GoalID]; err != nil {
		return false, err
	}

	k := s.key(checkin.UserID, checkin.ID)
	if _, ok := s.records[k]; ok {
		return false, nil
	}

	copied := *checkin
	s.records[k] = &copied
	s.writes++
	return true, nil
}

func (s *fakeCheckinStore) ByID(userID, id string) (*model.Checkin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkin, ok := s.records[s.key(userID, id)]
	if !ok {
		return nil, repository.ErrCheckinNotFound
	}
	return checkin, nil
}

func (s *fakeCheckinStore) Exists(userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[s.key(userID, id)]
	return ok, nil
}

func (s *fakeCheckinStore) ByDate(userID, dateKey string) ([]*model.Checkin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Checkin
	for _, checkin := range s.records {
		if checkin.UserID == userID && checkin.DateKey == dateKey {
			out = append(out, checkin)
		}
	}
	return out, nil
}

func (s *fakeCheckinStore) MarkGenerated(userID, id, notes, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkin, ok := s.records[s.key(userID, id)]
	if !ok {
		return repository.ErrCheckinNotFound
	}
	checkin.Status = model.CheckinStatusGenerated
	checkin.Notes = notes
	checkin.Summary = summary
	return nil
}

func (s *fakeCheckinStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// ----- Helpers -----

var testClock = clock.Fixed{T: time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)}

func goal(id, userID string, active bool) *model.Goal {
	return &model.Goal{
		ID:        id,
		UserID:    userID,
		Title:     "goal " + id,
		Frequency: model.FrequencyDaily,
		Active:    active,
	}
}

// ----- Tests -----

func TestRun_CreatesPendingForActiveGoalsOnly(t *testing.T) {
	users := &fakeUserRepo{ids: []string{"u1"}}
	goals := &fakeGoalRepo{byUser: map[string][]*model.Goal{
		"u1": {goal("g1", "u1", true), goal("g2", "u1", false)},
	}}
	store := newFakeCheckinStore()

	s := NewReconcileService(users, goals, store, testClock, 1)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Created != 1 || result.Skipped != 0 || result.Failed != 0 {
		t.Fatalf("result = %+v; want created=1 skipped=0 failed=0", result)
	}
	if result.DateKey != "2024-05-01" {
		t.Fatalf("DateKey = %q; want 2024-05-01", result.DateKey)
	}

	record, err := store.ByID("u1", "2024-05-01_g1")
	if err != nil {
		t.Fatalf("expected record for g1: %v", err)
	}
	if record.GoalID != "g1" || record.DateKey != "2024-05-01" || record.Status != model.CheckinStatusPending {
		t.Fatalf("record = %+v; want goalId=g1 dateKey=2024-05-01 status=pending", record)
	}

	if ok, _ := store.Exists("u1", "2024-05-01_g2"); ok {
		t.Fatal("inactive goal g2 must not get a checkin record")
	}
}

func TestRun_Idempotent(t *testing.T) {
	users := &fakeUserRepo{ids: []string{"u1"}}
	goals := &fakeGoalRepo{byUser: map[string][]*model.Goal{
		"u1": {goal("g1", "u1", true), goal("g2", "u1", true)},
	}}
	store := newFakeCheckinStore()

	s := NewReconcileService(users, goals, store, testClock, 2)

	_, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	writesAfterFirst := store.writes

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if result.Created != 0 || result.Skipped != 2 {
		t.Fatalf("second run result = %+v; want created=0 skipped=2", result)
	}
	if store.writes != writesAfterFirst {
		t.Fatalf("second run wrote %d new records; want 0", store.writes-writesAfterFirst)
	}
	if store.count() != 2 {
		t.Fatalf("store has %d records; want 2", store.count())
	}
}

func TestRun_SkipsExistingGeneratedRecord(t *testing.T) {
	users := &fakeUserRepo{ids: []string{"u1"}}
	goals := &fakeGoalRepo{byUser: map[string][]*model.Goal{
		"u1": {goal("g1", "u1", true)},
	}}
	store := newFakeCheckinStore()

	// The interactive flow already checked in today.
	_, err := store.CreateIfAbsent(&model.Checkin{
		ID:      "2024-05-01_g1",
		UserID:  "u1",
		GoalID:  "g1",
		DateKey: "2024-05-01",
		Status:  model.CheckinStatusGenerated,
		Notes:   "went well",
	})
	if err != nil {
		t.Fatal(err)
	}

	s := NewReconcileService(users, goals, store, testClock, 1)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Created != 0 || result.Skipped != 1 {
		t.Fatalf("result = %+v; want created=0 skipped=1", result)
	}

	record, _ := store.ByID("u1", "2024-05-01_g1")
	if record.Status != model.CheckinStatusGenerated || record.Notes != "went well" {
		t.Fatalf("existing generated record was touched: %+v", record)
	}
}

func TestRun_PartialFailureContinues(t *testing.T) {
	users := &fakeUserRepo{ids: []string{"u1"}}
	goals := &fakeGoalRepo{byUser: map[string][]*model.Goal{
		"u1": {goal("g1", "u1", true), goal("g2", "u1", true), goal("g3", "u1", true)},
	}}
	store := newFakeCheckinStore()
	store.failOn["g2"] = errors.New("store write failed")

	s := NewReconcileService(users, goals, store, testClock, 1)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Created != 2 || result.Failed != 1 {
		t.Fatalf("result = %+v; want created=2 failed=1", result)
	}

	for _, goalID := range []string{"g1", "g3"} {
		if ok, _ := store.Exists("u1", "2024-05-01_"+goalID); !ok {
			t.Errorf("expected record for %s despite g2 failure", goalID)
		}
	}
}

func TestRun_GoalListFailureIsolatedPerUser(t *testing.T) {
	users := &fakeUserRepo{ids: []string{"u1", "u2"}}
	goals := &fakeGoalRepo{
		byUser: map[string][]*model.Goal{
			"u2": {goal("g1", "u2", true)},
		},
		errFor: map[string]error{"u1": errors.New("query failed")},
	}
	store := newFakeCheckinStore()

	s := NewReconcileService(users, goals, store, testClock, 1)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Failed != 1 || result.Created != 1 {
		t.Fatalf("result = %+v; want failed=1 created=1", result)
	}
	if ok, _ := store.Exists("u2", "2024-05-01_g1"); !ok {
		t.Fatal("u1 failure must not block u2")
	}
}

func TestRun_UserEnumerationFailureIsFatal(t *testing.T) {
	users := &fakeUserRepo{idsErr: errors.New("collection scan failed")}
	store := newFakeCheckinStore()

	s := NewReconcileService(users, &fakeGoalRepo{}, store, testClock, 1)

	_, err := s.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail when users cannot be enumerated")
	}
	if store.count() != 0 {
		t.Fatalf("no records should exist after fatal enumeration, got %d", store.count())
	}
}

func TestRun_ConcurrentWorkersKeepAtMostOnePerKey(t *testing.T) {
	var ids []string
	byUser := make(map[string][]*model.Goal)
	for i := 0; i < 50; i++ {
		uid := fmt.Sprintf("u%02d", i)
		ids = append(ids, uid)
		byUser[uid] = []*model.Goal{
			goal(uid+"-g1", uid, true),
			goal(uid+"-g2", uid, true),
		}
	}
	users := &fakeUserRepo{ids: ids}
	goals := &fakeGoalRepo{byUser: byUser}
	store := newFakeCheckinStore()

	s := NewReconcileService(users, goals, store, testClock, 8)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Users != 50 || result.Goals != 100 || result.Created != 100 || result.Failed != 0 {
		t.Fatalf("result = %+v; want users=50 goals=100 created=100 failed=0", result)
	}
	if store.count() != 100 {
		t.Fatalf("store has %d records; want 100", store.count())
	}

	// Second concurrent pass creates nothing.
	result, err = s.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if result.Created != 0 || result.Skipped != 100 {
		t.Fatalf("second run result = %+v; want created=0 skipped=100", result)
	}
}

func TestRun_CanceledContextStopsEnqueuing(t *testing.T) {
	users := &fakeUserRepo{ids: []string{"u1", "u2"}}
	goals := &fakeGoalRepo{byUser: map[string][]*model.Goal{
		"u1": {goal("g1", "u1", true)},
		"u2": {goal("g2", "u2", true)},
	}}
	store := newFakeCheckinStore()

	s := NewReconcileService(users, goals, store, testClock, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Created != 0 {
		t.Fatalf("canceled run created %d records; want 0", result.Created)
	}
}
