package model

import (
	"errors"
	"testing"
)

func TestGoalNormalize(t *testing.T) {
	goal := &Goal{Title: "  Walk  ", Why: " fresh air ", Frequency: ""}

	err := goal.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if goal.Title != "Walk" || goal.Why != "fresh air" {
		t.Fatalf("goal = %+v; want trimmed fields", goal)
	}
	if goal.Frequency != FrequencyDaily {
		t.Fatalf("Frequency = %q; want daily default", goal.Frequency)
	}
}

func TestGoalNormalize_Invalid(t *testing.T) {
	err := (&Goal{Title: "   "}).Normalize()
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("err = %v; want ErrTitleRequired", err)
	}

	err = (&Goal{Title: "Walk", Frequency: "hourly"}).Normalize()
	if !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("err = %v; want ErrInvalidFrequency", err)
	}
}
