package model

import (
	"testing"
	"time"
)

func TestCheckinID(t *testing.T) {
	if got := CheckinID("2024-05-01", "g1"); got != "2024-05-01_g1" {
		t.Fatalf("CheckinID = %q; want 2024-05-01_g1", got)
	}
}

func TestDateKey_AlwaysUTC(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 23:30 in New York on April 30 is already May 1 in UTC.
	local := time.Date(2024, 4, 30, 23, 30, 0, 0, ny)
	if got := DateKey(local); got != "2024-05-01" {
		t.Fatalf("DateKey = %q; want 2024-05-01", got)
	}

	utc := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	if got := DateKey(utc); got != "2024-05-01" {
		t.Fatalf("DateKey = %q; want 2024-05-01", got)
	}
}
