package schedule

import (
	"testing"
	"time"

	"github.com/stridehq/stride/internal/clock"
)

func TestNextRun_LaterToday(t *testing.T) {
	clk := clock.Fixed{T: time.Date(2024, 5, 1, 3, 15, 0, 0, time.UTC)}
	d := NewDaily(nil, clk, 6)

	want := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	if got := d.nextRun(); !got.Equal(want) {
		t.Fatalf("nextRun = %v; want %v", got, want)
	}
}

func TestNextRun_Tomorrow(t *testing.T) {
	clk := clock.Fixed{T: time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)}
	d := NewDaily(nil, clk, 6)

	// Exactly at the trigger instant the next run is tomorrow, never "now"
	// again.
	want := time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC)
	if got := d.nextRun(); !got.Equal(want) {
		t.Fatalf("nextRun = %v; want %v", got, want)
	}
}

func TestNextRun_NonUTCLocalClock(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 01:00 in New York on May 1 is 05:00 UTC, so the run is an hour away.
	clk := clock.Fixed{T: time.Date(2024, 5, 1, 1, 0, 0, 0, ny)}
	d := NewDaily(nil, clk, 6)

	want := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	if got := d.nextRun(); !got.Equal(want) {
		t.Fatalf("nextRun = %v; want %v", got, want)
	}
}

func TestNewDaily_ClampsBadHour(t *testing.T) {
	clk := clock.Fixed{T: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	d := NewDaily(nil, clk, 42)

	want := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	if got := d.nextRun(); !got.Equal(want) {
		t.Fatalf("nextRun = %v; want %v", got, want)
	}
}
