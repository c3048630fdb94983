// Package schedule runs the reconciliation job on a fixed daily schedule
// inside the server process. Deployments that prefer an external
// scheduler disable this and drive POST /jobs/daily-checkins or
// cmd/reconciler from cron instead.
package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/stridehq/stride/internal/clock"
	"github.com/stridehq/stride/internal/service"
)

type Daily struct {
	reconcile *service.ReconcileService
	clock     clock.Clock
	hourUTC   int
}

func NewDaily(reconcile *service.ReconcileService, clk clock.Clock, hourUTC int) *Daily {
	if hourUTC < 0 || hourUTC > 23 {
		hourUTC = 6
	}
	return &Daily{
		reconcile: reconcile,
		clock:     clk,
		hourUTC:   hourUTC,
	}
}

// Start launches the schedule loop in a background goroutine. It stops
// when ctx is canceled.
func (d *Daily) Start(ctx context.Context) {
	go d.loop(ctx)
}

func (d *Daily) loop(ctx context.Context) {
	for {
		wait := time.Until(d.nextRun())
		slog.Info("daily checkin job scheduled", "in", wait.Round(time.Second).String())

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		_, err := d.reconcile.Run(ctx)
		if err != nil {
			// The run logs its own aggregate; only the fatal path lands here.
			slog.Error("daily checkin job failed", "error", err)
		}
	}
}

// nextRun returns the next wall-clock instant at hourUTC:00 UTC strictly
// after now.
func (d *Daily) nextRun() time.Time {
	now := d.clock.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), d.hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
