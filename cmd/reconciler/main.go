// Command reconciler runs one daily check-in reconciliation pass and
// exits. Meant to be driven by cron (0 6 * * * UTC); the exit code is the
// success/failure signal the scheduler acts on. Re-running for the same
// date is a no-op.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/stridehq/stride/internal/app"
	"github.com/stridehq/stride/internal/config"
	"github.com/stridehq/stride/internal/logger"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	result, err := app.ReconcileService.Run(context.Background())
	if err != nil {
		slog.Error("reconcile run failed", "error", err)
		os.Exit(1)
	}

	if result.Failed > 0 {
		// Exit nonzero so the scheduler retries; idempotency makes the
		// retry touch only the goals that failed.
		os.Exit(1)
	}
}
