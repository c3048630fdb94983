package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/stridehq/stride/internal/app"
	"github.com/stridehq/stride/internal/config"
	"github.com/stridehq/stride/internal/logger"
	"github.com/stridehq/stride/internal/routes"
	"github.com/stridehq/stride/internal/schedule"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	if cfg.ScheduleInProcess {
		daily := schedule.NewDaily(app.ReconcileService, app.Clock, cfg.ReconcileHourUTC)
		daily.Start(context.Background())
	}

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
