package routes

import (
	"net/http"

	"github.com/stridehq/stride/internal/app"
	"github.com/stridehq/stride/internal/handler"
	"github.com/stridehq/stride/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService)
	goal := handler.NewGoalHandler(app.GoalService)
	checkin := handler.NewCheckinHandler(app.CheckinService)
	training := handler.NewTrainingHandler(app.TrainingService)
	job := handler.NewJobHandler(app.ReconcileService, app.Cfg.JobAuthToken)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.HandleFunc("GET /training", training.List)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /auth/session", rateLimiter(auth.CreateSession))
	mux.HandleFunc("POST /auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	// Goals
	mux.HandleFunc("GET /app/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /app/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("PATCH /app/goals/{id}/active", middleware.RequireAuth(goal.SetActive))

	// Check-ins
	mux.HandleFunc("GET /app/checkins/today", middleware.RequireAuth(checkin.Today))
	mux.HandleFunc("POST /app/checkins", middleware.RequireAuth(checkin.Submit))

	// ============================================================================
	// JOBS (external scheduler, bearer token)
	// ============================================================================

	mux.HandleFunc("POST /jobs/daily-checkins", job.DailyCheckins)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)

	return handler
}
