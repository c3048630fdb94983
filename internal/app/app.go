package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/clock"
	"github.com/stridehq/stride/internal/config"
	"github.com/stridehq/stride/internal/db"
	"github.com/stridehq/stride/internal/repository"
	"github.com/stridehq/stride/internal/service"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Clock            clock.Clock
	AuthService      *service.AuthService
	UserService      *service.UserService
	GoalService      *service.GoalService
	CheckinService   *service.CheckinService
	CoachService     *service.CoachService
	EmailService     *service.EmailService
	TrainingService  *service.TrainingService
	ReconcileService *service.ReconcileService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	clk := clock.System{}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	checkinRepository := repository.NewCheckinRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	coachService := service.NewCoachService(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	goalService := service.NewGoalService(goalRepository, clk)
	checkinService := service.NewCheckinService(checkinRepository, goalRepository, coachService, emailService, clk)
	reconcileService := service.NewReconcileService(userRepository, goalRepository, checkinRepository, clk, cfg.ReconcileWorkers)
	authService := service.NewAuthService(
		userRepository,
		goalService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository)
	trainingService := service.NewTrainingService(cfg.ContentPath)

	return &App{
		Cfg:              cfg,
		DB:               database,
		Clock:            clk,
		AuthService:      authService,
		UserService:      userService,
		GoalService:      goalService,
		CheckinService:   checkinService,
		CoachService:     coachService,
		EmailService:     emailService,
		TrainingService:  trainingService,
		ReconcileService: reconcileService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
