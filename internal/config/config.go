package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName      string
	AppEnv       string
	AppURL       string
	Port         string
	SupportEmail string
	ContentPath  string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Coach (OpenAI-compatible chat completions endpoint)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Daily check-in reconciliation
	ReconcileHourUTC  int    // hour of day (UTC) for the in-process schedule
	ReconcileWorkers  int    // fan-out concurrency across users
	JobAuthToken      string // bearer token for POST /jobs/daily-checkins
	ScheduleInProcess bool   // run the daily schedule inside the server process

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:      envString("APP_NAME", "Stride"),
		AppEnv:       envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:       envString("APP_URL", "http://localhost:8090"),
		Port:         envString("PORT", "8090"),
		SupportEmail: envString("SUPPORT_EMAIL", "hello@example.com"),
		ContentPath:  envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/stride.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// Coach
		OpenAIAPIKey:  envString("OPENAI_API_KEY", ""),
		OpenAIBaseURL: envString("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   envString("OPENAI_MODEL", "gpt-4.1-mini"),

		// Email (RESEND_API_KEY optional in development, required for summary emails in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Reconciliation (cron contract: 0 6 * * * UTC)
		ReconcileHourUTC:  envInt("RECONCILE_HOUR_UTC", 6),
		ReconcileWorkers:  envInt("RECONCILE_WORKERS", 4),
		JobAuthToken:      envString("JOB_AUTH_TOKEN", ""),
		ScheduleInProcess: envBool("SCHEDULE_IN_PROCESS", true),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production
// deployments. Development allows fallback modes for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.OpenAIAPIKey == "" {
		slog.Error("production deployment requires OPENAI_API_KEY",
			"hint", "set APP_ENV=development to run without the coach")
		os.Exit(1)
	}
	if cfg.JobAuthToken == "" && !cfg.ScheduleInProcess {
		slog.Error("production deployment requires JOB_AUTH_TOKEN when SCHEDULE_IN_PROCESS=false",
			"hint", "the external scheduler authenticates with this token")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
