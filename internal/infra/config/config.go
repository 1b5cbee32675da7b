package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken  string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string
	LogLevel       string
	Environment    string

	CronSpecReminders string // cadence of the reminder dispatch run

	DeliveryMaxRetries int
	DeliveryBackoff    time.Duration
	WorkerCount        int
	TaskStatusTTL      time.Duration
	BotRestartBackoff  time.Duration // backoff before restarting a failed polling session
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is not set")
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD") // empty means no auth

	var err error
	cfg.RedisDB, err = intFromEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	if cfg.SendGridAPIKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY is not set")
	}

	cfg.EmailFrom = os.Getenv("EMAIL_FROM")
	if cfg.EmailFrom == "" {
		return nil, fmt.Errorf("EMAIL_FROM is not set")
	}
	cfg.EmailFromName = os.Getenv("EMAIL_FROM_NAME")
	if cfg.EmailFromName == "" {
		cfg.EmailFromName = "Habit Tracker"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecReminders = os.Getenv("CRON_SPEC_REMINDERS")
	if cfg.CronSpecReminders == "" {
		// Every 15 minutes. The per-day delivery log keeps repeat matches
		// across runs from turning into duplicate reminders.
		cfg.CronSpecReminders = "*/15 * * * *"
	}

	cfg.DeliveryMaxRetries, err = intFromEnv("DELIVERY_MAX_RETRIES", 3)
	if err != nil {
		return nil, err
	}

	backoffSeconds, err := intFromEnv("DELIVERY_BACKOFF_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.DeliveryBackoff = time.Duration(backoffSeconds) * time.Second

	cfg.WorkerCount, err = intFromEnv("DELIVERY_WORKER_COUNT", 4)
	if err != nil {
		return nil, err
	}

	statusTTLMinutes, err := intFromEnv("TASK_STATUS_TTL_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	cfg.TaskStatusTTL = time.Duration(statusTTLMinutes) * time.Minute

	restartSeconds, err := intFromEnv("BOT_RESTART_BACKOFF_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.BotRestartBackoff = time.Duration(restartSeconds) * time.Second

	return cfg, nil
}

func intFromEnv(name string, defaultValue int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return value, nil
}
