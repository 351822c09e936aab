package config

import (
	"time"

	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"   // Local file database (default)
	DatabaseDriverPostgres DatabaseDriver = "postgres" // Server database, DSN in DATABASE_DSN
)

// StatusMode selects the status codes reported for successful writes.
type StatusMode string

const (
	StatusModeLegacy       StatusMode = "legacy"       // 201 for create, update and delete
	StatusModeConventional StatusMode = "conventional" // 201 for create, 200 for update and delete
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Audit
		Maintenance
		Tasks
	}

	HTTP struct {
		Port       int32
		Host       string
		StatusMode StatusMode
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // sqlite file
		DSN      string // postgres connection string
		LogLevel string // silent, error, warn, info
	}
	Auth struct {
		TokenExpiry time.Duration // 0 disables expiry
		BcryptCost  int

		// Rate limiting configuration
		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}
	Audit struct {
		RetentionDays int // Days to keep audit events (default: 90)
	}
	Maintenance struct {
		Enabled  bool
		Schedule string // Cron format: "30 3 * * *" = daily at 03:30
	}
	Tasks struct {
		Enabled         bool          // Run maintenance through the background task queue
		Workers         int           // Concurrent task workers (default: 2)
		ReleaseAfter    time.Duration // Stuck tasks are released after this (default: 15m)
		CleanupInterval time.Duration // How often finished tasks are purged (default: 1h)
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("http_status_mode", string(StatusModeLegacy))

	// Database defaults
	v.SetDefault("database_driver", string(DatabaseDriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	// Auth defaults
	v.SetDefault("auth_token_expiry", "720h")     // 30 days
	v.SetDefault("auth_bcrypt_cost", 12)          // bcrypt cost factor
	v.SetDefault("auth_max_login_attempts", 5)    // Max failed attempts
	v.SetDefault("auth_rate_limit_window", "15m") // Window for counting attempts
	v.SetDefault("auth_lockout_duration", "30m")  // Lockout duration

	v.SetDefault("audit_retention_days", 90)

	v.SetDefault("maintenance_enabled", false)
	v.SetDefault("maintenance_schedule", "30 3 * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", false)
	v.SetDefault("tasks_workers", 2)
	v.SetDefault("tasks_release_after", "15m")
	v.SetDefault("tasks_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port:       v.GetInt32("PORT"),
			Host:       v.GetString("HOST"),
			StatusMode: StatusMode(v.GetString("HTTP_STATUS_MODE")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Auth: Auth{
			TokenExpiry:      v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Maintenance: Maintenance{
			Enabled:  v.GetBool("MAINTENANCE_ENABLED"),
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASKS_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASKS_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASKS_CLEANUP_INTERVAL"),
		},
	}
}
