// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Storage backends accepted by STORAGE_BACKEND.
const (
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `envDefault:"value"` - set a default value
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
type Config struct {
	// ============================================================
	// Service configuration
	// ============================================================
	ServiceName string `env:"SERVICE_NAME" envDefault:"FocusWarrior"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// ============================================================
	// Metrics configuration
	// ============================================================
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsPort    int  `env:"METRICS_PORT" envDefault:"8080"`

	// ============================================================
	// Character storage configuration
	// ============================================================
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	StorageKey     string `env:"STORAGE_KEY" envDefault:"character-storage"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"data/focus-warrior.db"`
	PostgresURL    string `env:"POSTGRES_URL"`
	SaveTimeoutMs  int    `env:"SAVE_TIMEOUT_MS" envDefault:"3000"`

	// ============================================================
	// Redis configuration
	// ============================================================
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// ============================================================
	// Battle configuration
	// ============================================================
	RosterPath    string `env:"ROSTER_PATH" envDefault:"config/opponents.yaml"`
	BattleDelayMs int    `env:"BATTLE_DELAY_MS" envDefault:"2000"`

	// ============================================================
	// Focus timer configuration
	// ============================================================
	FocusWorkMinutes  int  `env:"FOCUS_WORK_MINUTES" envDefault:"25"`
	FocusBreakMinutes int  `env:"FOCUS_BREAK_MINUTES" envDefault:"5"`
	SessionExperience int  `env:"SESSION_EXPERIENCE" envDefault:"50"`
	FocusAutoStart    bool `env:"FOCUS_AUTO_START" envDefault:"true"`
	FocusAutoContinue bool `env:"FOCUS_AUTO_CONTINUE" envDefault:"true"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled        bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OtelZipkinEndpoint string `env:"OTEL_ZIPKIN_ENDPOINT"`
}

func (c *Config) SaveTimeout() time.Duration {
	return time.Duration(c.SaveTimeoutMs) * time.Millisecond
}

func (c *Config) BattleDelay() time.Duration {
	return time.Duration(c.BattleDelayMs) * time.Millisecond
}

func (c *Config) RedisRetryDelay() time.Duration {
	return time.Duration(c.RedisRetryDelayMs) * time.Millisecond
}

func (c *Config) FocusWorkDuration() time.Duration {
	return time.Duration(c.FocusWorkMinutes) * time.Minute
}

func (c *Config) FocusBreakDuration() time.Duration {
	return time.Duration(c.FocusBreakMinutes) * time.Minute
}
