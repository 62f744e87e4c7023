// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// Variables already present in the environment win over .env
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse parses the current environment into a Config without touching
// .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	if c.MetricsEnabled && (c.MetricsPort < 1 || c.MetricsPort > 65535) {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %q", c.LogLevel)
	}

	switch c.StorageBackend {
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case StorageRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis backend")
		}
	case StoragePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required for the postgres backend")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND: %q (must be sqlite, redis, postgres or memory)", c.StorageBackend)
	}

	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("STORAGE_KEY is required")
	}

	if c.SaveTimeoutMs <= 0 {
		return fmt.Errorf("invalid SAVE_TIMEOUT_MS: %d (must be positive)", c.SaveTimeoutMs)
	}
	if c.BattleDelayMs < 0 {
		return fmt.Errorf("invalid BATTLE_DELAY_MS: %d (must be non-negative)", c.BattleDelayMs)
	}
	if c.RedisMaxRetries < 0 {
		return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d (must be non-negative)", c.RedisMaxRetries)
	}

	if c.FocusWorkMinutes <= 0 {
		return fmt.Errorf("invalid FOCUS_WORK_MINUTES: %d (must be positive)", c.FocusWorkMinutes)
	}
	if c.FocusBreakMinutes <= 0 {
		return fmt.Errorf("invalid FOCUS_BREAK_MINUTES: %d (must be positive)", c.FocusBreakMinutes)
	}
	if c.SessionExperience <= 0 {
		return fmt.Errorf("invalid SESSION_EXPERIENCE: %d (must be positive)", c.SessionExperience)
	}

	if c.OtelEnabled && c.OtelZipkinEndpoint == "" {
		logrus.Warn("OTEL_ENABLED is set without OTEL_ZIPKIN_ENDPOINT, spans will not be exported")
	}

	return nil
}
