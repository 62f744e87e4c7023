// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-focus-warrior/internal/config"
	"github.com/AccelByte/extend-focus-warrior/pkg/service"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Storage is the character repository selected at startup together with
// whatever connection it owns.
type Storage struct {
	Repository service.CharacterRepository
	// Backend is the backend actually in use, which is memory when the
	// configured one could not be opened.
	Backend string

	closers []func() error
}

// Close releases the connections owned by the repository.
func (s *Storage) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

// InitCharacterRepository opens the repository named by STORAGE_BACKEND.
//
// ============================================================
// DEVELOPER: Storage backends
// ============================================================
// - sqlite: durable local file at SQLITE_PATH (default)
// - redis:  key focus_warrior:<STORAGE_KEY> on REDIS_HOST:REDIS_PORT
// - postgres: shared database at POSTGRES_URL
// - memory: process-local, lost on exit
//
// A backend that cannot be opened degrades to memory so the
// character remains playable for the session.
// ============================================================
func InitCharacterRepository(ctx context.Context, cfg *config.Config) *Storage {
	switch cfg.StorageBackend {
	case config.StorageSQLite:
		store, err := service.OpenSQLiteCharacterStore(cfg.SQLitePath, service.SQLiteCharacterStoreConfig{
			Key: cfg.StorageKey,
		})
		if err != nil {
			logrus.Errorf("failed to open sqlite storage at %s, progress will not survive restarts: %v", cfg.SQLitePath, err)
			return memoryStorage()
		}
		logrus.Infof("using sqlite character storage at %s", cfg.SQLitePath)
		return &Storage{Repository: store, Backend: config.StorageSQLite, closers: []func() error{store.Close}}

	case config.StorageRedis:
		client, err := InitRedisClient(ctx, cfg)
		if err != nil {
			logrus.Errorf("failed to connect to Redis, progress will not survive restarts: %v", err)
			return memoryStorage()
		}
		store := service.NewRedisCharacterStore(client, service.RedisCharacterStoreConfig{Key: cfg.StorageKey})
		logrus.Infof("using redis character storage at %s:%s", cfg.RedisHost, cfg.RedisPort)
		return &Storage{Repository: store, Backend: config.StorageRedis, closers: []func() error{client.Close}}

	case config.StoragePostgres:
		store, err := service.OpenPostgresCharacterStore(ctx, cfg.PostgresURL, service.PostgresCharacterStoreConfig{
			Key: cfg.StorageKey,
		})
		if err != nil {
			logrus.Errorf("failed to open postgres storage, progress will not survive restarts: %v", err)
			return memoryStorage()
		}
		return &Storage{Repository: store, Backend: config.StoragePostgres, closers: []func() error{store.Close}}

	default:
		logrus.Infof("using in-memory character storage")
		return memoryStorage()
	}
}

func memoryStorage() *Storage {
	return &Storage{Repository: service.NewMemoryCharacterStore(), Backend: config.StorageMemory}
}

// InitRedisClient connects to Redis, retrying the first ping with
// exponential backoff.
func InitRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost + ":" + cfg.RedisPort,
		Password:     cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.RedisRetryDelay()
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(cfg.RedisMaxRetries)), ctx)

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		policy,
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis at %s unreachable: %w", client.Options().Addr, err)
	}

	logrus.Info("Redis client initialized")
	return client, nil
}
