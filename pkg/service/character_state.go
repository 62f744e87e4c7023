// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// characterStoreKeyPrefix namespaces the character document in a shared Redis.
const characterStoreKeyPrefix = "focus_warrior:"

// RedisCharacterStore implements CharacterRepository using Redis.
// The document is written without expiry: the character lives for the
// lifetime of the installation.
type RedisCharacterStore struct {
	client *redis.Client
	cfg    RedisCharacterStoreConfig
}

type RedisCharacterStoreConfig struct {
	// Key is the storage key; DefaultStorageKey when empty.
	Key string
}

// NewRedisCharacterStore creates a new Redis-backed character repository.
func NewRedisCharacterStore(
	client *redis.Client,
	cfg RedisCharacterStoreConfig,
) *RedisCharacterStore {
	if cfg.Key == "" {
		cfg.Key = DefaultStorageKey
	}
	return &RedisCharacterStore{
		client: client,
		cfg:    cfg,
	}
}

// makeCharacterStoreKey creates the Redis key of the character document
func makeCharacterStoreKey(key string) string {
	return fmt.Sprintf("%s%s", characterStoreKeyPrefix, key)
}

// GetCharacter retrieves the character document from Redis
func (r *RedisCharacterStore) GetCharacter(ctx context.Context) (*character.Character, error) {
	key := makeCharacterStoreKey(r.cfg.Key)

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		logrus.Infof("no existing character under %s, returning new character", key)
		c := character.New()
		return &c, nil
	}
	if err != nil {
		logrus.Errorf("failed to get character under %s: %v", key, err)
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var c character.Character
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		logrus.Errorf("failed to unmarshal character under %s: %v", key, err)
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}

	logrus.Infof("retrieved character under %s", key)
	return &c, nil
}

// UpdateCharacter writes the character document to Redis
func (r *RedisCharacterStore) UpdateCharacter(ctx context.Context, c *character.Character) error {
	key := makeCharacterStoreKey(r.cfg.Key)

	data, err := json.Marshal(c)
	if err != nil {
		logrus.Errorf("failed to marshal character under %s: %v", key, err)
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		logrus.Errorf("failed to set character under %s: %v", key, err)
		return fmt.Errorf("failed to set character: %w", err)
	}

	logrus.Debugf("updated character under %s", key)
	return nil
}

// DeleteCharacter removes the character document from Redis
func (r *RedisCharacterStore) DeleteCharacter(ctx context.Context) error {
	key := makeCharacterStoreKey(r.cfg.Key)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		logrus.Errorf("failed to delete character under %s: %v", key, err)
		return fmt.Errorf("failed to delete character: %w", err)
	}

	logrus.Infof("deleted character under %s", key)
	return nil
}
