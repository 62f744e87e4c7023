package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS character_storage (
    key TEXT PRIMARY KEY,
    document TEXT NOT NULL,
    updated_at BIGINT NOT NULL
);`

// PostgresCharacterStore implements CharacterRepository on a shared
// Postgres database, for installations that sync one character across
// machines.
type PostgresCharacterStore struct {
	sqlDB *sql.DB
	cfg   PostgresCharacterStoreConfig
}

type PostgresCharacterStoreConfig struct {
	// Key is the storage key; DefaultStorageKey when empty.
	Key string
	// ConnectTimeout bounds the initial ping; 8s when zero.
	ConnectTimeout time.Duration
}

// OpenPostgresCharacterStore connects to the database at dsn and ensures
// the character_storage table exists.
func OpenPostgresCharacterStore(ctx context.Context, dsn string, cfg PostgresCharacterStoreConfig) (*PostgresCharacterStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}
	if cfg.Key == "" {
		cfg.Key = DefaultStorageKey
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 8 * time.Second
	}

	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres DSN: %w", err)
	}
	connCfg.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		d := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
		return d.DialContext(ctx, network, addr)
	}

	// one writer; a small pool is plenty
	sqlDB := stdlib.OpenDB(*connCfg)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := sqlDB.ExecContext(pingCtx, postgresSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ensure postgres schema: %w", err)
	}

	logrus.Infof("opened postgres character storage at %s/%s", connCfg.Host, connCfg.Database)
	return &PostgresCharacterStore{sqlDB: sqlDB, cfg: cfg}, nil
}

// Close closes the connection pool.
func (s *PostgresCharacterStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetCharacter reads the character document.
func (s *PostgresCharacterStore) GetCharacter(ctx context.Context) (*character.Character, error) {
	var document string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT document FROM character_storage WHERE key = $1`, s.cfg.Key,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		logrus.Infof("no existing character under %s, returning new character", s.cfg.Key)
		c := character.New()
		return &c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}

	var c character.Character
	if err := json.Unmarshal([]byte(document), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &c, nil
}

// UpdateCharacter upserts the character document.
func (s *PostgresCharacterStore) UpdateCharacter(ctx context.Context, c *character.Character) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO character_storage (key, document, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET
		   document = EXCLUDED.document,
		   updated_at = EXCLUDED.updated_at`,
		s.cfg.Key,
		string(data),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	return nil
}

// DeleteCharacter removes the character document.
func (s *PostgresCharacterStore) DeleteCharacter(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM character_storage WHERE key = $1`, s.cfg.Key,
	); err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return nil
}
