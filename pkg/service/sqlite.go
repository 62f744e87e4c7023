package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"
	"github.com/AccelByte/extend-focus-warrior/pkg/service/migrations"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const migrationTable = "schema_migrations"

// SQLiteCharacterStore implements CharacterRepository on a local SQLite
// file, the durable storage of a single installation.
type SQLiteCharacterStore struct {
	sqlDB *sql.DB
	cfg   SQLiteCharacterStoreConfig
}

type SQLiteCharacterStoreConfig struct {
	// Key is the storage key; DefaultStorageKey when empty.
	Key string
}

// OpenSQLiteCharacterStore opens (creating if needed) the SQLite file at
// path and applies the embedded migrations.
func OpenSQLiteCharacterStore(path string, cfg SQLiteCharacterStoreConfig) (*SQLiteCharacterStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if cfg.Key == "" {
		cfg.Key = DefaultStorageKey
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logrus.Infof("opened sqlite character storage at %s", cleanPath)
	return &SQLiteCharacterStore{sqlDB: sqlDB, cfg: cfg}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteCharacterStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetCharacter reads the character document.
func (s *SQLiteCharacterStore) GetCharacter(ctx context.Context) (*character.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var document string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT document FROM character_storage WHERE key = ?`, s.cfg.Key,
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
func (s *SQLiteCharacterStore) UpdateCharacter(ctx context.Context, c *character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO character_storage (key, document, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
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
func (s *SQLiteCharacterStore) DeleteCharacter(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM character_storage WHERE key = ?`, s.cfg.Key,
	); err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return nil
}

// applyMigrations executes every embedded *.sql file at most once, in name order.
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`, migrationTable)
	if _, err := sqlDB.Exec(createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range sqlFiles {
		var count int
		if err := sqlDB.QueryRow(
			fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE name = ?`, migrationTable), file,
		).Scan(&count); err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		upSQL := extractUpMigration(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		tx, err := sqlDB.BeginTx(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(upSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(
			fmt.Sprintf(`INSERT INTO %s (name, applied_at) VALUES (?, ?)`, migrationTable),
			file, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
		logrus.Debugf("applied migration %s", file)
	}

	return nil
}

// extractUpMigration returns the statements between "+migrate Up" and
// "+migrate Down". Files without markers are returned whole.
func extractUpMigration(content string) string {
	upIdx := strings.Index(content, "+migrate Up")
	if upIdx == -1 {
		return content
	}
	rest := content[upIdx+len("+migrate Up"):]
	if downIdx := strings.Index(rest, "+migrate Down"); downIdx != -1 {
		rest = rest[:downIdx]
		// drop the "-- " comment prefix left before the Down marker
		if nl := strings.LastIndex(rest, "\n"); nl != -1 {
			rest = rest[:nl]
		}
	}
	return rest
}
