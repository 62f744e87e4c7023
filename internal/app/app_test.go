package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/AccelByte/extend-focus-warrior/internal/config"
	"github.com/AccelByte/extend-focus-warrior/pkg/character"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cfg.StorageBackend = config.StorageSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "character.db")
	cfg.RosterPath = filepath.Join("..", "..", "config", "opponents.yaml")
	cfg.MetricsEnabled = false
	cfg.BattleDelayMs = 0
	return cfg
}

func TestApp_Lifecycle(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	app, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if app.Storage().Backend != config.StorageSQLite {
		t.Errorf("Backend = %s, expected sqlite", app.Storage().Backend)
	}
	if app.Arena().Roster().Count() != 5 {
		t.Errorf("roster Count() = %d, expected 5", app.Arena().Roster().Count())
	}

	if err := app.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !app.Timer().Snapshot().Running {
		t.Error("focus timer should auto start")
	}

	if err := app.Store().ChangeClass(character.Archer); err != nil {
		t.Fatalf("ChangeClass() error = %v", err)
	}
	if err := app.Store().GainExperience(100); err != nil {
		t.Fatalf("GainExperience() error = %v", err)
	}

	if err := app.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := app.Shutdown(ctx); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}

	// progress survives a restart
	restarted, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New() after restart error = %v", err)
	}
	defer restarted.Shutdown(ctx)

	c := restarted.Store().Character()
	if c.Class != character.Archer || c.Level != 2 || c.Experience != 100 {
		t.Errorf("reloaded character = %s level %d xp %d, expected Archer level 2 xp 100",
			c.Class, c.Level, c.Experience)
	}
}

func TestApp_InvalidRoster(t *testing.T) {
	cfg := testConfig(t)
	cfg.RosterPath = t.TempDir() // a directory cannot be read as a roster

	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("New() should fail when the roster cannot be read")
	}
}
