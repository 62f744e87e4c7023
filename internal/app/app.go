// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/AccelByte/extend-focus-warrior/internal/bootstrap"
	"github.com/AccelByte/extend-focus-warrior/internal/config"
	"github.com/AccelByte/extend-focus-warrior/internal/server"
	"github.com/AccelByte/extend-focus-warrior/pkg/battle"
	"github.com/AccelByte/extend-focus-warrior/pkg/focus"
	"github.com/AccelByte/extend-focus-warrior/pkg/progression"

	"github.com/sirupsen/logrus"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	storage           *bootstrap.Storage
	store             *progression.Store
	arena             *battle.Arena
	timer             *focus.Timer
	metricsServer     *server.MetricsServer
	shutdownTelemetry func(context.Context) error

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	shutdown sync.Once
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Telemetry (so startup spans are recorded)
// 2. Character storage (sqlite, redis or memory)
// 3. Progression store (loads the character)
// 4. Arena (opponent roster + battle resolver)
// 5. Focus timer
// 6. Metrics server
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0, cfg.OtelZipkinEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	// ============================================================
	// Step 2-3: Character storage and progression
	// ============================================================
	app.storage = bootstrap.InitCharacterRepository(ctx, cfg)
	app.store = bootstrap.InitProgressionStore(ctx, app.storage.Repository, cfg)

	// ============================================================
	// Step 4: Arena
	// ============================================================
	arena, err := bootstrap.InitArena(cfg, app.store)
	if err != nil {
		app.release(ctx)
		return nil, fmt.Errorf("failed to init arena: %w", err)
	}
	app.arena = arena

	// ============================================================
	// Step 5: Focus timer
	// ============================================================
	app.timer = bootstrap.InitFocusTimer(cfg, app.store)

	// ============================================================
	// Step 6: Setup metrics server
	// ============================================================
	if cfg.MetricsEnabled {
		app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
		if err := app.metricsServer.Setup(); err != nil {
			app.release(ctx)
			return nil, fmt.Errorf("failed to setup metrics server: %w", err)
		}
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// Store returns the progression store owning the character.
func (a *App) Store() *progression.Store {
	return a.store
}

// Arena returns the battle arena.
func (a *App) Arena() *battle.Arena {
	return a.arena
}

// Timer returns the focus timer.
func (a *App) Timer() *focus.Timer {
	return a.timer
}

// Storage returns the character storage in use.
func (a *App) Storage() *bootstrap.Storage {
	return a.storage
}
