// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"

	"github.com/sirupsen/logrus"
)

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logrus.Info("shutdown signal received")

	return a.Shutdown(context.Background())
}

// Start launches the metrics server, the focus timer loop and the
// progress logger. It returns immediately; Shutdown stops them.
func (a *App) Start(ctx context.Context) error {
	if a.metricsServer != nil {
		if err := a.metricsServer.Start(ctx); err != nil {
			return err
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.timer.Run(loopCtx)
	}()
	if a.cfg.FocusAutoStart {
		a.timer.Start()
		logrus.Infof("focus session started: %s remaining", a.timer.Snapshot().Clock)
	}

	updates, unsubscribe := a.store.Subscribe()
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer unsubscribe()
		a.logProgress(loopCtx, updates)
	}()

	logrus.Info("application started successfully")
	return nil
}

func (a *App) logProgress(ctx context.Context, updates <-chan character.Character) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-updates:
			if !ok {
				return
			}
			logrus.WithFields(logrus.Fields{
				"class":      c.Class,
				"level":      c.Level,
				"experience": c.Experience,
				"toNext":     c.ExperienceToNext(),
				"power":      c.PowerLevel(),
				"sessions":   c.SessionsCompleted,
				"battlesWon": c.BattlesWon,
			}).Info("character updated")
		}
	}
}

// Shutdown gracefully shuts down all application components.
//
// ============================================================
// DEVELOPER: Shutdown order is critical
// ============================================================
// Components are shut down in reverse dependency order:
// 1. Stop the focus timer loop and progress logger
// 2. Flush and close the progression store
// 3. Close character storage (SQLite file, Redis connection)
// 4. Stop the metrics server
// 5. Flush telemetry data (OpenTelemetry)
//
// IMPORTANT: Shutdown errors are logged but don't stop the
// shutdown sequence. Each component gets a chance to clean up.
// ============================================================
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdown.Do(func() {
		logrus.Info("shutting down application...")

		if a.cancel != nil {
			a.cancel()
		}
		a.wg.Wait()

		a.release(ctx)

		logrus.Info("application shutdown complete")
	})
	return nil
}

// release closes everything New acquired.
func (a *App) release(ctx context.Context) {
	if a.store != nil {
		if err := a.store.Flush(ctx); err != nil {
			logrus.Errorf("failed to save character on shutdown: %v", err)
		}
		a.store.Close()
	}

	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			logrus.Errorf("storage close error: %v", err)
		}
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			logrus.Errorf("metrics server shutdown error: %v", err)
		}
	}

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}
}
