// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package focus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AccelByte/extend-focus-warrior/pkg/common"
)

// Phase is a stage of the focus cycle.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

const (
	DefaultWorkDuration      = 25 * time.Minute
	DefaultBreakDuration     = 5 * time.Minute
	DefaultSessionExperience = 50
)

// Rewarder receives the reward of each completed work phase.
type Rewarder interface {
	GainExperience(amount int) error
	IncrementSessionsCompleted()
}

// Config tunes a Timer. Zero values fall back to the defaults.
type Config struct {
	WorkDuration      time.Duration
	BreakDuration     time.Duration
	SessionExperience int
	// AutoContinue starts the next phase as soon as one completes.
	AutoContinue bool
}

func (c Config) withDefaults() Config {
	if c.WorkDuration <= 0 {
		c.WorkDuration = DefaultWorkDuration
	}
	if c.BreakDuration <= 0 {
		c.BreakDuration = DefaultBreakDuration
	}
	if c.SessionExperience <= 0 {
		c.SessionExperience = DefaultSessionExperience
	}
	return c
}

// Snapshot is a point-in-time view of a Timer.
type Snapshot struct {
	Phase     Phase         `json:"phase"`
	Remaining time.Duration `json:"remaining"`
	Running   bool          `json:"running"`
	Sessions  int           `json:"sessions"`
	// Progress is the elapsed share of the current phase in [0,1].
	Progress float64 `json:"progress"`
	Clock    string  `json:"clock"`
}

// Timer is a work/break countdown that rewards every completed work
// phase. It is safe for concurrent use.
type Timer struct {
	mu        sync.Mutex
	cfg       Config
	rewarder  Rewarder
	phase     Phase
	remaining time.Duration
	running   bool
	sessions  int

	interval time.Duration
}

// NewTimer creates a stopped timer at the start of a work phase.
func NewTimer(cfg Config, rewarder Rewarder) *Timer {
	cfg = cfg.withDefaults()
	return &Timer{
		cfg:       cfg,
		rewarder:  rewarder,
		phase:     PhaseWork,
		remaining: cfg.WorkDuration,
		interval:  time.Second,
	}
}

func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = true
}

func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
}

// Toggle starts a stopped timer or pauses a running one and reports
// whether the timer is now running.
func (t *Timer) Toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = !t.running
	return t.running
}

// Reset stops the timer and refills the current phase.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.remaining = t.durationOf(t.phase)
}

// SkipBreak abandons the current phase for a stopped, full work phase.
func (t *Timer) SkipBreak() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.phase = PhaseWork
	t.remaining = t.cfg.WorkDuration
}

// Tick advances a running timer by one second and reports whether the
// current phase completed.
func (t *Timer) Tick() bool {
	return t.tick(context.Background())
}

// Run ticks the timer once per second until ctx is done.
func (t *Timer) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.tick(ctx)
		}
	}
}

func (t *Timer) tick(ctx context.Context) bool {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return false
	}

	t.remaining -= time.Second
	if t.remaining > 0 {
		t.mu.Unlock()
		return false
	}

	completed := t.phase
	if completed == PhaseWork {
		t.sessions++
		t.phase = PhaseBreak
	} else {
		t.phase = PhaseWork
	}
	t.remaining = t.durationOf(t.phase)
	t.running = t.cfg.AutoContinue
	sessions := t.sessions
	t.mu.Unlock()

	t.complete(ctx, completed, sessions)
	return true
}

// complete must be called without t.mu held.
func (t *Timer) complete(ctx context.Context, completed Phase, sessions int) {
	scope := common.NewScope(ctx, "focus.complete")
	defer scope.Finish()
	scope.SetAttributes("phase", string(completed))

	if completed != PhaseWork {
		scope.Log.Info("break finished, ready for the next session")
		return
	}

	scope.SetAttributes("sessions", sessions)
	if t.rewarder == nil {
		return
	}
	if err := t.rewarder.GainExperience(t.cfg.SessionExperience); err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("failed to reward focus session: %v", err)
		return
	}
	t.rewarder.IncrementSessionsCompleted()
	scope.Log.Infof("focus session %d complete, +%d XP", sessions, t.cfg.SessionExperience)
}

// Snapshot returns the current state of the timer.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := t.durationOf(t.phase)
	progress := 0.0
	if total > 0 {
		progress = float64(total-t.remaining) / float64(total)
	}

	return Snapshot{
		Phase:     t.phase,
		Remaining: t.remaining,
		Running:   t.running,
		Sessions:  t.sessions,
		Progress:  progress,
		Clock:     FormatClock(t.remaining),
	}
}

func (t *Timer) durationOf(p Phase) time.Duration {
	if p == PhaseBreak {
		return t.cfg.BreakDuration
	}
	return t.cfg.WorkDuration
}

// FormatClock renders d as MM:SS, rounding partial seconds down.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
