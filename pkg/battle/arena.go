// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"
	"github.com/AccelByte/extend-focus-warrior/pkg/common"
	"github.com/AccelByte/extend-focus-warrior/pkg/metrics"

	"github.com/google/uuid"
)

// Progression is the part of the progression store the arena reads
// and rewards.
type Progression interface {
	Character() character.Character
	GainExperience(amount int) error
	IncrementBattlesWon()
}

// ArenaConfig tunes an Arena.
type ArenaConfig struct {
	// Delay is waited before a battle is resolved.
	Delay time.Duration
}

// Arena runs battles between the character and roster opponents and
// applies the rewards of a win to the progression store.
type Arena struct {
	roster      *Roster
	resolver    *Resolver
	progression Progression
	cfg         ArenaConfig
}

// NewArena creates a new arena.
func NewArena(roster *Roster, resolver *Resolver, progression Progression, cfg ArenaConfig) *Arena {
	return &Arena{
		roster:      roster,
		resolver:    resolver,
		progression: progression,
		cfg:         cfg,
	}
}

// Result is a finished battle against one opponent.
type Result struct {
	// ID identifies the battle in logs and traces.
	ID       string   `json:"id"`
	Opponent Opponent `json:"opponent"`
	Outcome  Outcome  `json:"outcome"`
}

// Roster returns the opponents available in this arena.
func (a *Arena) Roster() *Roster {
	return a.roster
}

// Fight battles the opponent with opponentID. The character's stats are
// read once the delay has passed. A win grants the outcome's experience
// and counts a won battle; a loss changes nothing. Cancelling ctx during
// the delay abandons the battle.
func (a *Arena) Fight(ctx context.Context, opponentID int) (*Result, error) {
	scope := common.NewScope(ctx, "battle.fight")
	defer scope.Finish()

	battleID := uuid.NewString()
	scope.SetAttributes("battle_id", battleID)
	scope.Log = scope.Log.WithField("battleID", battleID)

	opponent, err := a.roster.Get(opponentID)
	if err != nil {
		scope.TraceError(err)
		return nil, err
	}
	scope.SetAttributes("opponent", opponent.Name)
	scope.SetAttributes("opponent_level", opponent.Level)

	if a.cfg.Delay > 0 {
		timer := time.NewTimer(a.cfg.Delay)
		select {
		case <-timer.C:
		case <-scope.Ctx.Done():
			timer.Stop()
			scope.TraceError(scope.Ctx.Err())
			return nil, fmt.Errorf("battle against %s abandoned: %w", opponent.Name, scope.Ctx.Err())
		}
	}

	player := a.progression.Character()
	outcome := a.resolver.Resolve(player.Stats, opponent.Stats, opponent.Level)
	metrics.BattlesTotal.WithLabelValues(string(outcome.Winner)).Inc()
	scope.SetAttributes("winner", string(outcome.Winner))

	if !outcome.PlayerWon() {
		scope.Log.Infof("%s was defeated by %s (%d vs %d)",
			player.Name, opponent.Name, outcome.PlayerPower, outcome.OpponentPower)
		return &Result{ID: battleID, Opponent: opponent, Outcome: outcome}, nil
	}

	if err := a.progression.GainExperience(outcome.Experience); err != nil {
		scope.TraceError(err)
		return nil, fmt.Errorf("failed to grant battle reward: %w", err)
	}
	a.progression.IncrementBattlesWon()
	scope.TraceEvent("reward granted")

	scope.Log.Infof("%s defeated %s (%d vs %d), +%d XP",
		player.Name, opponent.Name, outcome.PlayerPower, outcome.OpponentPower, outcome.Experience)
	return &Result{ID: battleID, Opponent: opponent, Outcome: outcome}, nil
}
