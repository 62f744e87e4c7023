// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-focus-warrior/internal/config"
	"github.com/AccelByte/extend-focus-warrior/pkg/battle"

	"github.com/sirupsen/logrus"
)

// InitArena loads the opponent roster and builds an arena that rewards
// wins through progression.
//
// ============================================================
// DEVELOPER: Opponents
// ============================================================
// Opponents are configured in config/opponents.yaml (ROSTER_PATH).
// To add an opponent, append an entry there with a unique id; no
// code change is needed. Without the file the built-in roster is used.
// ============================================================
func InitArena(cfg *config.Config, progression battle.Progression) (*battle.Arena, error) {
	roster, err := battle.LoadRoster(cfg.RosterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster from %s: %w", cfg.RosterPath, err)
	}

	arena := battle.NewArena(roster, battle.NewResolver(nil), progression, battle.ArenaConfig{
		Delay: cfg.BattleDelay(),
	})
	logrus.Infof("initialized arena with %d opponents", roster.Count())
	return arena, nil
}
