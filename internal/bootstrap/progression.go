// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"

	"github.com/AccelByte/extend-focus-warrior/internal/config"
	"github.com/AccelByte/extend-focus-warrior/pkg/progression"
	"github.com/AccelByte/extend-focus-warrior/pkg/service"

	"github.com/sirupsen/logrus"
)

// InitProgressionStore loads the character from repo and returns the
// store that owns it for the rest of the process.
func InitProgressionStore(ctx context.Context, repo service.CharacterRepository, cfg *config.Config) *progression.Store {
	store := progression.NewStore(ctx, repo, progression.StoreConfig{
		SaveTimeout: cfg.SaveTimeout(),
	})

	c := store.Character()
	logrus.Infof("initialized progression store: %s the level %d %s (%d XP)", c.Name, c.Level, c.Class, c.Experience)
	return store
}
