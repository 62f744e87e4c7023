// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/AccelByte/extend-focus-warrior/internal/config"
	"github.com/AccelByte/extend-focus-warrior/pkg/focus"

	"github.com/sirupsen/logrus"
)

// InitFocusTimer creates the focus timer that rewards rewarder for every
// completed work phase.
func InitFocusTimer(cfg *config.Config, rewarder focus.Rewarder) *focus.Timer {
	timer := focus.NewTimer(focus.Config{
		WorkDuration:      cfg.FocusWorkDuration(),
		BreakDuration:     cfg.FocusBreakDuration(),
		SessionExperience: cfg.SessionExperience,
		AutoContinue:      cfg.FocusAutoContinue,
	}, rewarder)

	logrus.Infof("initialized focus timer: %d min work, %d min break, %d XP per session",
		cfg.FocusWorkMinutes, cfg.FocusBreakMinutes, cfg.SessionExperience)
	return timer
}
