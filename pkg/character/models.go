// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package character

import (
	"fmt"
	"strings"
)

const (
	// DefaultID is the identifier of the single local player
	DefaultID = "player_1"
	// DefaultName is the display name given to a fresh character
	DefaultName = "FocusHero"
	// ExperiencePerLevel is multiplied by the current level to get the level-up threshold
	ExperiencePerLevel = 100
	// VeteranLevel is the level from which a character is shown with its upgraded portrait
	VeteranLevel = 10
)

// Class is the character archetype. It drives stat growth on level-up
// and the recomputed stats on class change.
type Class string

const (
	Warrior Class = "Warrior"
	Mage    Class = "Mage"
	Archer  Class = "Archer"
)

// Classes lists every selectable class in display order.
var Classes = []Class{Warrior, Mage, Archer}

// Valid reports whether c belongs to the closed class enumeration.
func (c Class) Valid() bool {
	switch c {
	case Warrior, Mage, Archer:
		return true
	default:
		return false
	}
}

// ParseClass resolves a class name case-insensitively.
func ParseClass(name string) (Class, error) {
	for _, c := range Classes {
		if strings.EqualFold(string(c), strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClass, name)
}

// Stats is the four-value stat bundle shared by characters and opponents.
type Stats struct {
	Health  int `json:"health" yaml:"health"`
	Attack  int `json:"attack" yaml:"attack"`
	Defense int `json:"defense" yaml:"defense"`
	Focus   int `json:"focus" yaml:"focus"`
}

// Power returns the power level: the plain sum of all four stats.
func (s Stats) Power() int {
	return s.Health + s.Attack + s.Defense + s.Focus
}

// Add returns the component-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Health:  s.Health + o.Health,
		Attack:  s.Attack + o.Attack,
		Defense: s.Defense + o.Defense,
		Focus:   s.Focus + o.Focus,
	}
}

// Scale returns s with every stat multiplied by n.
func (s Stats) Scale(n int) Stats {
	return Stats{
		Health:  s.Health * n,
		Attack:  s.Attack * n,
		Defense: s.Defense * n,
		Focus:   s.Focus * n,
	}
}

// Character is the persisted player record. The JSON layout is the
// storage document format and must stay stable.
type Character struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Class             Class  `json:"class"`
	Level             int    `json:"level"`
	Experience        int    `json:"experience"`
	Stats             Stats  `json:"stats"`
	SessionsCompleted int    `json:"sessionsCompleted"`
	BattlesWon        int    `json:"battlesWon"`
}

// PowerLevel returns the character's power level.
func (c Character) PowerLevel() int {
	return c.Stats.Power()
}

// ExperienceToNext returns the cumulative experience that completes the current level.
func (c Character) ExperienceToNext() int {
	return c.Level * ExperiencePerLevel
}

// ExperienceProgress returns the fill ratio of the experience bar, in [0, 1).
func (c Character) ExperienceProgress() float64 {
	next := c.ExperienceToNext()
	if next <= 0 {
		return 0
	}
	return float64(c.Experience%next) / float64(next)
}

// Veteran reports whether the character reached VeteranLevel.
func (c Character) Veteran() bool {
	return c.Level >= VeteranLevel
}
