// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package character

import (
	"github.com/sirupsen/logrus"
)

// BaseStats is the stat bundle of a level 1 character of any class.
var BaseStats = Stats{Health: 50, Attack: 20, Defense: 15, Focus: 10}

// fallbackGrowth applies to a class value outside the enumeration,
// which can only come from a hand-edited storage document.
var fallbackGrowth = Stats{Health: 5, Attack: 3, Defense: 2, Focus: 2}

var growthTable = map[Class]Stats{
	Warrior: {Health: 8, Attack: 4, Defense: 3, Focus: 1},
	Mage:    {Health: 4, Attack: 6, Defense: 2, Focus: 4},
	Archer:  {Health: 6, Attack: 5, Defense: 2, Focus: 3},
}

// New returns the default character used on first launch and after a reset.
func New() Character {
	return Character{
		ID:                DefaultID,
		Name:              DefaultName,
		Class:             Warrior,
		Level:             1,
		Experience:        0,
		Stats:             BaseStats,
		SessionsCompleted: 0,
		BattlesWon:        0,
	}
}

// Growth returns the stats added on every level-up for the given class.
func Growth(class Class) Stats {
	if g, ok := growthTable[class]; ok {
		return g
	}
	return fallbackGrowth
}

// StatsFor returns the stats a character of class would have at level
// had it always been that class.
func StatsFor(class Class, level int) Stats {
	return BaseStats.Add(Growth(class).Scale(level - 1))
}

// GainExperience adds amount to the cumulative experience and levels up
// at most once per call. The threshold is taken from the level held
// before the gain. Returns true if a level-up occurred.
func GainExperience(c *Character, amount int) bool {
	threshold := c.Level * ExperiencePerLevel
	c.Experience += amount

	if c.Experience < threshold {
		return false
	}

	growth := Growth(c.Class)
	c.Level++
	c.Stats = c.Stats.Add(growth)

	logrus.Debugf("level up: level=%d, experience=%d, threshold=%d, class=%s",
		c.Level, c.Experience, threshold, c.Class)
	return true
}

// ChangeClass switches the class and recomputes stats from scratch for
// the current level. Growth accumulated under earlier classes is
// discarded; level and experience are untouched.
func ChangeClass(c *Character, class Class) {
	previous := c.Class
	c.Class = class
	c.Stats = StatsFor(class, c.Level)

	logrus.Debugf("class changed: %s -> %s at level %d, stats=%+v",
		previous, class, c.Level, c.Stats)
}

// IncrementSessionsCompleted records one finished focus session.
func IncrementSessionsCompleted(c *Character) {
	c.SessionsCompleted++
}

// IncrementBattlesWon records one won battle.
func IncrementBattlesWon(c *Character) {
	c.BattlesWon++
}
