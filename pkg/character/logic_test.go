// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package character

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	c := New()

	if c.ID != DefaultID {
		t.Errorf("ID = %s, expected %s", c.ID, DefaultID)
	}
	if c.Name != DefaultName {
		t.Errorf("Name = %s, expected %s", c.Name, DefaultName)
	}
	if c.Class != Warrior {
		t.Errorf("Class = %s, expected %s", c.Class, Warrior)
	}
	if c.Level != 1 {
		t.Errorf("Level = %d, expected 1", c.Level)
	}
	if c.Experience != 0 {
		t.Errorf("Experience = %d, expected 0", c.Experience)
	}
	if c.Stats != BaseStats {
		t.Errorf("Stats = %+v, expected %+v", c.Stats, BaseStats)
	}
	if c.SessionsCompleted != 0 || c.BattlesWon != 0 {
		t.Errorf("counters = %d/%d, expected 0/0", c.SessionsCompleted, c.BattlesWon)
	}
}

func TestGainExperience(t *testing.T) {
	tests := []struct {
		name          string
		character     Character
		amount        int
		expectLevelUp bool
		expectLevel   int
		expectXP      int
		expectStats   Stats
	}{
		{
			name:          "below threshold - no level up",
			character:     New(),
			amount:        50,
			expectLevelUp: false,
			expectLevel:   1,
			expectXP:      50,
			expectStats:   BaseStats,
		},
		{
			name:          "exactly threshold - warrior levels up",
			character:     New(),
			amount:        100,
			expectLevelUp: true,
			expectLevel:   2,
			expectXP:      100,
			expectStats:   Stats{Health: 58, Attack: 24, Defense: 18, Focus: 11},
		},
		{
			name:          "huge gain - still a single level up",
			character:     New(),
			amount:        10000,
			expectLevelUp: true,
			expectLevel:   2,
			expectXP:      10000,
			expectStats:   Stats{Health: 58, Attack: 24, Defense: 18, Focus: 11},
		},
		{
			name: "mage growth applied",
			character: Character{
				Class:      Mage,
				Level:      2,
				Experience: 150,
				Stats:      BaseStats,
			},
			amount:        50,
			expectLevelUp: true,
			expectLevel:   3,
			expectXP:      200,
			expectStats:   Stats{Health: 54, Attack: 26, Defense: 17, Focus: 14},
		},
		{
			name: "archer growth applied",
			character: Character{
				Class:      Archer,
				Level:      1,
				Experience: 99,
				Stats:      BaseStats,
			},
			amount:        1,
			expectLevelUp: true,
			expectLevel:   2,
			expectXP:      100,
			expectStats:   Stats{Health: 56, Attack: 25, Defense: 17, Focus: 13},
		},
		{
			name: "cumulative experience is compared against current level",
			character: Character{
				Class:      Warrior,
				Level:      3,
				Experience: 200,
				Stats:      BaseStats,
			},
			amount:        50,
			expectLevelUp: false,
			expectLevel:   3,
			expectXP:      250,
			expectStats:   BaseStats,
		},
		{
			name: "unknown class uses fallback growth",
			character: Character{
				Class:      Class("Bard"),
				Level:      1,
				Experience: 0,
				Stats:      BaseStats,
			},
			amount:        100,
			expectLevelUp: true,
			expectLevel:   2,
			expectXP:      100,
			expectStats:   Stats{Health: 55, Attack: 23, Defense: 17, Focus: 12},
		},
		{
			name:          "zero gain - nothing changes",
			character:     New(),
			amount:        0,
			expectLevelUp: false,
			expectLevel:   1,
			expectXP:      0,
			expectStats:   BaseStats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.character
			result := GainExperience(&c, tt.amount)

			if result != tt.expectLevelUp {
				t.Errorf("GainExperience() = %v, expected %v", result, tt.expectLevelUp)
			}
			if c.Level != tt.expectLevel {
				t.Errorf("Level = %d, expected %d", c.Level, tt.expectLevel)
			}
			if c.Experience != tt.expectXP {
				t.Errorf("Experience = %d, expected %d", c.Experience, tt.expectXP)
			}
			if c.Stats != tt.expectStats {
				t.Errorf("Stats = %+v, expected %+v", c.Stats, tt.expectStats)
			}
		})
	}
}

func TestGainExperience_NeverDecreases(t *testing.T) {
	c := New()
	amounts := []int{0, 1, 37, 99, 100, 250, 0, 1000, 5, 333, 20000}

	for _, amount := range amounts {
		before := c
		GainExperience(&c, amount)

		if c.Experience < before.Experience {
			t.Fatalf("Experience decreased: %d -> %d", before.Experience, c.Experience)
		}
		if c.Level < before.Level || c.Level > before.Level+1 {
			t.Fatalf("Level moved from %d to %d, expected same or +1", before.Level, c.Level)
		}
		if c.Stats.Health < before.Stats.Health ||
			c.Stats.Attack < before.Stats.Attack ||
			c.Stats.Defense < before.Stats.Defense ||
			c.Stats.Focus < before.Stats.Focus {
			t.Fatalf("Stats decreased: %+v -> %+v", before.Stats, c.Stats)
		}

		leveled := before.Experience+amount >= before.Level*ExperiencePerLevel
		if leveled != (c.Level == before.Level+1) {
			t.Fatalf("level up = %v for %d+%d at level %d", c.Level == before.Level+1,
				before.Experience, amount, before.Level)
		}
	}
}

func TestChangeClass(t *testing.T) {
	tests := []struct {
		name        string
		level       int
		from        Class
		to          Class
		expectStats Stats
	}{
		{
			name:        "level 3 warrior to mage",
			level:       3,
			from:        Warrior,
			to:          Mage,
			expectStats: Stats{Health: 58, Attack: 32, Defense: 19, Focus: 18},
		},
		{
			name:        "level 1 warrior to archer yields base stats",
			level:       1,
			from:        Warrior,
			to:          Archer,
			expectStats: BaseStats,
		},
		{
			name:        "level 1 mage to warrior yields base stats",
			level:       1,
			from:        Mage,
			to:          Warrior,
			expectStats: BaseStats,
		},
		{
			name:        "level 5 mage to archer",
			level:       5,
			from:        Mage,
			to:          Archer,
			expectStats: Stats{Health: 74, Attack: 40, Defense: 23, Focus: 22},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Character{
				Class:      tt.from,
				Level:      tt.level,
				Experience: 420,
				Stats:      Stats{Health: 1, Attack: 2, Defense: 3, Focus: 4},
			}
			ChangeClass(&c, tt.to)

			if c.Class != tt.to {
				t.Errorf("Class = %s, expected %s", c.Class, tt.to)
			}
			if c.Stats != tt.expectStats {
				t.Errorf("Stats = %+v, expected %+v", c.Stats, tt.expectStats)
			}
			if c.Level != tt.level {
				t.Errorf("Level = %d, expected %d", c.Level, tt.level)
			}
			if c.Experience != 420 {
				t.Errorf("Experience = %d, expected 420", c.Experience)
			}
		})
	}
}

func TestChangeClass_Idempotent(t *testing.T) {
	c := Character{Class: Warrior, Level: 7, Stats: Stats{Health: 999}}

	ChangeClass(&c, Archer)
	first := c.Stats
	ChangeClass(&c, Archer)

	if c.Stats != first {
		t.Errorf("Stats after second ChangeClass = %+v, expected %+v", c.Stats, first)
	}
}

func TestChangeClass_DiscardsLevelUpHistory(t *testing.T) {
	// level up as a warrior, then switch to mage and back: the warrior
	// growth earned is recomputed, not stacked on top of mage stats
	c := New()
	GainExperience(&c, 100)
	ChangeClass(&c, Mage)

	expected := StatsFor(Mage, 2)
	if c.Stats != expected {
		t.Errorf("Stats = %+v, expected %+v", c.Stats, expected)
	}

	// path-dependent accumulation: a level-up under mage after a switch
	// adds mage growth to whatever stats are current
	c.Stats = Stats{Health: 1, Attack: 1, Defense: 1, Focus: 1}
	GainExperience(&c, 100)
	if c.Stats != (Stats{Health: 5, Attack: 7, Defense: 3, Focus: 5}) {
		t.Errorf("Stats = %+v, expected growth added to current stats", c.Stats)
	}
}

func TestIncrementCounters(t *testing.T) {
	c := New()
	IncrementSessionsCompleted(&c)
	IncrementSessionsCompleted(&c)
	IncrementBattlesWon(&c)

	if c.SessionsCompleted != 2 {
		t.Errorf("SessionsCompleted = %d, expected 2", c.SessionsCompleted)
	}
	if c.BattlesWon != 1 {
		t.Errorf("BattlesWon = %d, expected 1", c.BattlesWon)
	}
	if c.Stats != BaseStats || c.Level != 1 || c.Experience != 0 {
		t.Errorf("counters must not touch other fields: %+v", c)
	}
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		input     string
		expected  Class
		expectErr bool
	}{
		{input: "Warrior", expected: Warrior},
		{input: "mage", expected: Mage},
		{input: "  ARCHER ", expected: Archer},
		{input: "Bard", expectErr: true},
		{input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseClass(tt.input)
			if tt.expectErr {
				if !errors.Is(err, ErrUnknownClass) {
					t.Errorf("ParseClass() error = %v, expected ErrUnknownClass", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClass() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("ParseClass() = %s, expected %s", result, tt.expected)
			}
		})
	}
}

func TestDerivedValues(t *testing.T) {
	c := Character{Level: 3, Experience: 450, Stats: Stats{Health: 58, Attack: 32, Defense: 19, Focus: 18}}

	if c.PowerLevel() != 127 {
		t.Errorf("PowerLevel() = %d, expected 127", c.PowerLevel())
	}
	if c.ExperienceToNext() != 300 {
		t.Errorf("ExperienceToNext() = %d, expected 300", c.ExperienceToNext())
	}
	if c.ExperienceProgress() != 0.5 {
		t.Errorf("ExperienceProgress() = %v, expected 0.5", c.ExperienceProgress())
	}
	if c.Veteran() {
		t.Error("level 3 character should not be a veteran")
	}

	c.Level = VeteranLevel
	if !c.Veteran() {
		t.Error("level 10 character should be a veteran")
	}
}

func TestCharacterJSONLayout(t *testing.T) {
	c := New()
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	expected := `{"id":"player_1","name":"FocusHero","class":"Warrior","level":1,"experience":0,` +
		`"stats":{"health":50,"attack":20,"defense":15,"focus":10},"sessionsCompleted":0,"battlesWon":0}`
	if string(data) != expected {
		t.Errorf("json = %s, expected %s", data, expected)
	}
}
