package battle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Opponent is a scripted battle opponent.
type Opponent struct {
	ID    int             `yaml:"id" json:"id"`
	Name  string          `yaml:"name" json:"name"`
	Class character.Class `yaml:"class" json:"class"`
	Level int             `yaml:"level" json:"level"`
	Stats character.Stats `yaml:"stats" json:"stats"`
}

// RosterConfig is the YAML layout of an opponent roster file.
type RosterConfig struct {
	Opponents []Opponent `yaml:"opponents"`
}

// Roster is an immutable, validated set of opponents.
type Roster struct {
	opponents []Opponent
	byID      map[int]Opponent
}

// DefaultOpponents returns the built-in opponents.
func DefaultOpponents() []Opponent {
	return []Opponent{
		{ID: 1, Name: "DragonSlayer", Class: character.Warrior, Level: 5,
			Stats: character.Stats{Health: 80, Attack: 35, Defense: 25, Focus: 20}},
		{ID: 2, Name: "MysticWizard", Class: character.Mage, Level: 7,
			Stats: character.Stats{Health: 60, Attack: 45, Defense: 15, Focus: 40}},
		{ID: 3, Name: "ShadowHunter", Class: character.Archer, Level: 6,
			Stats: character.Stats{Health: 70, Attack: 40, Defense: 20, Focus: 35}},
		{ID: 4, Name: "FocusMaster", Class: character.Mage, Level: 10,
			Stats: character.Stats{Health: 100, Attack: 55, Defense: 30, Focus: 60}},
		{ID: 5, Name: "IronGuard", Class: character.Warrior, Level: 8,
			Stats: character.Stats{Health: 120, Attack: 40, Defense: 40, Focus: 25}},
	}
}

// DefaultRoster returns the roster of built-in opponents.
func DefaultRoster() *Roster {
	roster, err := NewRoster(DefaultOpponents())
	if err != nil {
		panic(fmt.Sprintf("built-in roster is invalid: %v", err))
	}
	return roster
}

// NewRoster validates opponents and builds a roster sorted by ID.
func NewRoster(opponents []Opponent) (*Roster, error) {
	cfg := RosterConfig{Opponents: opponents}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sorted := make([]Opponent, len(opponents))
	copy(sorted, opponents)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int]Opponent, len(sorted))
	for _, o := range sorted {
		byID[o.ID] = o
	}
	return &Roster{opponents: sorted, byID: byID}, nil
}

// LoadRoster loads a roster from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
// A missing file yields the default roster.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Warnf("roster file %s not found, using built-in opponents", path)
		return DefaultRoster(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg RosterConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML roster: %w", err)
	}

	roster, err := NewRoster(cfg.Opponents)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}

	logrus.Infof("loaded %d opponents from %s", len(roster.opponents), path)
	return roster, nil
}

// Validate validates the roster for common errors.
func (c *RosterConfig) Validate() error {
	if len(c.Opponents) == 0 {
		return fmt.Errorf("%w: no opponents defined", ErrInvalidRoster)
	}

	ids := make(map[int]bool)
	for _, o := range c.Opponents {
		if ids[o.ID] {
			return fmt.Errorf("%w: duplicate opponent ID: %d", ErrInvalidRoster, o.ID)
		}
		ids[o.ID] = true

		if strings.TrimSpace(o.Name) == "" {
			return fmt.Errorf("%w: opponent %d has empty name", ErrInvalidRoster, o.ID)
		}
		if !o.Class.Valid() {
			return fmt.Errorf("%w: opponent %d has unknown class %q", ErrInvalidRoster, o.ID, o.Class)
		}
		if o.Level < 1 {
			return fmt.Errorf("%w: opponent %d has level %d (must be >= 1)", ErrInvalidRoster, o.ID, o.Level)
		}
		if o.Stats.Health < 0 || o.Stats.Attack < 0 || o.Stats.Defense < 0 || o.Stats.Focus < 0 {
			return fmt.Errorf("%w: opponent %d has negative stats", ErrInvalidRoster, o.ID)
		}
	}

	return nil
}

// Opponents returns the opponents ordered by ID.
func (r *Roster) Opponents() []Opponent {
	out := make([]Opponent, len(r.opponents))
	copy(out, r.opponents)
	return out
}

// Get returns the opponent with id.
func (r *Roster) Get(id int) (Opponent, error) {
	o, ok := r.byID[id]
	if !ok {
		return Opponent{}, fmt.Errorf("%w: %d", ErrOpponentNotFound, id)
	}
	return o, nil
}

// Count returns the number of opponents.
func (r *Roster) Count() int {
	return len(r.opponents)
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		// Support ${VAR:default} syntax
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
