// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battle

import (
	"math"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"
)

// ExperiencePerOpponentLevel is the base reward granted per opponent level on a win.
const ExperiencePerOpponentLevel = 25

// Side identifies a battle participant.
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Outcome is the result of one resolved battle.
type Outcome struct {
	Winner Side `json:"winner"`

	PlayerRoll   float64 `json:"playerRoll"`
	OpponentRoll float64 `json:"opponentRoll"`

	// PlayerPower and OpponentPower are the floored final powers.
	PlayerPower     int     `json:"playerPower"`
	OpponentPower   int     `json:"opponentPower"`
	PowerDifference float64 `json:"powerDifference"`

	DamageDealt    int `json:"damageDealt"`
	DamageReceived int `json:"damageReceived"`

	// Experience is the reward for a player win, zero otherwise.
	Experience int `json:"experience"`
}

// PlayerWon reports whether the player side won.
func (o Outcome) PlayerWon() bool {
	return o.Winner == SidePlayer
}

// Resolver resolves battles. It holds no state besides its roll source.
type Resolver struct {
	roller Roller
}

// NewResolver creates a resolver drawing rolls from roller; a nil roller
// gets an unseeded RandomRoller.
func NewResolver(roller Roller) *Resolver {
	if roller == nil {
		roller = NewRandomRoller()
	}
	return &Resolver{roller: roller}
}

// Resolve pits player against an opponent of opponentLevel. Each side's
// power is multiplied by its own roll; ties go to the opponent. Damage
// is derived from the same rolls independently of the winner.
func (r *Resolver) Resolve(player, opponent character.Stats, opponentLevel int) Outcome {
	playerRoll := r.roller.Roll()
	opponentRoll := r.roller.Roll()

	playerFinal := float64(player.Power()) * playerRoll
	opponentFinal := float64(opponent.Power()) * opponentRoll
	difference := math.Abs(playerFinal - opponentFinal)

	outcome := Outcome{
		Winner:          SideOpponent,
		PlayerRoll:      playerRoll,
		OpponentRoll:    opponentRoll,
		PlayerPower:     int(math.Floor(playerFinal)),
		OpponentPower:   int(math.Floor(opponentFinal)),
		PowerDifference: difference,
		DamageDealt:     int(math.Floor(float64(player.Attack) * playerRoll)),
		DamageReceived:  int(math.Floor(float64(opponent.Attack) * opponentRoll)),
	}

	if playerFinal > opponentFinal {
		outcome.Winner = SidePlayer
		outcome.Experience = int(math.Floor(float64(opponentLevel*ExperiencePerOpponentLevel) + difference))
	}

	return outcome
}
