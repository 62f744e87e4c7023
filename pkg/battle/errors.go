package battle

import "errors"

var (
	// ErrOpponentNotFound indicates that a requested opponent is not in the roster.
	ErrOpponentNotFound = errors.New("opponent not found in roster")

	// ErrInvalidRoster indicates that a roster file failed validation.
	ErrInvalidRoster = errors.New("invalid opponent roster")
)
