package character

import "errors"

var (
	// ErrUnknownClass indicates a class outside Warrior, Mage and Archer.
	ErrUnknownClass = errors.New("unknown character class")

	// ErrNegativeExperience indicates an experience gain below zero.
	ErrNegativeExperience = errors.New("experience amount must not be negative")
)
