package service

import (
	"context"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"
)

// Service interfaces for the storage behind the progression store.
//
// Having an interface here lets the store run against Redis, SQLite or
// plain memory, and lets tests inject failing implementations.

// CharacterRepository persists the single character document under one
// fixed storage key. GetCharacter returns a fresh default character when
// nothing has been stored yet.
type CharacterRepository interface {
	GetCharacter(ctx context.Context) (*character.Character, error)
	UpdateCharacter(ctx context.Context, c *character.Character) error
	DeleteCharacter(ctx context.Context) error
}

// DefaultStorageKey is the storage key of the character document.
const DefaultStorageKey = "character-storage"
