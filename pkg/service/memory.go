package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"
)

// MemoryCharacterStore keeps the serialized character document in
// process memory. It backs tests and stands in when the configured
// storage cannot be reached.
type MemoryCharacterStore struct {
	mu       sync.RWMutex
	document []byte
}

// NewMemoryCharacterStore creates an empty in-memory repository.
func NewMemoryCharacterStore() *MemoryCharacterStore {
	return &MemoryCharacterStore{}
}

func (m *MemoryCharacterStore) GetCharacter(ctx context.Context) (*character.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.document == nil {
		c := character.New()
		return &c, nil
	}

	var c character.Character
	if err := json.Unmarshal(m.document, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &c, nil
}

func (m *MemoryCharacterStore) UpdateCharacter(ctx context.Context, c *character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	m.mu.Lock()
	m.document = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryCharacterStore) DeleteCharacter(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.document = nil
	m.mu.Unlock()
	return nil
}

// Document returns a copy of the stored JSON document, nil when empty.
func (m *MemoryCharacterStore) Document() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.document == nil {
		return nil
	}
	out := make([]byte, len(m.document))
	copy(out, m.document)
	return out
}
