// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package progression owns the character record of the installation.
//
// The Store loads the record once at startup, applies the progression
// rules of package character on every mutation, broadcasts the new
// snapshot to subscribers and hands it to a background persister.
// Callers never wait for storage: the in-memory record is the source of
// truth and a failed save is repaired by the next successful one.
package progression

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"
	"github.com/AccelByte/extend-focus-warrior/pkg/metrics"
	"github.com/AccelByte/extend-focus-warrior/pkg/service"

	"github.com/sirupsen/logrus"
)

// DefaultSaveTimeout bounds a single background save.
const DefaultSaveTimeout = 3 * time.Second

// StoreConfig tunes the persistence of a Store.
type StoreConfig struct {
	// SaveTimeout bounds every background save; DefaultSaveTimeout when zero.
	SaveTimeout time.Duration
}

// Store is the progression store. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	character character.Character

	subscribers map[int]chan character.Character
	nextSubID   int
	persister   *persister
	closeOnce   sync.Once
	closed      bool
}

// NewStore loads the character from repo and starts the background
// persister. A load failure is logged and the store starts from the
// default character.
func NewStore(ctx context.Context, repo service.CharacterRepository, cfg StoreConfig) *Store {
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultSaveTimeout
	}

	loaded := character.New()
	c, err := repo.GetCharacter(ctx)
	if err != nil {
		metrics.PersistenceFailuresTotal.WithLabelValues("load").Inc()
		logrus.Errorf("failed to load character, starting from defaults: %v", err)
	} else if c != nil {
		loaded = *c
	}

	s := &Store{
		character:   loaded,
		subscribers: make(map[int]chan character.Character),
		persister:   newPersister(repo, cfg.SaveTimeout),
	}
	observe(loaded)

	logrus.Infof("loaded character %s: class=%s, level=%d, experience=%d",
		loaded.Name, loaded.Class, loaded.Level, loaded.Experience)
	return s
}

// Character returns the current character snapshot.
func (s *Store) Character() character.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.character
}

// GainExperience adds amount to the character's experience, leveling up
// at most once. Negative amounts are rejected without any change.
func (s *Store) GainExperience(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", character.ErrNegativeExperience, amount)
	}

	s.mutate(func(c *character.Character) {
		leveled := character.GainExperience(c, amount)

		metrics.ExperienceGainedTotal.Add(float64(amount))
		if leveled {
			metrics.LevelUpsTotal.WithLabelValues(string(c.Class)).Inc()
			logrus.Infof("%s reached level %d (%s, power %d)",
				c.Name, c.Level, c.Class, c.PowerLevel())
		}
	})
	return nil
}

// ChangeClass switches the character to class, recomputing its stats
// for the current level.
func (s *Store) ChangeClass(class character.Class) error {
	if !class.Valid() {
		return fmt.Errorf("%w: %q", character.ErrUnknownClass, class)
	}

	s.mutate(func(c *character.Character) {
		character.ChangeClass(c, class)
		metrics.ClassChangesTotal.WithLabelValues(string(class)).Inc()
	})
	return nil
}

// IncrementSessionsCompleted records one finished focus session.
func (s *Store) IncrementSessionsCompleted() {
	s.mutate(func(c *character.Character) {
		character.IncrementSessionsCompleted(c)
		metrics.SessionsCompletedTotal.Inc()
	})
}

// IncrementBattlesWon records one won battle.
func (s *Store) IncrementBattlesWon() {
	s.mutate(character.IncrementBattlesWon)
}

// ResetCharacter replaces the record with the default character.
func (s *Store) ResetCharacter() {
	s.mutate(func(c *character.Character) {
		*c = character.New()
		logrus.Info("character reset to defaults")
	})
}

// Subscribe registers a listener. The channel immediately carries the
// current snapshot and afterwards the newest snapshot after every
// mutation; a listener that falls behind only sees the latest record.
// The returned cancel function unregisters the listener and closes the channel.
// After Close the channel carries the final snapshot and is already closed.
func (s *Store) Subscribe() (<-chan character.Character, func()) {
	ch := make(chan character.Character, 1)

	s.mu.Lock()
	if s.closed {
		ch <- s.character
		close(ch)
		s.mu.Unlock()
		return ch, func() {}
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	ch <- s.character
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Flush blocks until every snapshot handed to the persister so far has
// been written or has failed.
func (s *Store) Flush(ctx context.Context) error {
	return s.persister.flush(ctx)
}

// Close flushes pending saves, stops the persister and closes every
// subscription. Mutations after Close still apply in memory but are no
// longer saved.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.persister.close()

		s.mu.Lock()
		defer s.mu.Unlock()
		s.closed = true
		for id, ch := range s.subscribers {
			delete(s.subscribers, id)
			close(ch)
		}
	})
}

// mutate applies fn to the record, then publishes and persists the result.
func (s *Store) mutate(fn func(c *character.Character)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.character)
	snapshot := s.character

	observe(snapshot)
	s.publish(snapshot)
	s.persister.enqueue(snapshot)
}

// publish delivers snapshot to every subscriber without blocking,
// replacing any snapshot the subscriber has not read yet. Callers hold s.mu.
func (s *Store) publish(snapshot character.Character) {
	for _, ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

func observe(c character.Character) {
	metrics.CharacterLevel.Set(float64(c.Level))
	metrics.CharacterPower.Set(float64(c.PowerLevel()))
}
