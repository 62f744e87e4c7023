package battle

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"
)

const (
	// MinRoll and MaxRoll bound the power multiplier drawn for each side.
	MinRoll = 0.8
	MaxRoll = 1.2
)

// Roller is the randomness provider for battles.
//
// Roll returns a multiplier in [MinRoll, MaxRoll]. Implementations must be
// safe for concurrent use.
type Roller interface {
	Roll() float64
}

// RandomRoller draws uniform multipliers from an unseeded source, so
// outcomes are not reproducible across runs.
type RandomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller seeds a roller from crypto/rand, falling back to the
// clock if the system entropy source is unavailable.
func NewRandomRoller() *RandomRoller {
	return &RandomRoller{rng: rand.New(rand.NewSource(newSeed()))}
}

func (r *RandomRoller) Roll() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return MinRoll + r.rng.Float64()*(MaxRoll-MinRoll)
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// FixedRoller always returns the same multiplier.
type FixedRoller float64

func (f FixedRoller) Roll() float64 {
	return float64(f)
}

// SequenceRoller replays rolls in order and repeats the last one when
// exhausted. A zero-length sequence rolls 1.0.
type SequenceRoller struct {
	mu    sync.Mutex
	rolls []float64
	next  int
}

// NewSequenceRoller returns a roller replaying rolls.
func NewSequenceRoller(rolls ...float64) *SequenceRoller {
	return &SequenceRoller{rolls: rolls}
}

func (s *SequenceRoller) Roll() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.rolls) == 0 {
		return 1.0
	}
	if s.next >= len(s.rolls) {
		return s.rolls[len(s.rolls)-1]
	}
	v := s.rolls[s.next]
	s.next++
	return v
}
