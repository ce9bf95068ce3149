package generators

import (
	"github.com/google/uuid"

	"github.com/fbaltor/generators/internal/utils"
)

// StdState is the minimal fuzzing state the generators need: an identity
// and the RNG. It is owned by one caller at a time.
type StdState struct {
	id   uuid.UUID
	rand Rand
}

type stateConfig struct {
	rand Rand
	seed *uint64
	id   uuid.UUID
}

// StateOption configures a StdState.
type StateOption func(*stateConfig)

// WithRand makes the state use r. It takes precedence over WithSeed.
func WithRand(r Rand) StateOption {
	return func(c *stateConfig) {
		c.rand = r
	}
}

// WithSeed seeds the state's StdRand.
func WithSeed(seed uint64) StateOption {
	return func(c *stateConfig) {
		c.seed = &seed
	}
}

// WithStateID overrides the random state identity.
func WithStateID(id uuid.UUID) StateOption {
	return func(c *stateConfig) {
		c.id = id
	}
}

// NewStdState returns a new state. Without options the RNG is seeded from
// the process-wide seed source.
func NewStdState(opts ...StateOption) *StdState {
	cfg := utils.BuildConfig(opts)
	rnd := cfg.rand
	if rnd == nil {
		if cfg.seed != nil {
			rnd = NewStdRandWithSeed(*cfg.seed)
		} else {
			rnd = NewStdRand()
		}
	}
	return &StdState{
		id:   utils.Or(cfg.id, uuid.New()),
		rand: rnd,
	}
}

// ID returns the state identity.
func (s *StdState) ID() uuid.UUID { return s.id }

// Rand implements HasRand.
func (s *StdState) Rand() Rand { return s.rand }
