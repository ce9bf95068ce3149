package generators

import (
	"math/rand/v2"

	"fortio.org/safecast"

	"github.com/fbaltor/generators/internal/core"
)

// pcgStream is xor'ed into the seed to derive the PCG stream selector.
const pcgStream = 0x9e3779b97f4a7c15

// Rand is the random source generators draw from.
type Rand interface {
	// Below returns a uniform value in [0, bound). A bound of 0 yields 0.
	Below(bound uint64) uint64
}

// HasRand is implemented by states that own a Rand.
type HasRand interface {
	Rand() Rand
}

// Choose returns a uniformly picked element of items.
// It panics with ErrEmptyChoice when items is empty.
func Choose[T any](r Rand, items []T) T {
	if len(items) == 0 {
		panic(ErrEmptyChoice)
	}
	bound, err := safecast.Conv[uint64](len(items))
	if err != nil {
		panic(err)
	}
	return items[r.Below(bound)]
}

// StdRand is the default Rand, a PCG generator from math/rand/v2.
type StdRand struct {
	r    *rand.Rand
	seed uint64
}

// NewStdRand returns a StdRand seeded from the process-wide seed source.
func NewStdRand() *StdRand {
	return NewStdRandWithSeed(core.NewSeed())
}

// NewStdRandWithSeed returns a StdRand whose sequence is fully determined by seed.
func NewStdRandWithSeed(seed uint64) *StdRand {
	r := &StdRand{}
	r.SetSeed(seed)
	return r
}

// SetSeed restarts the sequence from seed.
func (r *StdRand) SetSeed(seed uint64) {
	r.seed = seed
	r.r = rand.New(rand.NewPCG(seed, seed^pcgStream))
}

// Seed returns the seed the current sequence started from.
func (r *StdRand) Seed() uint64 { return r.seed }

// Next returns the next raw 64 bit value.
func (r *StdRand) Next() uint64 { return r.r.Uint64() }

// Below implements Rand.
func (r *StdRand) Below(bound uint64) uint64 {
	if bound == 0 {
		return 0
	}
	return r.r.Uint64N(bound)
}
