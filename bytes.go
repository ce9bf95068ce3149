package generators

import (
	"fmt"

	"fortio.org/safecast"
)

// RandBytesGenerator generates random bytes.
type RandBytesGenerator[S HasRand] struct {
	maxSize int
}

// NewRandBytesGenerator returns a generator producing between 1 and
// maxSize-1 random bytes. It panics if maxSize is negative.
func NewRandBytesGenerator[S HasRand](maxSize int) *RandBytesGenerator[S] {
	checkMaxSize(maxSize)
	return &RandBytesGenerator[S]{maxSize: maxSize}
}

// MaxSize returns the exclusive bound on generated lengths.
func (g *RandBytesGenerator[S]) MaxSize() int { return g.maxSize }

// Generate implements Generator.
func (g *RandBytesGenerator[S]) Generate(state S) (BytesInput, error) {
	rnd := state.Rand()
	size, err := drawSize(rnd, g.maxSize)
	if err != nil {
		return BytesInput{}, err
	}
	out := make([]byte, size)
	for i := range out {
		out[i] = byte(rnd.Below(256))
	}
	return NewBytesInput(out), nil
}

// GenerateDummy returns min(maxSize, DummyBytesMax) zero bytes.
func (g *RandBytesGenerator[S]) GenerateDummy(S) BytesInput {
	return dummyBytes(g.maxSize)
}

func checkMaxSize(maxSize int) {
	if maxSize < 0 {
		panic(fmt.Sprintf("generators: negative max size %d", maxSize))
	}
}

// drawSize draws the length of the next input. A zero draw is bumped to 1
// so generated inputs are never empty.
func drawSize(rnd Rand, maxSize int) (int, error) {
	bound, err := safecast.Conv[uint64](maxSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSizeOverflow, err)
	}
	size, err := safecast.Conv[int](rnd.Below(bound))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSizeOverflow, err)
	}
	if size == 0 {
		size = 1
	}
	return size, nil
}

func dummyBytes(maxSize int) BytesInput {
	return NewBytesInput(make([]byte, min(maxSize, DummyBytesMax)))
}
