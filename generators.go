// Package generators produces seed inputs for a fuzzer's corpus-seeding
// phase. A Generator either draws a random input from the state's RNG, or
// returns a cheap deterministic placeholder without touching the RNG.
//
// The native strategies are RandBytesGenerator and RandPrintablesGenerator.
// GeneralizedInputBytesGenerator turns any bytes generator into one that
// emits GeneralizedInput. Generators implemented in Lua are reached through
// the script package, whose Bridge satisfies the same contract.
package generators

import "errors"

// DummyBytesMax is the maximum size of the inputs returned by GenerateDummy.
const DummyBytesMax = 64

// ErrEmptyChoice is raised (as a panic) when Choose is given no items.
var ErrEmptyChoice = errors.New("choose from empty set")

// ErrSizeOverflow is returned when a size does not fit the RNG bound type.
var ErrSizeOverflow = errors.New("size overflow")

// ErrUnknownKind is returned when a generator kind was never registered.
var ErrUnknownKind = errors.New("unknown generator kind")

// ErrKindExists is returned when a generator kind is registered twice.
var ErrKindExists = errors.New("generator kind already registered")

// Generator produces one input per call.
type Generator[I Input, S any] interface {
	// Generate a new input, drawing from the state's RNG.
	Generate(state S) (I, error)
	// GenerateDummy returns a deterministic placeholder. It never draws
	// from the RNG and cannot fail.
	GenerateDummy(state S) I
}
