package generators

import (
	"fmt"
	"slices"

	isync "github.com/fbaltor/generators/internal/sync"
)

// Built-in generator kinds.
const (
	KindRandBytes      = "rand_bytes"
	KindRandPrintables = "rand_printables"
)

// Factory builds a generator bounded by maxSize.
type Factory func(maxSize int) Generator[BytesInput, *StdState]

var kinds isync.Map[string, Factory]

func init() {
	_ = RegisterKind(KindRandBytes, func(maxSize int) Generator[BytesInput, *StdState] {
		return NewRandBytesGenerator[*StdState](maxSize)
	})
	_ = RegisterKind(KindRandPrintables, func(maxSize int) Generator[BytesInput, *StdState] {
		return NewRandPrintablesGenerator[*StdState](maxSize)
	})
}

// RegisterKind makes a generator constructible by name.
func RegisterKind(name string, factory Factory) error {
	if _, loaded := kinds.LoadOrStore(name, factory); loaded {
		return fmt.Errorf("%w: %s", ErrKindExists, name)
	}
	return nil
}

// NewKind builds a generator of the named kind.
func NewKind(name string, maxSize int) (Generator[BytesInput, *StdState], error) {
	factory, ok := kinds.Load(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	return factory(maxSize), nil
}

// Kinds returns the registered kind names, sorted.
func Kinds() []string {
	out := kinds.Keys()
	slices.Sort(out)
	return out
}
