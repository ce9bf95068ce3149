package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/fbaltor/generators"
)

type (
	stdState       = generators.StdState
	randBytes      = generators.RandBytesGenerator[*stdState]
	randPrintables = generators.RandPrintablesGenerator[*stdState]
)

// Variant tells which implementation a Bridge dispatches to.
type Variant int

const (
	VariantRandBytes Variant = iota + 1
	VariantRandPrintables
	VariantForeign
)

func (v Variant) String() string {
	switch v {
	case VariantRandBytes:
		return "RandBytes"
	case VariantRandPrintables:
		return "RandPrintables"
	case VariantForeign:
		return "Foreign"
	default:
		return "Unknown"
	}
}

// Bridge is a generator that is either one of the native generators or a
// Lua object. The variant is chosen at construction and never changes.
// Native variants never touch the interpreter lock.
type Bridge struct {
	variant        Variant
	randBytes      *randBytes
	randPrintables *randPrintables
	foreign        *foreignGenerator
}

var _ generators.Generator[generators.BytesInput, *stdState] = (*Bridge)(nil)

// NewRandBytesBridge wraps a native RandBytesGenerator.
func NewRandBytesBridge(g *randBytes) *Bridge {
	return &Bridge{variant: VariantRandBytes, randBytes: g}
}

// NewRandPrintablesBridge wraps a native RandPrintablesGenerator.
func NewRandPrintablesBridge(g *randPrintables) *Bridge {
	return &Bridge{variant: VariantRandPrintables, randPrintables: g}
}

// NewForeignBridge wraps a Lua object living in rt. The object must have
// generate and generate_dummy methods taking a State handle. The bridge
// does not own rt.
func NewForeignBridge(rt *Runtime, obj lua.LValue) (*Bridge, error) {
	if rt == nil {
		return nil, errors.New("nil runtime")
	}
	if obj == nil {
		obj = lua.LNil
	}
	switch obj.Type() {
	case lua.LTTable, lua.LTUserData:
	default:
		return nil, fmt.Errorf("%w: got %s", ErrNotAnObject, obj.Type())
	}
	return &Bridge{variant: VariantForeign, foreign: &foreignGenerator{rt: rt, obj: obj}}, nil
}

// NewBridge wraps one of the native generators.
func NewBridge(g any) (*Bridge, error) {
	switch g := g.(type) {
	case *Bridge:
		return g, nil
	case *randBytes:
		return NewRandBytesBridge(g), nil
	case *randPrintables:
		return NewRandPrintablesBridge(g), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedGenerator, g)
	}
}

// Variant returns the bridge variant.
func (b *Bridge) Variant() Variant { return b.variant }

// Foreign returns the wrapped Lua object, or false for native variants.
func (b *Bridge) Foreign() (lua.LValue, bool) {
	if b.variant != VariantForeign {
		return nil, false
	}
	return b.foreign.obj, true
}

// Generate implements generators.Generator. Failures of a foreign
// generator are returned as *ForeignError.
func (b *Bridge) Generate(s *stdState) (generators.BytesInput, error) {
	return b.generate(s, false)
}

// TryGenerateDummy is GenerateDummy with foreign failures returned as
// *ForeignError.
func (b *Bridge) TryGenerateDummy(s *stdState) (generators.BytesInput, error) {
	return b.generateDummy(s, false)
}

// GenerateDummy implements generators.Generator. The contract leaves no
// room for an error, so a failing foreign generator panics with its
// *ForeignError; use TryGenerateDummy to handle it.
func (b *Bridge) GenerateDummy(s *stdState) generators.BytesInput {
	in, err := b.TryGenerateDummy(s)
	if err != nil {
		panic(err)
	}
	return in
}

func (b *Bridge) generate(s *stdState, held bool) (generators.BytesInput, error) {
	switch b.variant {
	case VariantRandBytes:
		return b.randBytes.Generate(s)
	case VariantRandPrintables:
		return b.randPrintables.Generate(s)
	case VariantForeign:
		return b.foreign.call(MemberGenerate, s, held)
	}
	panic(fmt.Sprintf("script: invalid bridge variant %d", b.variant))
}

func (b *Bridge) generateDummy(s *stdState, held bool) (generators.BytesInput, error) {
	switch b.variant {
	case VariantRandBytes:
		return b.randBytes.GenerateDummy(s), nil
	case VariantRandPrintables:
		return b.randPrintables.GenerateDummy(s), nil
	case VariantForeign:
		return b.foreign.call(MemberGenerateDummy, s, held)
	}
	panic(fmt.Sprintf("script: invalid bridge variant %d", b.variant))
}
