package generators

// GeneralizedInputBytesGenerator produces GeneralizedInput from a wrapped
// BytesInput generator.
type GeneralizedInputBytesGenerator[S HasRand, G Generator[BytesInput, S]] struct {
	bytesGenerator G
}

// NewGeneralizedInputBytesGenerator wraps g. The state type usually has to
// be spelled out: NewGeneralizedInputBytesGenerator[*StdState](g).
func NewGeneralizedInputBytesGenerator[S HasRand, G Generator[BytesInput, S]](g G) *GeneralizedInputBytesGenerator[S, G] {
	return &GeneralizedInputBytesGenerator[S, G]{bytesGenerator: g}
}

// Inner returns the wrapped generator.
func (g *GeneralizedInputBytesGenerator[S, G]) Inner() G { return g.bytesGenerator }

// Generate implements Generator.
func (g *GeneralizedInputBytesGenerator[S, G]) Generate(state S) (GeneralizedInput, error) {
	in, err := g.bytesGenerator.Generate(state)
	if err != nil {
		return GeneralizedInput{}, err
	}
	return GeneralizedInputFromBytes(in), nil
}

// GenerateDummy implements Generator.
func (g *GeneralizedInputBytesGenerator[S, G]) GenerateDummy(state S) GeneralizedInput {
	return GeneralizedInputFromBytes(g.bytesGenerator.GenerateDummy(state))
}
