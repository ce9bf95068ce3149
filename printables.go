package generators

// PrintablesAlphabet lists the bytes RandPrintablesGenerator draws from.
const PrintablesAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz \t\n!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var printables = []byte(PrintablesAlphabet)

// RandPrintablesGenerator generates random printable characters.
type RandPrintablesGenerator[S HasRand] struct {
	maxSize int
}

// NewRandPrintablesGenerator returns a generator producing between 1 and
// maxSize-1 characters of PrintablesAlphabet. It panics if maxSize is
// negative.
func NewRandPrintablesGenerator[S HasRand](maxSize int) *RandPrintablesGenerator[S] {
	checkMaxSize(maxSize)
	return &RandPrintablesGenerator[S]{maxSize: maxSize}
}

// MaxSize returns the exclusive bound on generated lengths.
func (g *RandPrintablesGenerator[S]) MaxSize() int { return g.maxSize }

// Generate implements Generator.
func (g *RandPrintablesGenerator[S]) Generate(state S) (BytesInput, error) {
	rnd := state.Rand()
	size, err := drawSize(rnd, g.maxSize)
	if err != nil {
		return BytesInput{}, err
	}
	out := make([]byte, size)
	for i := range out {
		out[i] = Choose(rnd, printables)
	}
	return NewBytesInput(out), nil
}

// GenerateDummy returns min(maxSize, DummyBytesMax) zero bytes. The result
// is not restricted to PrintablesAlphabet.
func (g *RandPrintablesGenerator[S]) GenerateDummy(S) BytesInput {
	return dummyBytes(g.maxSize)
}
