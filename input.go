package generators

import "encoding/hex"

// Input is a generated test case.
type Input interface {
	// Bytes returns the raw content. Callers must not modify it.
	Bytes() []byte
	// Len returns the content length in bytes.
	Len() int
}

// BytesInput is a plain byte sequence.
type BytesInput struct {
	bytes []byte
}

// NewBytesInput takes ownership of b.
func NewBytesInput(b []byte) BytesInput {
	return BytesInput{bytes: b}
}

// Bytes implements Input.
func (in BytesInput) Bytes() []byte { return in.bytes }

// Len implements Input.
func (in BytesInput) Len() int { return len(in.bytes) }

func (in BytesInput) String() string { return hex.EncodeToString(in.bytes) }

// GeneralizedItem is one element of a generalized input: either a run of
// bytes or a gap where any content may be placed.
type GeneralizedItem struct {
	Bytes []byte
	Gap   bool
}

// GapItem is the gap element.
var GapItem = GeneralizedItem{Gap: true}

// GeneralizedInput is a byte sequence with an optional structural
// annotation splitting it into byte runs and gaps.
type GeneralizedInput struct {
	bytes       []byte
	generalized []GeneralizedItem
}

// NewGeneralizedInput takes ownership of b. The result carries no
// annotation.
func NewGeneralizedInput(b []byte) GeneralizedInput {
	return GeneralizedInput{bytes: b}
}

// GeneralizedInputFromBytes converts in without copying its content.
func GeneralizedInputFromBytes(in BytesInput) GeneralizedInput {
	return NewGeneralizedInput(in.Bytes())
}

// Bytes implements Input.
func (in GeneralizedInput) Bytes() []byte { return in.bytes }

// Len implements Input.
func (in GeneralizedInput) Len() int { return len(in.bytes) }

// Generalized returns the annotation, nil if the input was never annotated.
func (in GeneralizedInput) Generalized() []GeneralizedItem { return in.generalized }

// IsGeneralized reports whether an annotation is present.
func (in GeneralizedInput) IsGeneralized() bool { return in.generalized != nil }

// SetGeneralized replaces the annotation.
func (in *GeneralizedInput) SetGeneralized(items []GeneralizedItem) {
	in.generalized = items
}

// GeneralizedToBytes concatenates the byte runs of the annotation, dropping
// gaps. It returns nil for an input without annotation.
func (in GeneralizedInput) GeneralizedToBytes() []byte {
	if in.generalized == nil {
		return nil
	}
	out := make([]byte, 0, in.GeneralizedLen())
	for _, item := range in.generalized {
		if !item.Gap {
			out = append(out, item.Bytes...)
		}
	}
	return out
}

// GeneralizedLen is the length of GeneralizedToBytes.
func (in GeneralizedInput) GeneralizedLen() (n int) {
	for _, item := range in.generalized {
		if !item.Gap {
			n += len(item.Bytes)
		}
	}
	return n
}

// BytesInput drops the annotation.
func (in GeneralizedInput) BytesInput() BytesInput {
	return NewBytesInput(in.bytes)
}
