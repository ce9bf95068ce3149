package core

import (
	"crypto/rand"
	"encoding/binary"
	mathRand "math/rand/v2"

	"github.com/fbaltor/generators/internal/mtx"
)

// RandSrc is the process-wide source used to pick seeds for RNGs that were
// not given one explicitly.
var RandSrc mtx.Mtx[*mathRand.Rand]

func init() {
	var seedBytes [16]byte
	_, _ = rand.Read(seedBytes[:])
	seedState := binary.LittleEndian.Uint64(seedBytes[:8])
	seedStream := binary.LittleEndian.Uint64(seedBytes[8:])
	RandSrc.Set(mathRand.New(mathRand.NewPCG(seedState, seedStream)))
}

// NewSeed draws a fresh 64 bit seed from RandSrc.
func NewSeed() (out uint64) {
	RandSrc.With(func(v **mathRand.Rand) {
		out = (*v).Uint64()
	})
	return
}
