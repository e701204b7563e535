package data

import (
	"math/rand/v2"
)

// Fixed seeds used by the original benchmark programs.
const (
	MatMulSeed  uint64 = 0xC0FFEE123456789
	NetworkSeed uint64 = 0xDEADBEEF12345678
)

const (
	lcgMultiplier uint64 = 6364136223846793005
	lcgIncrement  uint64 = 1
)

// Uniform produces values uniformly distributed in [0,1).
type Uniform interface {
	Float64() float64
}

// -------- AMBIENT SOURCE -------- //
type ambient struct{}

func (ambient) Float64() float64 { return rand.Float64() }

// Ambient draws from the process-wide math/rand/v2 generator. It is not
// reproducible across runs.
var Ambient Uniform = ambient{}

// -------- SEEDED SOURCE -------- //

// LCG is a 64-bit linear congruential generator. Float64 keeps the top 53
// bits of the state, so every value is an exact multiple of 2^-53.
//
// LCG also satisfies rand.Source, so it can back a *rand.Rand.
type LCG struct {
	state uint64
}

func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

func (g *LCG) Uint64() uint64 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return g.state
}

func (g *LCG) Float64() float64 {
	return float64(g.Uint64()>>11) / (1 << 53)
}

var _ rand.Source = (*LCG)(nil)

// ------ DRAW HELPERS ------

// Signed maps one draw from u onto [-1,1).
func Signed(u Uniform) float64 {
	return u.Float64()*2 - 1
}

// FillUniform overwrites dst with draws in [0,1), in index order.
func FillUniform(dst []float64, u Uniform) {
	for i := range dst {
		dst[i] = u.Float64()
	}
}

// FillSigned overwrites dst with draws in [-1,1), in index order.
func FillSigned(dst []float64, u Uniform) {
	for i := range dst {
		dst[i] = Signed(u)
	}
}
