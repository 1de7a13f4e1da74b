package combat

import "math/rand"

// Source is the uniform [0,1) generator every probability-gated roll draws
// from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a Source seeded with seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
