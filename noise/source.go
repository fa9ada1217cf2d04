// Package noise provides the random samplers and gradient-noise fields that
// drive particle motion. Every generator draws from an injected Source so a
// fixed seed reproduces a run.
package noise

import (
	"errors"
	"math/rand/v2"
)

// ErrInvalidParameter is returned when a generator is constructed with a
// parameter outside its domain.
var ErrInvalidParameter = errors.New("invalid parameter")

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource creates a deterministic source for the given seed.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
