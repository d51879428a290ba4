// Package sampler produces random grids for the problem generator.
package sampler

import (
	"math/rand/v2"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/grid"
)

// Sampler draws a valid random grid on every call.
// A Sampler is used by one generator at a time and need not be safe for
// concurrent use.
type Sampler interface {
	Sample() *grid.Grid
}

// Func adapts a plain function to the Sampler interface.
type Func func() *grid.Grid

// Sample calls f.
func (f Func) Sample() *grid.Grid { return f() }

// Uniform fills every cell with an independent, uniformly chosen variety.
type Uniform struct {
	size      int
	varieties []any
	rng       *rand.Rand
}

// NewUniform returns a Uniform sampler. It returns ErrBelowMinimumSize for
// size < grid.MinSize, ErrInvalidInput for an empty variety list and
// ErrMissingValue for a nil variety.
func NewUniform(size int, varieties []any, rng *rand.Rand) (*Uniform, error) {
	if size < grid.MinSize {
		return nil, errors.Newf(errors.ErrBelowMinimumSize, "size must be >= %d, got %d", grid.MinSize, size)
	}
	if len(varieties) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "at least one variety is required")
	}
	for i, v := range varieties {
		if v == nil {
			return nil, errors.Newf(errors.ErrMissingValue, "variety %d is nil", i+1)
		}
	}
	if rng == nil {
		return nil, errors.New(errors.ErrInvalidInput, "random source is required")
	}
	vs := make([]any, len(varieties))
	copy(vs, varieties)
	return &Uniform{size: size, varieties: vs, rng: rng}, nil
}

// Sample draws one grid.
func (u *Uniform) Sample() *grid.Grid {
	values := make([][]any, u.size)
	for r := range values {
		values[r] = make([]any, u.size)
		for c := range values[r] {
			values[r][c] = u.varieties[u.rng.IntN(len(u.varieties))]
		}
	}
	g, err := grid.New(values, u.size)
	if err != nil {
		// size and varieties were validated by NewUniform
		panic(err)
	}
	return g
}

// Size returns the size of the grids drawn.
func (u *Uniform) Size() int { return u.size }

// NewRand returns a deterministic PCG-backed source for a seed and stream.
// Independent streams let concurrent generators share one base seed.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}
