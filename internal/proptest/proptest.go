// Package proptest provides property-based testing infrastructure and generators.
package proptest

import (
	"math/rand"

	"github.com/leanovate/gopter"
)

// TestParameters returns the standard test parameters for property tests.
// Default: 1000 iterations for a good balance between coverage and speed.
func TestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 1000
	return params
}

// FastTestParameters returns parameters for properties that run in every
// `go test` invocation.
func FastTestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	return params
}

// SeededGenParameters returns generator parameters with a fixed seed, for
// drawing values directly from a generator in deterministic tests.
func SeededGenParameters(seed int64) *gopter.GenParameters {
	params := gopter.DefaultGenParameters()
	params.Rng = rand.New(rand.NewSource(seed))
	return params
}

// CountingSource is a rand.Source64 that counts how many values were drawn.
type CountingSource struct {
	src   rand.Source64
	Draws int
}

// NewCountingSource creates a counting source with the given seed.
func NewCountingSource(seed int64) *CountingSource {
	return &CountingSource{src: rand.NewSource(seed).(rand.Source64)}
}

// Int63 implements rand.Source.
func (c *CountingSource) Int63() int64 {
	c.Draws++
	return c.src.Int63()
}

// Uint64 implements rand.Source64.
func (c *CountingSource) Uint64() uint64 {
	c.Draws++
	return c.src.Uint64()
}

// Seed implements rand.Source.
func (c *CountingSource) Seed(seed int64) {
	c.src.Seed(seed)
}

// CountingGenParameters returns generator parameters backed by a CountingSource.
func CountingGenParameters(seed int64) (*gopter.GenParameters, *CountingSource) {
	src := NewCountingSource(seed)
	params := gopter.DefaultGenParameters()
	params.Rng = rand.New(src)
	return params, src
}
