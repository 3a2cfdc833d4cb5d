// Package pick provides gopter generators that choose a fixed or random number of
// elements from a population without replacement.
//
// Sizes are validated when the generator is built, so a bad size never reaches
// the property runner:
//
//	g, err := pick.Values(2, []string{"a", "b", "c", "d", "e"})
//	if err != nil {
//		return err
//	}
//	properties.Property("picks two", prop.ForAll(func(v []string) bool {
//		return len(v) == 2
//	}, g))
package pick

import (
	"reflect"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// Values returns a generator of n elements of population, picked without
// replacement. The result keeps the elements in their original relative order.
//
// The population is copied; later changes to the caller's slice do not affect
// the generator. It fails with an *InvalidArgumentError when n is outside
// [0, len(population)].
func Values[T any](n int, population []T) (gopter.Gen, error) {
	if err := validateSize(n, len(population)); err != nil {
		return nil, err
	}

	pop := clone(population)
	discard := len(pop) - n
	if discard == 0 {
		return func(*gopter.GenParameters) *gopter.GenResult {
			return gopter.NewGenResult(clone(pop), gopter.NoShrinker)
		}, nil
	}

	indices := gen.SliceOfN(discard, gen.IntRange(0, removalRange*len(pop)-1))
	return indices.Map(func(idx []int) []T {
		return removeItems(pop, idx)
	}), nil
}

// MustValues is like Values but panics if n is out of range.
func MustValues[T any](n int, population []T) gopter.Gen {
	g, err := Values(n, population)
	if err != nil {
		panic(err)
	}
	return g
}

// Generators returns a generator that picks n of gens without replacement and
// runs each picked generator once. The values are yielded as []interface{} in
// pick order. If a picked generator fails, the whole draw fails.
func Generators(n int, gens []gopter.Gen) (gopter.Gen, error) {
	positions, err := Values(n, sequence(len(gens)))
	if err != nil {
		return nil, err
	}

	pool := clone(gens)
	return positions.FlatMap(func(v interface{}) gopter.Gen {
		picked := v.([]int)
		chosen := make([]gopter.Gen, len(picked))
		for i, p := range picked {
			chosen[i] = pool[p]
		}
		return gopter.CombineGens(chosen...)
	}, reflect.TypeOf([]interface{}{})), nil
}

// MustGenerators is like Generators but panics if n is out of range.
func MustGenerators(n int, gens []gopter.Gen) gopter.Gen {
	g, err := Generators(n, gens)
	if err != nil {
		panic(err)
	}
	return g
}

// SomeOfValues returns a generator of a random-size subset of population. The
// size is drawn uniformly from [0, len(population)].
func SomeOfValues[T any](population []T) gopter.Gen {
	pop := clone(population)
	return gen.IntRange(0, len(pop)).FlatMap(func(v interface{}) gopter.Gen {
		return MustValues(v.(int), pop)
	}, reflect.TypeOf(pop))
}

// SomeOfGenerators returns a generator that runs a random-size subset of gens,
// the size drawn uniformly from [0, len(gens)].
func SomeOfGenerators(gens []gopter.Gen) gopter.Gen {
	pool := clone(gens)
	return gen.IntRange(0, len(pool)).FlatMap(func(v interface{}) gopter.Gen {
		return MustGenerators(v.(int), pool)
	}, reflect.TypeOf([]interface{}{}))
}

func sequence(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
