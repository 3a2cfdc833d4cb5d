package proptest

import (
	"reflect"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// Sized pairs a population with a sample size valid for it.
type Sized struct {
	Population []string
	N          int
}

// Population generates populations of short strings. Duplicates are likely,
// which exercises positional sampling.
func Population() gopter.Gen {
	return gen.SliceOf(gen.RuneRange('a', 'h').Map(func(r rune) string {
		return string(r)
	}))
}

// IntPopulation generates populations of distinct ascending integers.
func IntPopulation() gopter.Gen {
	return gen.IntRange(0, 40).Map(func(n int) []int {
		s := make([]int, n)
		for i := range s {
			s[i] = i
		}
		return s
	})
}

// PopulationWithSize generates a population together with a sample size in
// [0, len(population)].
func PopulationWithSize() gopter.Gen {
	return Population().FlatMap(func(v interface{}) gopter.Gen {
		pop := v.([]string)
		return gen.IntRange(0, len(pop)).Map(func(n int) Sized {
			return Sized{Population: pop, N: n}
		})
	}, reflect.TypeOf(Sized{}))
}
