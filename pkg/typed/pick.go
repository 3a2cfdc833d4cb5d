package typed

import (
	"github.com/leanovate/gopter"
	"github.com/nomagicln/genx/pkg/pick"
)

// PickValues is pick.Values with a typed result.
func PickValues[T any](n int, population []T) (Gen[[]T], error) {
	g, err := pick.Values(n, population)
	if err != nil {
		return Gen[[]T]{}, err
	}
	return From[[]T](g), nil
}

// PickGenerators is pick.Generators over typed generators.
func PickGenerators[T any](n int, gens []Gen[T]) (Gen[[]T], error) {
	g, err := pick.Generators(n, untyped(gens))
	if err != nil {
		return Gen[[]T]{}, err
	}
	return Map(From[[]interface{}](g), castAll[T]), nil
}

// SomeOfValues is pick.SomeOfValues with a typed result.
func SomeOfValues[T any](population []T) Gen[[]T] {
	return From[[]T](pick.SomeOfValues(population))
}

// SomeOfGenerators is pick.SomeOfGenerators over typed generators.
func SomeOfGenerators[T any](gens []Gen[T]) Gen[[]T] {
	return Map(From[[]interface{}](pick.SomeOfGenerators(untyped(gens))), castAll[T])
}

func untyped[T any](gens []Gen[T]) []gopter.Gen {
	out := make([]gopter.Gen, len(gens))
	for i, g := range gens {
		out[i] = g.g
	}
	return out
}

func castAll[T any](vs []interface{}) []T {
	out := make([]T, len(vs))
	for i, v := range vs {
		if v != nil {
			out[i] = v.(T)
		}
	}
	return out
}
