// Package typed wraps gopter generators with a type parameter so that values
// come back as T instead of interface{}, and adds method-style combinators.
//
//	words := typed.From[string](chars.AlphaStr()).Filter(func(s string) bool { return s != "" })
//	lengths := typed.Map(words, func(s string) int { return len(s) })
package typed

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// ErrExhausted is returned by Take when a generator keeps failing to produce a value.
var ErrExhausted = errors.New("generator exhausted")

// maxAttempts bounds how often Take retries a single draw that was discarded.
const maxAttempts = 100

// Gen is a gopter generator known to produce values of type T.
type Gen[T any] struct {
	g gopter.Gen
}

// From wraps g. The caller asserts that g produces values of type T.
func From[T any](g gopter.Gen) Gen[T] {
	return Gen[T]{g: g}
}

// Const always generates v.
func Const[T any](v T) Gen[T] {
	return From[T](gen.Const(v))
}

// Gen returns the underlying gopter generator, for use with prop.ForAll.
func (g Gen[T]) Gen() gopter.Gen {
	return g.g
}

// Draw runs the generator once with params.
func (g Gen[T]) Draw(params *gopter.GenParameters) (T, bool) {
	var zero T
	v, ok := g.g(params).Retrieve()
	if !ok {
		return zero, false
	}
	if v == nil {
		return zero, true
	}
	t, ok := v.(T)
	return t, ok
}

// Sample runs the generator once with default parameters.
func (g Gen[T]) Sample() (T, bool) {
	return g.Draw(gopter.DefaultGenParameters())
}

// Take draws n values with params, retrying discarded draws.
func (g Gen[T]) Take(params *gopter.GenParameters, n int) ([]T, error) {
	out := make([]T, 0, n)
	for len(out) < n {
		v, err := g.drawWithRetry(params)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (g Gen[T]) drawWithRetry(params *gopter.GenParameters) (T, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if v, ok := g.Draw(params); ok {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w after %d attempts", ErrExhausted, maxAttempts)
}

// Filter keeps only values satisfying keep.
func (g Gen[T]) Filter(keep func(T) bool) Gen[T] {
	return From[T](g.g.SuchThat(func(v interface{}) bool {
		t, ok := v.(T)
		return ok && keep(t)
	}))
}

// WithLabel attaches a label reported by gopter when a property fails.
func (g Gen[T]) WithLabel(label string) Gen[T] {
	return From[T](g.g.WithLabel(label))
}

// Map transforms every value of g with f. Failed draws stay failed. The
// mapping works on the GenResult so that gopter never inspects T or U, which
// may be interface types.
func Map[T, U any](g Gen[T], f func(T) U) Gen[U] {
	resultType := typeOf[U]()
	return From[U](g.g.MapResult(func(r *gopter.GenResult) *gopter.GenResult {
		v, ok := r.Retrieve()
		if !ok {
			return &gopter.GenResult{
				Shrinker:   gopter.NoShrinker,
				Labels:     r.Labels,
				ResultType: resultType,
			}
		}
		var t T
		if v != nil {
			t = v.(T)
		}
		return &gopter.GenResult{
			Shrinker:   gopter.NoShrinker,
			Result:     f(t),
			Labels:     r.Labels,
			ResultType: resultType,
		}
	}))
}

// Bind runs g and feeds its value to f to obtain the next generator.
func Bind[T, U any](g Gen[T], f func(T) Gen[U]) Gen[U] {
	return From[U](g.g.FlatMap(func(v interface{}) gopter.Gen {
		return f(v.(T)).g
	}, typeOf[U]()))
}

// Zip runs a then b and combines their values with f.
func Zip[T, U, V any](a Gen[T], b Gen[U], f func(T, U) V) Gen[V] {
	return Bind(a, func(x T) Gen[V] {
		return Map(b, func(y U) V {
			return f(x, y)
		})
	})
}

// ForAll is prop.ForAll for a single typed generator.
func ForAll[T any](check func(T) bool, g Gen[T]) gopter.Prop {
	return prop.ForAll(check, g.g)
}

// ForAll2 is prop.ForAll for two typed generators.
func ForAll2[T, U any](check func(T, U) bool, a Gen[T], b Gen[U]) gopter.Prop {
	return prop.ForAll(check, a.g, b.g)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
