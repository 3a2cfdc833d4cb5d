package typed

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/nomagicln/genx/internal/proptest"
	"github.com/nomagicln/genx/pkg/chars"
	"github.com/nomagicln/genx/pkg/pick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawAndConst(t *testing.T) {
	v, ok := Const(42).Draw(proptest.SeededGenParameters(1))
	require.True(t, ok)
	assert.Equal(t, 42, v)

	s, ok := Const("x").Sample()
	require.True(t, ok)
	assert.Equal(t, "x", s)
}

func TestMapFilterBind(t *testing.T) {
	params := proptest.SeededGenParameters(4)

	ints := From[int](gen.IntRange(0, 100))
	even := ints.Filter(func(n int) bool { return n%2 == 0 })
	labels := Map(even, func(n int) string { return strings.Repeat("x", n) })

	for i := 0; i < 50; i++ {
		s, ok := labels.Draw(params)
		if !ok {
			continue
		}
		assert.Zero(t, len(s)%2)
	}

	lists := Bind(From[int](gen.IntRange(1, 5)), func(n int) Gen[[]int] {
		return From[[]int](gen.SliceOfN(n, gen.Const(n)))
	})
	for i := 0; i < 20; i++ {
		l, ok := lists.Draw(params)
		require.True(t, ok)
		for _, x := range l {
			assert.Equal(t, len(l), x)
		}
	}
}

func TestZip(t *testing.T) {
	pairs := Zip(Const("a"), From[int](gen.IntRange(1, 3)), func(s string, n int) string {
		return strings.Repeat(s, n)
	})

	v, ok := pairs.Draw(proptest.SeededGenParameters(9))
	require.True(t, ok)
	assert.Contains(t, []string{"a", "aa", "aaa"}, v)
}

func TestMapInterfaceTypes(t *testing.T) {
	params := proptest.SeededGenParameters(3)

	t.Run("to any", func(t *testing.T) {
		asString := Map(From[rune](chars.AlphaUpperChar()), func(r rune) any {
			return string(r)
		})
		for i := 0; i < 20; i++ {
			v, ok := asString.Draw(params)
			require.True(t, ok)
			s, isString := v.(string)
			require.True(t, isString, "got %T", v)
			assert.Len(t, s, 1)
			assert.True(t, s >= "A" && s <= "Z", s)
		}
	})

	t.Run("from any", func(t *testing.T) {
		doubled := Map(Const[any](5), func(v any) int {
			return v.(int) * 2
		})
		v, ok := doubled.Draw(params)
		require.True(t, ok)
		assert.Equal(t, 10, v)
	})

	t.Run("failed draws stay failed", func(t *testing.T) {
		failing := Map(From[any](gen.Fail(reflect.TypeOf(0))), func(v any) any {
			return v
		})
		_, ok := failing.Draw(params)
		assert.False(t, ok)
	})

	t.Run("filter over any", func(t *testing.T) {
		small := From[any](gen.IntRange(0, 10)).Filter(func(v any) bool {
			return v.(int) < 5
		})
		vs, err := small.Take(params, 10)
		require.NoError(t, err)
		for _, v := range vs {
			assert.Less(t, v.(int), 5)
		}
	})
}

func TestZipToAny(t *testing.T) {
	pairs := Zip(From[rune](chars.NumChar()), Const("x"), func(r rune, s string) any {
		return string(r) + s
	})

	vs, err := pairs.Take(proptest.SeededGenParameters(8), 10)
	require.NoError(t, err)
	for _, v := range vs {
		s, ok := v.(string)
		require.True(t, ok, "got %T", v)
		assert.Regexp(t, `^[0-9]x$`, s)
	}
}

func TestTake(t *testing.T) {
	vs, err := From[rune](chars.NumChar()).Take(proptest.SeededGenParameters(2), 10)
	require.NoError(t, err)
	assert.Len(t, vs, 10)

	never := From[int](gen.IntRange(0, 10)).Filter(func(int) bool { return false })
	_, err = never.Take(proptest.SeededGenParameters(2), 1)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestPickValues(t *testing.T) {
	g, err := PickValues(2, []string{"A", "B", "C", "D", "E"})
	require.NoError(t, err)

	v, ok := g.Draw(proptest.SeededGenParameters(6))
	require.True(t, ok)
	assert.Len(t, v, 2)

	_, err = PickValues(6, []string{"A"})
	assert.ErrorIs(t, err, pick.ErrInvalidArgument)
}

func TestPickGenerators(t *testing.T) {
	gens := []Gen[int]{Const(1), Const(2), Const(3)}

	g, err := PickGenerators(2, gens)
	require.NoError(t, err)
	v, ok := g.Draw(proptest.SeededGenParameters(6))
	require.True(t, ok)
	require.Len(t, v, 2)
	assert.Less(t, v[0], v[1])

	_, err = PickGenerators(-1, gens)
	assert.ErrorIs(t, err, pick.ErrInvalidArgument)
}

func TestPropertySomeOf(t *testing.T) {
	properties := gopter.NewProperties(proptest.FastTestParameters())
	population := []int{1, 2, 3, 4, 5}

	properties.Property("SomeOfValues stays within the population", ForAll(
		func(v []int) bool {
			return len(v) <= len(population)
		},
		SomeOfValues(population),
	))

	properties.Property("SomeOfGenerators yields typed values", ForAll2(
		func(v []string, n int) bool {
			return len(v) <= 2 && n >= 0
		},
		SomeOfGenerators([]Gen[string]{Const("a"), Const("b")}),
		From[int](gen.IntRange(0, 10)),
	))

	properties.TestingRun(t)
}
