package chars

import (
	"reflect"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// AlphaStr generates strings of ASCII letters of arbitrary length.
func AlphaStr() gopter.Gen {
	return stringOf(AlphaChar(), isAlpha)
}

// NumStr generates strings of digits of arbitrary length.
func NumStr() gopter.Gen {
	return stringOf(NumChar(), isDigit)
}

// AlphaNumStr generates strings of ASCII letters and digits of arbitrary length.
func AlphaNumStr() gopter.Gen {
	return stringOf(AlphaNumChar(), isAlphaNum)
}

// stringOf assembles runes from charGen into a string. Strings containing a
// rune outside class are discarded.
func stringOf(charGen gopter.Gen, class func(rune) bool) gopter.Gen {
	return gen.SliceOf(charGen, reflect.TypeOf(rune(0))).
		Map(func(rs []rune) string {
			return string(rs)
		}).
		SuchThat(func(s string) bool {
			return all(s, class)
		}).
		WithShrinker(gen.StringShrinker)
}

func all(s string, class func(rune) bool) bool {
	for _, r := range s {
		if !class(r) {
			return false
		}
	}
	return true
}
