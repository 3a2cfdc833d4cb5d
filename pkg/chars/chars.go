// Package chars provides gopter generators for character classes and the
// strings built from them.
package chars

import (
	"fmt"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// Weights used when mixing character classes. Lower-case letters are drawn nine
// times as often as upper-case ones, letters nine times as often as digits.
const (
	upperWeight  = 1
	lowerWeight  = 9
	digitWeight  = 1
	letterWeight = 9
)

// Choice picks one of the alternatives on each draw with probability
// proportional to its weight. It panics if there are no alternatives or a
// weight is not positive.
func Choice(alternatives ...gen.WeightedGen) gopter.Gen {
	if len(alternatives) == 0 {
		panic("chars: Choice needs at least one alternative")
	}
	for _, a := range alternatives {
		if a.Weight <= 0 {
			panic(fmt.Sprintf("chars: Choice weights must be positive, got %d", a.Weight))
		}
	}
	return gen.Weighted(alternatives)
}

// NumChar generates digits '0' to '9'.
func NumChar() gopter.Gen {
	return gen.RuneRange('0', '9')
}

// AlphaUpperChar generates letters 'A' to 'Z'.
func AlphaUpperChar() gopter.Gen {
	return gen.RuneRange('A', 'Z')
}

// AlphaLowerChar generates letters 'a' to 'z'.
func AlphaLowerChar() gopter.Gen {
	return gen.RuneRange('a', 'z')
}

// AlphaChar generates ASCII letters, lower-case nine times out of ten.
func AlphaChar() gopter.Gen {
	return Choice(
		gen.WeightedGen{Weight: upperWeight, Gen: AlphaUpperChar()},
		gen.WeightedGen{Weight: lowerWeight, Gen: AlphaLowerChar()},
	)
}

// AlphaNumChar generates ASCII letters and digits, a digit one time out of ten.
func AlphaNumChar() gopter.Gen {
	return Choice(
		gen.WeightedGen{Weight: digitWeight, Gen: NumChar()},
		gen.WeightedGen{Weight: letterWeight, Gen: AlphaChar()},
	)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isAlpha(r rune) bool {
	return isUpper(r) || isLower(r)
}

func isAlphaNum(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
