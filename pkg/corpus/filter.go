package corpus

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vulcand/predicate"
)

// recordPredicate is the value every filter function and operator produces.
type recordPredicate func(Record) bool

// Filter compiles a filter expression over records. The language supports:
//   - GeneratorIs("uuid"): exact match on the generator name
//   - GeneratorStartsWith("str"): prefix match on the generator name
//   - SeedIs(42), SeedIs("-42"): exact match on the seed; negative seeds must be
//     quoted because the expression language has no unary minus
//   - ValueContains("abc"): substring match on the JSON-encoded value
//   - Logical operators: && (and), || (or), ! (not), with parentheses
//
// An empty expression matches every record.
func Filter(expr string) (func(Record) bool, error) {
	if strings.TrimSpace(expr) == "" {
		return func(Record) bool { return true }, nil
	}

	parser, err := predicate.NewParser(predicate.Def{
		Functions: filterFunctions(),
		Operators: predicate.Operators{
			AND: func(a, b recordPredicate) recordPredicate {
				return func(r Record) bool { return a(r) && b(r) }
			},
			OR: func(a, b recordPredicate) recordPredicate {
				return func(r Record) bool { return a(r) || b(r) }
			},
			NOT: func(a recordPredicate) recordPredicate {
				return func(r Record) bool { return !a(r) }
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	pred, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	fn, ok := pred.(recordPredicate)
	if !ok {
		return nil, fmt.Errorf("filter must evaluate to boolean, got %T", pred)
	}
	return fn, nil
}

func filterFunctions() map[string]any {
	return map[string]any{
		"GeneratorIs": func(name string) recordPredicate {
			return func(r Record) bool {
				return strings.EqualFold(r.Generator, name)
			}
		},
		"GeneratorStartsWith": func(prefix string) recordPredicate {
			return func(r Record) bool {
				return strings.HasPrefix(strings.ToLower(r.Generator), strings.ToLower(prefix))
			}
		},
		"SeedIs": func(seed any) (recordPredicate, error) {
			want, err := seedArg(seed)
			if err != nil {
				return nil, err
			}
			return func(r Record) bool {
				return r.Seed == want
			}, nil
		},
		"ValueContains": func(substr string) recordPredicate {
			return func(r Record) bool {
				return strings.Contains(r.Value, substr)
			}
		},
	}
}

// seedArg accepts a seed written as an integer literal or as a quoted integer.
func seedArg(v any) (int64, error) {
	switch seed := v.(type) {
	case int:
		return int64(seed), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(seed), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("SeedIs: '%s' is not an integer", seed)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("SeedIs: expected an integer, got %T", v)
	}
}

// FilterFunctions returns the names of the functions a filter expression can call.
func FilterFunctions() []string {
	fns := filterFunctions()
	names := make([]string, 0, len(fns))
	for name := range fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
