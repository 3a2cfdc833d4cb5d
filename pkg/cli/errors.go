// Package cli provides output rendering and error formatting for the genx CLI.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nomagicln/genx/pkg/config"
	"github.com/nomagicln/genx/pkg/corpus"
	"github.com/nomagicln/genx/pkg/pick"
	"github.com/nomagicln/genx/pkg/typed"
)

// UnknownGeneratorError indicates a generator name the CLI does not know.
type UnknownGeneratorError struct {
	Kind  string
	Name  string
	Known []string
}

func (e *UnknownGeneratorError) Error() string {
	return fmt.Sprintf("unknown %s generator '%s'", e.Kind, e.Name)
}

// ErrorFormatter provides user-friendly error messages.
type ErrorFormatter struct{}

// NewErrorFormatter creates a new error formatter.
func NewErrorFormatter() *ErrorFormatter {
	return &ErrorFormatter{}
}

// FormatError formats an error into a user-friendly message.
func (f *ErrorFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var (
		argErr        *pick.InvalidArgumentError
		validationErr *config.ValidationError
		notFoundErr   *config.NotFoundError
		recordErr     *corpus.RecordNotFoundError
		unknownErr    *UnknownGeneratorError
	)

	switch {
	case errors.As(err, &argErr):
		return f.formatInvalidArgumentError(argErr)
	case errors.As(err, &validationErr):
		return f.formatValidationError(validationErr)
	case errors.As(err, &notFoundErr):
		return f.formatConfigNotFoundError(notFoundErr)
	case errors.As(err, &recordErr):
		return fmt.Sprintf("Error: %s\n\nTo see stored samples, use:\n  genx corpus list --db <path>", recordErr)
	case errors.As(err, &unknownErr):
		return f.formatUnknownGeneratorError(unknownErr)
	case errors.Is(err, typed.ErrExhausted):
		return fmt.Sprintf("Error: %s\n\nThe generator discarded every candidate value.\nTry a larger --max-size or a different --seed.", err)
	default:
		return fmt.Sprintf("Error: %s", err)
	}
}

// formatInvalidArgumentError explains the valid sample size range.
func (f *ErrorFormatter) formatInvalidArgumentError(err *pick.InvalidArgumentError) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: cannot pick %d values from a population of %d.\n\n", err.Value, err.Max))
	sb.WriteString(fmt.Sprintf("The sample size must be between 0 and %d.\n\n", err.Max))
	sb.WriteString("Example:\n")
	sb.WriteString("  genx pick 2 A B C D E")
	return sb.String()
}

// formatValidationError points at where config values come from.
func (f *ErrorFormatter) formatValidationError(err *config.ValidationError) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n\n", err))
	sb.WriteString("Please check:\n")
	sb.WriteString("  - The config file passed with --config\n")
	sb.WriteString("  - GENX_* environment variables\n\n")
	sb.WriteString("To see the effective config, use:\n")
	sb.WriteString("  genx config show")
	return sb.String()
}

// formatConfigNotFoundError suggests creating a config file.
func (f *ErrorFormatter) formatConfigNotFoundError(err *config.NotFoundError) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n\n", err))
	sb.WriteString("To create one with default values, use:\n")
	sb.WriteString(fmt.Sprintf("  genx config init %s", err.Path))
	return sb.String()
}

// formatUnknownGeneratorError lists the known generators with suggestions.
func (f *ErrorFormatter) formatUnknownGeneratorError(err *UnknownGeneratorError) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s.\n\n", err))

	if suggestions := f.SuggestSimilar(err.Name, err.Known); len(suggestions) > 0 {
		sb.WriteString("Did you mean:\n")
		for _, s := range suggestions {
			sb.WriteString(fmt.Sprintf("  %s\n", s))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Available: %s", strings.Join(err.Known, ", ")))
	return sb.String()
}

// SuggestSimilar returns the candidates that look like name.
func (f *ErrorFormatter) SuggestSimilar(name string, candidates []string) []string {
	var suggestions []string
	nameLower := strings.ToLower(name)

	for _, candidate := range candidates {
		candidateLower := strings.ToLower(candidate)

		if nameLower == candidateLower {
			return []string{candidate}
		}

		if strings.HasPrefix(candidateLower, nameLower) || strings.Contains(candidateLower, nameLower) {
			suggestions = append(suggestions, candidate)
			continue
		}

		if f.levenshteinDistance(nameLower, candidateLower) <= 2 {
			suggestions = append(suggestions, candidate)
		}
	}

	return suggestions
}

func (f *ErrorFormatter) levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
