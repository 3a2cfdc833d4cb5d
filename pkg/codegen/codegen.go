// Package codegen turns stored corpus samples back into code that reproduces
// them. It supports a genx shell command and a Go test using gopter directly.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nomagicln/genx/pkg/corpus"
)

// OutputFormat represents the target language/tool for code generation.
type OutputFormat string

const (
	FormatShell OutputFormat = "shell"
	FormatGo    OutputFormat = "go"
)

// Options contains configuration for code generation.
type Options struct {
	// Binary is the command name used in shell output. Defaults to "genx".
	Binary string

	// Package is the package clause of generated Go tests. Defaults to "replay_test".
	Package string
}

func (o Options) withDefaults() Options {
	if o.Binary == "" {
		o.Binary = "genx"
	}
	if o.Package == "" {
		o.Package = "replay_test"
	}
	return o
}

// Generator defines the interface for code generation from stored samples.
type Generator interface {
	// Generate produces code that draws rec again.
	Generate(rec corpus.Record) (string, error)
}

// GeneratorFactory is a function type that creates a new Generator instance.
type GeneratorFactory func(opts Options) Generator

// registry maps output formats to their corresponding generator factories.
var registry = make(map[OutputFormat]GeneratorFactory)

func init() {
	register(FormatShell, func(opts Options) Generator {
		return NewShellGenerator(opts)
	})
	register(FormatGo, func(opts Options) Generator {
		return NewGoGenerator(opts)
	})
}

// register registers a new code generator factory for the specified format.
func register(format OutputFormat, factory GeneratorFactory) {
	if factory == nil {
		panic(fmt.Sprintf("generator factory for format %s cannot be nil", format))
	}
	registry[format] = factory
}

// NewGenerator creates a new code generator for the specified format.
func NewGenerator(format OutputFormat, opts Options) (Generator, error) {
	factory, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return factory(opts.withDefaults()), nil
}

// ValidateFormat checks if the given format is valid.
func ValidateFormat(format string) bool {
	_, ok := registry[OutputFormat(format)]
	return ok
}

// ListFormats returns all registered output formats, sorted.
func ListFormats() []string {
	formats := make([]string, 0, len(registry))
	for format := range registry {
		formats = append(formats, string(format))
	}
	sort.Strings(formats)
	return formats
}

// commandWords splits a recorded generator name such as "char.alpha" into
// the genx command words that select it.
func commandWords(generator string) ([]string, error) {
	if generator == "" {
		return nil, fmt.Errorf("sample has no generator name")
	}
	return strings.Split(generator, "."), nil
}

// header describes the sample a snippet reproduces.
func header(rec corpus.Record) string {
	return fmt.Sprintf("sample %s: value %d of %s with seed %d, recorded %s",
		rec.ID, rec.Index+1, rec.Generator, rec.Seed, rec.Value)
}
