// Package completion provides shell completion suggestions for genx.
package completion

import (
	"context"
	"sort"
	"strings"

	"github.com/nomagicln/genx/pkg/cli"
	"github.com/nomagicln/genx/pkg/corpus"
)

// RecordLister is the part of a corpus store completion needs.
type RecordLister interface {
	List(ctx context.Context) ([]corpus.Record, error)
}

// Provider provides completion suggestions for commands and arguments.
type Provider struct {
	classes map[string][]string
}

// NewProvider creates a new completion provider.
func NewProvider() *Provider {
	return &Provider{classes: make(map[string][]string)}
}

// RegisterClasses records the class names a generator command accepts.
func (p *Provider) RegisterClasses(command string, classes []string) {
	sorted := append([]string(nil), classes...)
	sort.Strings(sorted)
	p.classes[command] = sorted
}

// CompleteClasses returns the class names registered for command.
func (p *Provider) CompleteClasses(command, prefix string) []string {
	return filterPrefix(p.classes[command], prefix)
}

// CompleteCommands returns the generator commands that take a class argument.
func (p *Provider) CompleteCommands(prefix string) []string {
	commands := make(map[string]bool, len(p.classes))
	for command := range p.classes {
		if matchesPrefix(command, prefix) {
			commands[command] = true
		}
	}
	return sortedKeys(commands)
}

// CompleteFormats returns the output formats.
func (p *Provider) CompleteFormats(prefix string) []string {
	return filterPrefix(cli.Formats(), prefix)
}

// CompleteFilterFunctions returns filter functions as call prefixes, ready
// for the argument to be typed.
func (p *Provider) CompleteFilterFunctions(prefix string) []string {
	var calls []string
	for _, name := range corpus.FilterFunctions() {
		if matchesPrefix(name, prefix) {
			calls = append(calls, name+"(")
		}
	}
	return calls
}

// CompleteRecordIDs returns the IDs of stored samples, oldest first.
func (p *Provider) CompleteRecordIDs(ctx context.Context, store RecordLister, prefix string) []string {
	records, err := store.List(ctx)
	if err != nil {
		return nil
	}

	var ids []string
	for _, r := range records {
		id := r.ID.String()
		if matchesPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	return ids
}

func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		return items
	}

	var matches []string
	for _, item := range items {
		if matchesPrefix(item, prefix) {
			matches = append(matches, item)
		}
	}
	return matches
}

// matchesPrefix checks if a string matches the given prefix.
func matchesPrefix(s, prefix string) bool {
	return prefix == "" || strings.HasPrefix(s, prefix)
}

// sortedKeys returns sorted keys from a map.
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
