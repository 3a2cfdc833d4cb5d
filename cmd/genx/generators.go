package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/leanovate/gopter"
	"github.com/nomagicln/genx/pkg/chars"
	"github.com/nomagicln/genx/pkg/cli"
	"github.com/nomagicln/genx/pkg/completion"
	"github.com/nomagicln/genx/pkg/typed"
	"github.com/nomagicln/genx/pkg/uuidgen"
	"github.com/spf13/cobra"
)

var charGenerators = map[string]func() gopter.Gen{
	"num":      chars.NumChar,
	"upper":    chars.AlphaUpperChar,
	"lower":    chars.AlphaLowerChar,
	"alpha":    chars.AlphaChar,
	"alphanum": chars.AlphaNumChar,
}

var strGenerators = map[string]func() gopter.Gen{
	"alpha":    chars.AlphaStr,
	"num":      chars.NumStr,
	"alphanum": chars.AlphaNumStr,
}

func names(m map[string]func() gopter.Gen) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func newCompleter() *completion.Provider {
	p := completion.NewProvider()
	p.RegisterClasses("char", names(charGenerators))
	p.RegisterClasses("str", names(strGenerators))
	return p
}

// completeClasses completes the class argument of a generator command.
func (a *app) completeClasses(command string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return a.completer.CompleteClasses(command, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// lookup finds a generator by class name.
func lookup(kind string, m map[string]func() gopter.Gen, name string) (gopter.Gen, error) {
	newGen, ok := m[name]
	if !ok {
		return nil, &cli.UnknownGeneratorError{Kind: kind, Name: name, Known: names(m)}
	}
	return newGen(), nil
}

// newPickCmd creates the pick subcommand
func (a *app) newPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <n> <values...>",
		Short: "Pick n of the given values without replacement",
		Long: `Pick n of the given values without replacement. The picked values keep
the order they were given in.

Example:
  genx pick 2 A B C D E
  genx pick 3 red green blue cyan --count 10 --seed 42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("sample size must be an integer, got '%s'", args[0])
			}

			g, err := typed.PickValues(n, args[1:])
			if err != nil {
				return err
			}
			return a.draw(cmd.Context(), "pick", args, typed.From[any](g.Gen()))
		},
	}
}

// newSomeOfCmd creates the someof subcommand
func (a *app) newSomeOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "someof <values...>",
		Short: "Pick a random-size subset of the given values",
		Long: `Pick a random-size subset of the given values. The size is drawn uniformly
from zero to the number of values.

Example:
  genx someof A B C D E`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := typed.SomeOfValues(args)
			return a.draw(cmd.Context(), "someof", args, typed.From[any](g.Gen()))
		},
	}
}

// newCharCmd creates the char subcommand
func (a *app) newCharCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "char <class>",
		Short:             "Draw characters of a class: " + joinNames(charGenerators),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeClasses("char"),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := lookup("char", charGenerators, args[0])
			if err != nil {
				return err
			}
			asString := typed.Map(typed.From[rune](g), func(r rune) any {
				return string(r)
			})
			return a.draw(cmd.Context(), "char."+args[0], nil, asString)
		},
	}
}

// newStrCmd creates the str subcommand
func (a *app) newStrCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "str <class>",
		Short:             "Draw strings of a class: " + joinNames(strGenerators),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeClasses("str"),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := lookup("str", strGenerators, args[0])
			if err != nil {
				return err
			}
			return a.draw(cmd.Context(), "str."+args[0], nil, typed.From[any](g))
		},
	}
}

// newUUIDCmd creates the uuid subcommand
func (a *app) newUUIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uuid",
		Short: "Draw version 4 UUIDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.draw(cmd.Context(), "uuid", nil, typed.From[any](uuidgen.V4String()))
		},
	}
}

func joinNames(m map[string]func() gopter.Gen) string {
	return strings.Join(names(m), ", ")
}
