package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/nomagicln/genx/pkg/cli"
	"github.com/nomagicln/genx/pkg/codegen"
	"github.com/nomagicln/genx/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigCmd creates the config subcommand
func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the genx config file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective config",
			Long: `Print the effective config after applying the config file,
GENX_* environment variables and flags.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := yaml.Marshal(a.cfg)
				if err != nil {
					return fmt.Errorf("failed to serialize config: %w", err)
				}
				_, err = a.out.Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "init [path]",
			Short: "Write a config file with default values",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.DefaultPath()
				if err != nil {
					return err
				}
				if len(args) == 1 {
					path = config.ExpandPath(args[0])
				}

				if err := config.Default().Save(path); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "✓ Wrote default config to %s\n", path)
				return nil
			},
		},
	)

	return cmd
}

// newCorpusCmd creates the corpus subcommand
func (a *app) newCorpusCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect samples stored with --record",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the corpus database")
	_ = cmd.MarkPersistentFlagRequired("db")

	var where string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored samples",
		Long: `List stored samples, optionally filtered by an expression:
  GeneratorIs("pick"), GeneratorStartsWith("str"), SeedIs(42), ValueContains("abc")
combined with && (and), || (or), ! (not). Negative seeds are quoted: SeedIs("-42").

Example:
  genx corpus list --db samples.db
  genx corpus list --db samples.db --where 'GeneratorIs("uuid") && SeedIs(42)'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openCorpus(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.Query(cmd.Context(), where)
			if err != nil {
				return err
			}
			return cli.NewRenderer(a.out, a.format).Records(records)
		},
	}
	listCmd.Flags().StringVar(&where, "where", "", "Filter expression")
	_ = listCmd.RegisterFlagCompletionFunc("where", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return a.completer.CompleteFilterFunctions(toComplete), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	})

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored sample",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 || dbPath == "" {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			store, err := a.openCorpus(dbPath)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			defer func() { _ = store.Close() }()
			return a.completer.CompleteRecordIDs(cmd.Context(), store, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid sample id '%s': %w", args[0], err)
			}

			store, err := a.openCorpus(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Deleted sample %s\n", id)
			return nil
		},
	}

	var lang string
	replayCmd := &cobra.Command{
		Use:   "replay <id>",
		Short: "Print code that draws a stored sample again",
		Long: `Print code that draws a stored sample again, either as a genx command
(shell) or as a Go test using the generators directly (go). The Go test
uses the default config with the recorded seed.

Example:
  genx corpus replay 0b8e4c4a-1f5e-4b3c-9d2e-7a6b5c4d3e2f --db samples.db
  genx corpus replay 0b8e4c4a-1f5e-4b3c-9d2e-7a6b5c4d3e2f --db samples.db --lang go`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: deleteCmd.ValidArgsFunction,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid sample id '%s': %w", args[0], err)
			}

			gen, err := codegen.NewGenerator(codegen.OutputFormat(lang), codegen.Options{})
			if err != nil {
				return fmt.Errorf("%w (use %s)", err, strings.Join(codegen.ListFormats(), " or "))
			}

			store, err := a.openCorpus(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rec, err := store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			code, err := gen.Generate(rec)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.out, code)
			return err
		},
	}
	replayCmd.Flags().StringVar(&lang, "lang", string(codegen.FormatShell), "Code to print: shell, go")
	_ = replayCmd.RegisterFlagCompletionFunc("lang", cobra.FixedCompletions(codegen.ListFormats(), cobra.ShellCompDirectiveNoFileComp))

	cmd.AddCommand(listCmd, deleteCmd, replayCmd)
	return cmd
}
