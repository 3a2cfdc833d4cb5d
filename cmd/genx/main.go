// Package main is the entry point for the genx CLI.
// genx draws sample values from the generators in this module, so their output
// can be inspected, reproduced from a seed, and kept in a corpus.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nomagicln/genx/pkg/cli"
	"github.com/nomagicln/genx/pkg/completion"
	"github.com/nomagicln/genx/pkg/config"
	"github.com/nomagicln/genx/pkg/corpus"
	"github.com/nomagicln/genx/pkg/typed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build information, set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes the CLI and prints a formatted error to stderr on failure.
func run(args []string, stdout, stderr io.Writer) error {
	a := &app{out: stdout, errOut: stderr, logger: zap.NewNop(), completer: newCompleter()}
	defer func() { _ = a.logger.Sync() }()

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, cli.NewErrorFormatter().FormatError(err))
		return err
	}
	return nil
}

// options holds the global flags.
type options struct {
	count      int
	seed       int64
	maxSize    int
	configPath string
	output     string
	record     string
	verbose    bool
}

// app carries state shared by all subcommands.
type app struct {
	out    io.Writer
	errOut io.Writer
	opts   options
	cfg    config.Config
	format cli.Format
	logger *zap.Logger

	completer *completion.Provider
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "genx",
		Short: "genx - sample values from gopter generators",
		Long: `genx draws values from the generators in this module:
  - pick/someof: sampling without replacement from a list of values
  - char/str: character class and string generators
  - uuid: version 4 UUIDs

Every run uses a seed, so any output can be reproduced with --seed.`,
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&a.opts.count, "count", "c", 5, "Number of samples to draw")
	flags.Int64Var(&a.opts.seed, "seed", 0, "Seed for reproducible output (0 picks a new one)")
	flags.IntVar(&a.opts.maxSize, "max-size", 0, "Upper bound on generated sizes (overrides config)")
	flags.StringVar(&a.opts.configPath, "config", "", "Path to a config file")
	flags.StringVarP(&a.opts.output, "output", "o", "table", "Output format: table, json, yaml")
	flags.StringVar(&a.opts.record, "record", "", "Store drawn samples in the corpus database at this path")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Enable debug logging")
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return a.completer.CompleteFormats(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		a.newPickCmd(),
		a.newSomeOfCmd(),
		a.newCharCmd(),
		a.newStrCmd(),
		a.newUUIDCmd(),
		a.newConfigCmd(),
		a.newCorpusCmd(),
		newCompletionCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// setup resolves logging, output format and the effective config before any
// subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.opts.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		a.logger = logger
	}

	format, err := cli.ParseFormat(a.opts.output)
	if err != nil {
		return err
	}
	a.format = format

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg = cfg.WithSeed(a.opts.seed)
	}
	if flags.Changed("max-size") {
		cfg = cfg.WithMaxSize(a.opts.maxSize)
	}
	if cfg.Seed == 0 {
		cfg = cfg.WithSeed(time.Now().UnixNano())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if a.opts.count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", a.opts.count)
	}

	a.cfg = cfg
	a.logger.Debug("resolved config",
		zap.Int64("seed", cfg.Seed),
		zap.Int("max_size", cfg.MaxSize),
		zap.String("format", string(format)),
	)
	return nil
}

// loadConfig reads --config if given, otherwise the default config file when present.
func (a *app) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if a.opts.configPath != "" {
		cfg, err = config.Load(config.ExpandPath(a.opts.configPath))
	} else {
		path, pathErr := config.DefaultPath()
		if pathErr != nil {
			return cfg, pathErr
		}
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return cfg, err
	}
	return cfg.ApplyEnv()
}

// draw takes --count values from g, records them if requested and renders them.
// args are the generator arguments a replay needs besides name.
func (a *app) draw(ctx context.Context, name string, args []string, g typed.Gen[any]) error {
	a.logger.Debug("drawing samples", zap.String("generator", name), zap.Int("count", a.opts.count))

	values, err := g.Take(a.cfg.GenParameters(), a.opts.count)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if a.opts.record != "" {
		if err := a.recordSamples(ctx, name, args, values); err != nil {
			return err
		}
	}

	return cli.NewRenderer(a.out, a.format).Samples(cli.SampleSet{
		Generator: name,
		Seed:      a.cfg.Seed,
		Values:    values,
	})
}

func (a *app) recordSamples(ctx context.Context, name string, args []string, values []any) error {
	store, err := a.openCorpus(a.opts.record)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	for i, v := range values {
		_, err := store.AddSample(ctx, corpus.Sample{
			Generator: name,
			Args:      args,
			Seed:      a.cfg.Seed,
			Index:     i,
			Value:     v,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *app) openCorpus(path string) (*corpus.Store, error) {
	return corpus.Open(config.ExpandPath(path), corpus.WithLogger(a.logger))
}

// newVersionCmd creates the version subcommand
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "genx %s (commit: %s, built: %s)\n", version, commit, date)
			return nil
		},
	}
}
