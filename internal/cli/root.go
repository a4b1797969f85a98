// SPDX-License-Identifier: MIT

// Package cli implements the molgeom command tree.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/molgeom/internal/config"
	"github.com/katalvlaran/molgeom/logging"
	"github.com/katalvlaran/molgeom/structio"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// errNoContext indicates a subcommand run without the root pre-run.
var errNoContext = errors.New("cli: command context not initialised")

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
}

// CLIContext carries initialised dependencies through the command tree.
type CLIContext struct {
	Config *config.Config
	Logger logging.Logger
	Format structio.Format
}

// flagKeys maps flag names onto configuration keys. A flag set on the
// command line overrides environment and file values.
var flagKeys = map[string]string{
	"log-level":          "log.level",
	"output":             "output.format",
	"cutoff":             "neighbors.cutoff",
	"self-loops":         "neighbors.self_loops",
	"sort":               "neighbors.sort",
	"unbounded":          "neighbors.unbounded",
	"wrap":               "neighbors.wrap",
	"max-neighbors":      "neighbors.max_neighbors",
	"dim":                "mds.dim",
	"center":             "mds.center",
	"strict":             "mds.strict",
	"unit-conversion":    "coulomb.unit_conversion",
	"edge-cutoff":        "coulomb.edge_cutoff",
	"correct-reflection": "align.correct_reflection",
	"folds":              "kfold.folds",
	"shuffle":            "kfold.shuffle",
	"seed":               "kfold.seed",
}

// NewRootCommand creates the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "molgeom",
		Short: "Geometric preprocessing for molecular and crystal graphs",
		Long: "molgeom builds the geometric features graph neural networks consume:\n" +
			"periodic neighbour lists, coordinates from distance matrices, decoded\n" +
			"Coulomb matrices, rigid alignments and cross-validation folds.",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (YAML)")
	pf.StringVar(&opts.LogLevel, "log-level", d.Log.Level, "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", d.Output.Format, "output format (yaml, json)")

	cmd.AddCommand(
		newNeighborsCmd(),
		newMDSCmd(),
		newCoulombCmd(),
		newAlignCmd(),
		newPrincipalCmd(),
		newRotateCmd(),
		newKFoldCmd(),
	)

	return cmd
}

// persistentPreRun resolves configuration (flags > env > file > defaults),
// builds the logger and stores the CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	v := config.New()
	if opts.ConfigPath != "" {
		v.SetConfigFile(opts.ConfigPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: failed to read config file %q: %w", opts.ConfigPath, err)
		}
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}
	format, err := structio.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	cliCtx := &CLIContext{Config: cfg, Logger: logger, Format: format}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))

	return nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}

	return nil
}

// GetCLIContext extracts the CLIContext stored by the root pre-run.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errNoContext
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errNoContext
	}

	return cliCtx, nil
}

// Execute runs the command tree.
func Execute() error {
	return NewRootCommand().Execute()
}

// printResult writes v to stdout in the configured format.
func printResult(cmd *cobra.Command, v any) error {
	format := structio.FormatYAML
	if cliCtx, err := GetCLIContext(cmd); err == nil {
		format = cliCtx.Format
	}

	return structio.Encode(cmd.OutOrStdout(), v, format)
}
