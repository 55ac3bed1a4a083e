package cli

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/bits/internal/config"
	"github.com/roach88/bits/internal/logging"
)

// RootOptions holds global flags for all commands. After PersistentPreRunE
// the fields reflect the merged config file, environment and flags.
type RootOptions struct {
	Verbose  bool
	Format   string // "text" | "json" | "yaml"
	Config   string // explicit config path; empty probes config.DefaultFiles
	MaxDepth int

	// Logger receives diagnostics on stderr. Nil means discard.
	Logger *slog.Logger

	// Clock and IDs are replaced in tests for deterministic output.
	Clock Clock
	IDs   RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the bits CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bits",
		Short: "bits - BITS transmission decoder",
		Long:  "Decode, evaluate, encode and check hexadecimal BITS packet transmissions.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd, os.Getenv)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (.cue, .yaml or .json)")
	cmd.PersistentFlags().IntVar(&opts.MaxDepth, "max-depth", 0, "maximum packet nesting depth (default from config, 256)")

	// Add subcommands
	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewSumCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// resolve merges the config file, environment and explicitly set flags,
// then builds the logger. Flags win over env, env over the file.
func (o *RootOptions) resolve(cmd *cobra.Command, getenv func(string) string) error {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	cfg, err := config.Load(o.Config, dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if err := config.ApplyEnv(&cfg, getenv); err != nil {
		return WrapExitError(ExitCommandError, "invalid environment", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.Format
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = o.MaxDepth
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	o.Format = cfg.Format
	o.MaxDepth = cfg.MaxDepth
	o.Logger = logging.New(cmd.ErrOrStderr(), level, cfg.NoColor)
	o.Logger.Debug("configuration resolved",
		"format", cfg.Format,
		"max_depth", cfg.MaxDepth,
		"log_level", cfg.LogLevel,
		"config", o.Config,
	)
	return nil
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.Discard()
	}
	return o.Logger
}

func (o *RootOptions) clock() Clock {
	if o.Clock == nil {
		return SystemClock{}
	}
	return o.Clock
}

func (o *RootOptions) formatter(cmd *cobra.Command) (*OutputFormatter, error) {
	if err := checkFormat(o.Format); err != nil {
		return nil, err
	}
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
		IDs:       o.IDs,
	}, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func checkFormat(format string) error {
	if !isValidFormat(format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", format, ValidFormats))
	}
	return nil
}
