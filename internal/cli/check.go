package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bits/internal/harness"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Filter string // case name filter (glob pattern)
}

// CheckOutput holds the overall result of a check run.
type CheckOutput struct {
	Suites []*harness.Result `json:"suites" yaml:"suites"`
	Passed int               `json:"passed" yaml:"passed"`
	Failed int               `json:"failed" yaml:"failed"`
	Total  int               `json:"total" yaml:"total"`
}

func (o CheckOutput) String() string {
	var b strings.Builder
	for _, suite := range o.Suites {
		fmt.Fprintf(&b, "%s\n", suite.Suite)
		for _, c := range suite.Cases {
			if c.Pass {
				fmt.Fprintf(&b, "  ✓ %s\n", c.Name)
				continue
			}
			fmt.Fprintf(&b, "  ✗ %s\n", c.Name)
			for _, f := range c.Failures {
				fmt.Fprintf(&b, "      %s\n", f)
			}
			if c.Observed.Detail != "" {
				fmt.Fprintf(&b, "      (%s)\n", c.Observed.Detail)
			}
		}
	}
	fmt.Fprintf(&b, "\nCheck Summary: %d passed, %d failed, %d total", o.Passed, o.Failed, o.Total)
	if o.Failed == 0 {
		b.WriteString("\n✓ All cases passed")
	}
	return b.String()
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <case-file>...",
		Short: "Run conformance case files",
		Long: `Run YAML conformance case files against the decoder.

Each file names a suite of transmissions with their expected version sum,
value, digest or error code. Every case runs even when an earlier one fails.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (unreadable or invalid case file, etc.)

Examples:
  bits check testdata/cases/examples.yaml
  bits check cases/*.yaml --filter "truncated_*"
  bits check cases/errors.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run cases whose name matches this glob pattern")

	return cmd
}

func runCheck(opts *CheckOptions, paths []string, cmd *cobra.Command) error {
	formatter, err := opts.formatter(cmd)
	if err != nil {
		return err
	}
	if opts.Filter != "" {
		if _, err := filepath.Match(opts.Filter, ""); err != nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid filter pattern: %v", err))
		}
	}

	runner := harness.New(
		harness.WithLogger(opts.logger()),
		harness.WithMaxDepth(opts.MaxDepth),
	)

	output := CheckOutput{Suites: make([]*harness.Result, 0, len(paths))}
	for _, path := range paths {
		suite, err := harness.LoadSuite(path)
		if err != nil {
			_ = formatter.Error(ErrCodeSuite, fmt.Sprintf("%s: %v", path, err), nil)
			return reportedError(ExitCommandError, "cannot load case file "+path, err)
		}
		formatter.VerboseLog("Loaded %d case(s) from %s", len(suite.Cases), path)

		suite.Cases = filterCases(suite.Cases, opts.Filter)
		result := runner.Run(suite)
		output.Suites = append(output.Suites, result)
		output.Passed += result.Passed
		output.Failed += result.Failed
		output.Total += len(result.Cases)
	}

	if formatter.structured() {
		resp := CLIResponse{Status: "ok", Data: output}
		if output.Failed > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeChecks,
				Message: fmt.Sprintf("%d case(s) failed", output.Failed),
			}
		}
		if err := formatter.Respond(resp); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(formatter.Writer, output)
	}

	if output.Failed > 0 {
		// Case failures = exit code 1, already listed in the output
		return reportedError(ExitFailure, fmt.Sprintf("%d case(s) failed", output.Failed), nil)
	}
	return nil
}

// filterCases keeps the cases whose label matches pattern. An empty pattern
// keeps everything. The pattern was validated by the caller.
func filterCases(cases []harness.Case, pattern string) []harness.Case {
	if pattern == "" {
		return cases
	}
	kept := make([]harness.Case, 0, len(cases))
	for _, c := range cases {
		if ok, _ := filepath.Match(pattern, c.Label()); ok {
			kept = append(kept, c)
		}
	}
	return kept
}
