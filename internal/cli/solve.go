package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/bits/internal/canon"
	"github.com/roach88/bits/internal/packet"
)

// SolveOutput is the result of solving one input file.
type SolveOutput struct {
	VersionSum uint64  `json:"version_sum" yaml:"version_sum"`
	Value      string  `json:"value" yaml:"value"`
	ElapsedMS  float64 `json:"elapsed_ms" yaml:"elapsed_ms"`
	Digest     string  `json:"digest" yaml:"digest"`
}

func (o SolveOutput) String() string {
	return fmt.Sprintf("Part 1: %d\nPart 2: %s\nElapsed: %.3fms", o.VersionSum, o.Value, o.ElapsedMS)
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <input-file>",
		Short: "Print the version sum and value of a transmission file",
		Long: `Read a transmission from a file, decode it, and print the sum of
every packet version (part 1) and the value of the expression (part 2).
Surrounding whitespace is ignored. Use "-" to read standard input.

Examples:
  bits solve input.txt
  bits solve input.txt --format json
  cat input.txt | bits solve -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runSolve(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter, err := opts.formatter(cmd)
	if err != nil {
		return err
	}

	data, err := readFileArg(cmd, path)
	if err != nil {
		return inputError(formatter, err)
	}
	formatter.VerboseLog("Read %d byte(s) from %s", len(data), path)

	clock := opts.clock()
	start := clock.Now()

	p, err := decode(opts, strings.TrimSpace(string(data)))
	if err != nil {
		return decodeError(formatter, err)
	}
	value, err := packet.Eval(p)
	if err != nil {
		return evalError(formatter, err)
	}
	sum := packet.VersionSum(p)
	elapsed := clock.Now().Sub(start)

	digest, err := canon.Digest(p)
	if err != nil {
		return WrapExitError(ExitFailure, "digest failed", err)
	}

	opts.logger().Info("solved", "version_sum", sum, "elapsed", elapsed)
	return formatter.Success(SolveOutput{
		VersionSum: sum,
		Value:      value.String(),
		ElapsedMS:  float64(elapsed) / float64(time.Millisecond),
		Digest:     digest,
	})
}
