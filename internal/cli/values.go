package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/bits/internal/packet"
)

// SumOutput is the version sum of a transmission.
type SumOutput struct {
	VersionSum uint64 `json:"version_sum" yaml:"version_sum"`
}

func (o SumOutput) String() string { return fmt.Sprintf("%d", o.VersionSum) }

// EvalOutput is the value of a transmission. Value is decimal text so it
// is exact at any width.
type EvalOutput struct {
	Value string `json:"value" yaml:"value"`
}

func (o EvalOutput) String() string { return o.Value }

// NewSumCommand creates the sum command.
func NewSumCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sum <hex|->",
		Short: "Print the sum of every packet version",
		Long: `Decode a transmission and print the sum of the version numbers of
every packet in it. Use "-" to read the hex from standard input.

Examples:
  bits sum 8A004A801A8002F478
  echo 8A004A801A8002F478 | bits sum -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSum(rootOpts, args[0], cmd)
		},
	}
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <hex|->",
		Short: "Print the value of the expression a transmission encodes",
		Long: `Decode a transmission and evaluate it as an expression tree.
Values are arbitrary precision. Use "-" to read the hex from standard input.

Examples:
  bits eval 9C0141080250320F1802104A08
  bits eval C200B40A82 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args[0], cmd)
		},
	}
}

func runSum(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter, err := opts.formatter(cmd)
	if err != nil {
		return err
	}
	hex, err := readHexArg(cmd, arg)
	if err != nil {
		return inputError(formatter, err)
	}
	p, err := decode(opts, hex)
	if err != nil {
		return decodeError(formatter, err)
	}
	return formatter.Success(SumOutput{VersionSum: packet.VersionSum(p)})
}

func runEval(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter, err := opts.formatter(cmd)
	if err != nil {
		return err
	}
	hex, err := readHexArg(cmd, arg)
	if err != nil {
		return inputError(formatter, err)
	}
	p, err := decode(opts, hex)
	if err != nil {
		return decodeError(formatter, err)
	}
	value, err := packet.Eval(p)
	if err != nil {
		return evalError(formatter, err)
	}
	return formatter.Success(EvalOutput{Value: value.String()})
}
