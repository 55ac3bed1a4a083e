package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bits/internal/canon"
	"github.com/roach88/bits/internal/packet"
)

// DecodeOutput describes a decoded transmission in full.
type DecodeOutput struct {
	Tree       canon.Node   `json:"tree" yaml:"tree"`
	Digest     string       `json:"digest" yaml:"digest"`
	VersionSum uint64       `json:"version_sum" yaml:"version_sum"`
	Value      string       `json:"value" yaml:"value"`
	Stats      packet.Stats `json:"stats" yaml:"stats"`

	packet *packet.Packet
}

func (o DecodeOutput) String() string {
	var b strings.Builder
	if o.packet != nil {
		_ = packet.Render(&b, o.packet)
	}
	fmt.Fprintf(&b, "digest:      %s\n", o.Digest)
	fmt.Fprintf(&b, "version sum: %d\n", o.VersionSum)
	fmt.Fprintf(&b, "value:       %s\n", o.Value)
	fmt.Fprintf(&b, "packets:     %d (%d literal, %d operator, depth %d)",
		o.Stats.Packets, o.Stats.Literals, o.Stats.Operators, o.Stats.MaxDepth)
	return b.String()
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex|->",
		Short: "Print the packet tree of a transmission",
		Long: `Decode a transmission and print its packet tree together with its
canonical digest, version sum and value.

Text output renders one packet per line, indented by depth. JSON and YAML
output emit the tree in the same shape "bits encode" accepts, so a decoded
tree can be edited and re-encoded.

Examples:
  bits decode 9C0141080250320F1802104A08
  bits decode EE00D40C823060 --format yaml > tree.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, args[0], cmd)
		},
	}
}

func runDecode(opts *RootOptions, arg string, cmd *cobra.Command) error {
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
	digest, err := canon.Digest(p)
	if err != nil {
		return WrapExitError(ExitFailure, "digest failed", err)
	}

	return formatter.Success(DecodeOutput{
		Tree:       canon.ToNode(p),
		Digest:     digest,
		VersionSum: packet.VersionSum(p),
		Value:      value.String(),
		Stats:      packet.Summarize(p),
		packet:     p,
	})
}
