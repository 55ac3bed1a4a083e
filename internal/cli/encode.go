package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/bits/internal/canon"
	"github.com/roach88/bits/internal/packet"
)

// EncodeOutput is the transmission produced from a tree.
type EncodeOutput struct {
	Hex  string `json:"hex" yaml:"hex"`
	Bits int    `json:"bits" yaml:"bits"`
}

func (o EncodeOutput) String() string { return o.Hex }

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <tree.yaml|->",
		Short: "Encode a packet tree as a hex transmission",
		Long: `Read a packet tree in YAML (or JSON, which is valid YAML) and print
the hexadecimal transmission that encodes it. The tree uses the shape that
"bits decode --format yaml" prints under "tree":

  version: 6
  op: sum              # or product, min, max, greater_than, less_than, equal, literal
  length_type: bits    # or packets; defaults to bits
  children:
    - version: 1
      op: literal
      value: "2021"

Examples:
  bits encode tree.yaml
  bits decode C200B40A82 --format json | jq .data.tree | bits encode -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(rootOpts, args[0], cmd)
		},
	}
}

func runEncode(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter, err := opts.formatter(cmd)
	if err != nil {
		return err
	}
	data, err := readFileArg(cmd, path)
	if err != nil {
		return inputError(formatter, err)
	}

	p, err := parseTree(data)
	if err != nil {
		_ = formatter.Error(ErrCodeTree, err.Error(), nil)
		return reportedError(ExitCommandError, "invalid tree", err)
	}

	bits, err := packet.Encode(p)
	if err != nil {
		code := string(packet.CodeOf(err))
		if code == "" {
			code = ErrCodeEncodeFailed
		}
		_ = formatter.Error(code, err.Error(), nil)
		return reportedError(ExitCommandError, "cannot encode tree", err)
	}

	opts.logger().Debug("encoded tree", "bits", len(bits))
	return formatter.Success(EncodeOutput{Hex: packet.EncodeHex(bits), Bits: len(bits)})
}

// parseTree reads one Node document. Unknown fields are rejected so a
// misspelt key does not silently drop part of the tree.
func parseTree(data []byte) (*packet.Packet, error) {
	var node canon.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty tree")
		}
		return nil, fmt.Errorf("failed to parse tree: %w", err)
	}
	return node.Packet()
}
