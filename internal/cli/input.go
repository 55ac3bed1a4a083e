package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bits/internal/packet"
)

// stdinArg is the argument that reads from standard input.
const stdinArg = "-"

// readHexArg returns the transmission named by arg: the literal hex text, or
// standard input when arg is "-".
func readHexArg(cmd *cobra.Command, arg string) (string, error) {
	if arg != stdinArg {
		return arg, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// readFileArg returns the contents of the file at path, or standard input
// when path is "-".
func readFileArg(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// inputError reports an unreadable input (exit code 2).
func inputError(f *OutputFormatter, err error) error {
	_ = f.Error(ErrCodeInput, err.Error(), nil)
	return reportedError(ExitCommandError, "cannot read input", err)
}

// decodeError reports a transmission the decoder rejected. Packet error
// codes pass through unchanged so scripts can match on them.
func decodeError(f *OutputFormatter, err error) error {
	var perr *packet.Error
	if errors.As(err, &perr) {
		var details interface{}
		if perr.Offset >= 0 {
			details = map[string]int{"offset": perr.Offset}
		}
		_ = f.Error(string(perr.Code), perr.Msg, details)
		return reportedError(ExitCommandError, "cannot decode transmission", err)
	}
	_ = f.Error(ErrCodeInput, err.Error(), nil)
	return reportedError(ExitCommandError, "cannot decode transmission", err)
}

// evalError reports a tree that decoded but could not be evaluated (exit
// code 1).
func evalError(f *OutputFormatter, err error) error {
	_ = f.Error(ErrCodeEvalFailed, err.Error(), nil)
	return reportedError(ExitFailure, "evaluation failed", err)
}

// decode parses hex with the configured depth limit, logging the outcome.
func decode(opts *RootOptions, hex string) (*packet.Packet, error) {
	log := opts.logger()
	hex = strings.TrimSpace(hex)
	log.Debug("decoding transmission", "hex_digits", len(hex), "max_depth", opts.MaxDepth)

	p, err := packet.Decode(hex, packet.WithMaxDepth(opts.MaxDepth))
	if err != nil {
		log.Debug("decode failed", "code", packet.CodeOf(err), "error", err)
		return nil, err
	}
	stats := packet.Summarize(p)
	log.Debug("decoded", "packets", stats.Packets, "max_depth", stats.MaxDepth)
	return p, nil
}
