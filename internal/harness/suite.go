package harness

import (
	"bytes"
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bits/internal/packet"
)

// Suite is a named group of conformance cases loaded from one YAML file.
type Suite struct {
	// Name uniquely identifies this suite; it also names its golden file.
	Name string `yaml:"name"`

	// Description explains what the suite covers.
	Description string `yaml:"description"`

	// MaxDepth overrides the parser's nesting limit for every case.
	// Zero keeps the runner's default.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Cases are run in file order.
	Cases []Case `yaml:"cases"`
}

// Case is one transmission and what decoding it must produce.
// Every field other than Hex and Name is an optional expectation, but at
// least one must be set. Error excludes the others.
type Case struct {
	// Name labels the case in reports. Defaults to the hex string.
	Name string `yaml:"name,omitempty"`

	// Hex is the transmission text.
	Hex string `yaml:"hex"`

	// VersionSum is the expected sum of every packet version.
	VersionSum *uint64 `yaml:"version_sum,omitempty"`

	// Value is the expected evaluation result as a decimal string.
	Value string `yaml:"value,omitempty"`

	// Digest is the expected canonical digest of the decoded tree.
	Digest string `yaml:"digest,omitempty"`

	// Error is the expected error code, e.g. TRUNCATED_BITSTREAM.
	Error string `yaml:"error,omitempty"`
}

// Label returns the case's display name.
func (c Case) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Hex
}

var knownErrorCodes = map[string]bool{
	string(packet.ErrCodeMalformedHex):  true,
	string(packet.ErrCodeTruncated):     true,
	string(packet.ErrCodeInvalidArity):  true,
	string(packet.ErrCodeDepthExceeded): true,
	string(packet.ErrCodeFieldOverflow): true,
}

// LoadSuite reads and parses a suite YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return ParseSuite(data)
}

// ParseSuite parses suite YAML from memory with the same strictness as
// LoadSuite.
func ParseSuite(data []byte) (*Suite, error) {
	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "version_summ:" and friends
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &suite, nil
}

func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}
	for i, c := range s.Cases {
		if err := validateCase(i, c); err != nil {
			return err
		}
	}
	return nil
}

func validateCase(index int, c Case) error {
	if c.Hex == "" {
		return fmt.Errorf("cases[%d]: hex is required", index)
	}
	hasValueExpectation := c.VersionSum != nil || c.Value != "" || c.Digest != ""
	switch {
	case c.Error != "" && hasValueExpectation:
		return fmt.Errorf("cases[%d]: error cannot be combined with version_sum, value or digest", index)
	case c.Error == "" && !hasValueExpectation:
		return fmt.Errorf("cases[%d]: at least one of version_sum, value, digest or error is required", index)
	}
	if c.Error != "" && !knownErrorCodes[c.Error] {
		return fmt.Errorf("cases[%d]: unknown error code %q", index, c.Error)
	}
	if c.Value != "" {
		if _, ok := new(big.Int).SetString(c.Value, 10); !ok {
			return fmt.Errorf("cases[%d]: value %q is not a decimal integer", index, c.Value)
		}
	}
	if c.Digest != "" && len(c.Digest) != 64 {
		return fmt.Errorf("cases[%d]: digest must be 64 hex characters", index)
	}
	return nil
}
