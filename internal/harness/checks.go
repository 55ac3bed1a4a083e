package harness

import (
	"fmt"
	"math/big"
	"strings"
)

// Failure describes one unmet expectation.
type Failure struct {
	Field    string `json:"field" yaml:"field"`
	Expected string `json:"expected" yaml:"expected"`
	Actual   string `json:"actual" yaml:"actual"`
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", f.Field, f.Expected, f.Actual)
}

// CheckError wraps the failures of one case as an error.
type CheckError struct {
	Case     string
	Failures []Failure
}

func (e *CheckError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "case %s failed:", e.Case)
	for _, f := range e.Failures {
		fmt.Fprintf(&buf, "\n  %s", f)
	}
	return buf.String()
}

// Check compares an observation against a case's expectations. Only the
// fields the case sets are compared.
func Check(c Case, o Observation) []Failure {
	var failures []Failure

	if c.Error != "" {
		if o.Error != c.Error {
			failures = append(failures, Failure{Field: "error", Expected: c.Error, Actual: describeError(o)})
		}
		return failures
	}
	if o.Error != "" {
		return append(failures, Failure{Field: "error", Expected: "none", Actual: describeError(o)})
	}

	if c.VersionSum != nil && (o.VersionSum == nil || *o.VersionSum != *c.VersionSum) {
		actual := "none"
		if o.VersionSum != nil {
			actual = fmt.Sprintf("%d", *o.VersionSum)
		}
		failures = append(failures, Failure{Field: "version_sum", Expected: fmt.Sprintf("%d", *c.VersionSum), Actual: actual})
	}
	if c.Value != "" && !sameDecimal(c.Value, o.Value) {
		failures = append(failures, Failure{Field: "value", Expected: c.Value, Actual: o.Value})
	}
	if c.Digest != "" && !strings.EqualFold(c.Digest, o.Digest) {
		failures = append(failures, Failure{Field: "digest", Expected: c.Digest, Actual: o.Digest})
	}
	return failures
}

// CheckCase runs Check and folds the failures into a *CheckError.
func CheckCase(c Case, o Observation) error {
	if failures := Check(c, o); len(failures) > 0 {
		return &CheckError{Case: c.Label(), Failures: failures}
	}
	return nil
}

func describeError(o Observation) string {
	if o.Error == "" {
		return "none"
	}
	return o.Error
}

// sameDecimal reports whether two decimal strings denote the same integer,
// so "007" and "+7" both match "7".
func sameDecimal(expected, actual string) bool {
	want, ok := new(big.Int).SetString(expected, 10)
	if !ok {
		return false
	}
	got, ok := new(big.Int).SetString(actual, 10)
	if !ok {
		return false
	}
	return want.Cmp(got) == 0
}
