package harness

import "github.com/roach88/bits/internal/packet"

// Observation is what decoding one transmission produced.
// Either Error is set or the remaining fields are.
type Observation struct {
	VersionSum *uint64      `json:"version_sum,omitempty" yaml:"version_sum,omitempty"`
	Value      string       `json:"value,omitempty" yaml:"value,omitempty"`
	Digest     string       `json:"digest,omitempty" yaml:"digest,omitempty"`
	Stats      packet.Stats `json:"stats" yaml:"stats"`
	Error      string       `json:"error,omitempty" yaml:"error,omitempty"`
	Detail     string       `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name     string      `json:"name" yaml:"name"`
	Hex      string      `json:"hex" yaml:"hex"`
	Pass     bool        `json:"pass" yaml:"pass"`
	Observed Observation `json:"observed" yaml:"observed"`
	Failures []Failure   `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Result aggregates a suite run.
type Result struct {
	Suite  string       `json:"suite" yaml:"suite"`
	Pass   bool         `json:"pass" yaml:"pass"`
	Passed int          `json:"passed" yaml:"passed"`
	Failed int          `json:"failed" yaml:"failed"`
	Cases  []CaseResult `json:"cases" yaml:"cases"`
}

// NewResult creates an empty passing result for the named suite.
func NewResult(suite string) *Result {
	return &Result{Suite: suite, Pass: true, Cases: []CaseResult{}}
}

// Add records a case outcome, marking the suite failed if the case failed.
func (r *Result) Add(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if c.Pass {
		r.Passed++
		return
	}
	r.Failed++
	r.Pass = false
}
