package harness

import (
	"fmt"
	"log/slog"

	"github.com/roach88/bits/internal/canon"
	"github.com/roach88/bits/internal/logging"
	"github.com/roach88/bits/internal/packet"
)

// Harness runs suites. The zero value is not usable; call New.
type Harness struct {
	logger   *slog.Logger
	maxDepth int
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger routes harness logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// WithMaxDepth sets the parser nesting limit used when a suite does not set
// its own.
func WithMaxDepth(depth int) Option {
	return func(h *Harness) { h.maxDepth = depth }
}

// New creates a Harness. Logs are discarded unless WithLogger is given.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger:   logging.Discard(),
		maxDepth: packet.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes every case in the suite and returns the aggregated result.
// A case that fails its expectations does not stop the suite.
func (h *Harness) Run(suite *Suite) *Result {
	maxDepth := h.maxDepth
	if suite.MaxDepth > 0 {
		maxDepth = suite.MaxDepth
	}
	h.logger.Info("running suite", "suite", suite.Name, "cases", len(suite.Cases), "max_depth", maxDepth)

	result := NewResult(suite.Name)
	for _, c := range suite.Cases {
		outcome := h.runCase(c, maxDepth)
		if outcome.Pass {
			h.logger.Debug("case passed", "suite", suite.Name, "case", c.Label())
		} else {
			h.logger.Warn("case failed", "suite", suite.Name, "case", c.Label(), "failures", len(outcome.Failures))
		}
		result.Add(outcome)
	}
	return result
}

// Run executes a suite with a default Harness.
func Run(suite *Suite) *Result {
	return New().Run(suite)
}

func (h *Harness) runCase(c Case, maxDepth int) CaseResult {
	observed := Observe(c.Hex, maxDepth)
	failures := Check(c, observed)
	return CaseResult{
		Name:     c.Label(),
		Hex:      c.Hex,
		Observed: observed,
		Failures: failures,
		Pass:     len(failures) == 0,
	}
}

// Observe decodes hex and records everything a case can assert on. Decode
// and evaluation errors are captured by code rather than returned.
func Observe(hex string, maxDepth int) Observation {
	p, res, err := packet.Solve(hex, packet.WithMaxDepth(maxDepth))
	if err != nil {
		return Observation{Error: string(packet.CodeOf(err)), Detail: err.Error()}
	}
	digest, err := canon.Digest(p)
	if err != nil {
		return Observation{Error: "DIGEST", Detail: fmt.Sprintf("digest: %v", err)}
	}
	sum := res.VersionSum
	return Observation{
		VersionSum: &sum,
		Value:      res.Value.String(),
		Digest:     digest,
		Stats:      packet.Summarize(p),
	}
}
