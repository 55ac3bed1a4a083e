package harness

import (
	"math/big"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/bits/internal/canon"
)

// Snapshot converts a result into canonical form for golden comparison.
// Error details and pass flags are left out so a golden file records only
// what decoding produced.
func Snapshot(result *Result) canon.Object {
	cases := make(canon.Array, len(result.Cases))
	for i, c := range result.Cases {
		cases[i] = snapshotCase(c)
	}
	return canon.Object{
		"suite": canon.String(result.Suite),
		"cases": cases,
	}
}

func snapshotCase(c CaseResult) canon.Object {
	obj := canon.Object{
		"name": canon.String(c.Name),
		"hex":  canon.String(c.Hex),
	}
	o := c.Observed
	if o.Error != "" {
		obj["error"] = canon.String(o.Error)
		return obj
	}
	if o.VersionSum != nil {
		obj["version_sum"] = canon.Int{Int: new(big.Int).SetUint64(*o.VersionSum)}
	}
	if v, ok := new(big.Int).SetString(o.Value, 10); ok {
		obj["value"] = canon.Int{Int: v}
	}
	obj["digest"] = canon.String(o.Digest)
	obj["stats"] = canon.Object{
		"packets":   canon.NewInt(int64(o.Stats.Packets)),
		"literals":  canon.NewInt(int64(o.Stats.Literals)),
		"operators": canon.NewInt(int64(o.Stats.Operators)),
		"max_depth": canon.NewInt(int64(o.Stats.MaxDepth)),
	}
	return obj
}

// RunWithGolden runs a suite and compares its canonical snapshot against
// testdata/golden/{suite.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, h *Harness, suite *Suite) (*Result, error) {
	t.Helper()

	result := h.Run(suite)
	if err := AssertGolden(t, suite.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the suite.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := canon.Marshal(Snapshot(result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
