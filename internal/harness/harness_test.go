package harness

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bits/internal/logging"
	"github.com/roach88/bits/internal/packet"
	"github.com/roach88/bits/internal/testutil"
)

func TestRun_ExamplesPass(t *testing.T) {
	suite, err := LoadSuite("testdata/cases/examples.yaml")
	require.NoError(t, err)

	result := Run(suite)
	for _, c := range result.Cases {
		assert.Empty(t, c.Failures, c.Name)
	}
	assert.True(t, result.Pass)
	assert.Equal(t, len(suite.Cases), result.Passed)
	assert.Zero(t, result.Failed)
}

func TestRun_ErrorsPass(t *testing.T) {
	suite, err := LoadSuite("testdata/cases/errors.yaml")
	require.NoError(t, err)

	result := Run(suite)
	for _, c := range result.Cases {
		assert.Empty(t, c.Failures, c.Name)
		assert.NotEmpty(t, c.Observed.Error, c.Name)
		assert.NotEmpty(t, c.Observed.Detail, c.Name)
	}
	assert.True(t, result.Pass)
}

func TestRun_FailingCaseDoesNotStopSuite(t *testing.T) {
	suite := &Suite{
		Name:        "mixed",
		Description: "one wrong expectation",
		Cases: []Case{
			{Name: "wrong", Hex: "D2FE28", Value: "2020"},
			{Name: "right", Hex: "C200B40A82", Value: "3"},
		},
	}

	result := Run(suite)
	assert.False(t, result.Pass)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Cases, 2)
	assert.False(t, result.Cases[0].Pass)
	assert.True(t, result.Cases[1].Pass)
}

func TestRun_SuiteMaxDepthOverridesHarness(t *testing.T) {
	// 8A004A801A8002F478 nests four packets deep.
	shallow := &Suite{
		Name:        "shallow",
		Description: "depth limit below the tree",
		MaxDepth:    3,
		Cases:       []Case{{Hex: "8A004A801A8002F478", Error: "DEPTH_EXCEEDED"}},
	}
	result := New(WithMaxDepth(64)).Run(shallow)
	assert.True(t, result.Pass, "%+v", result.Cases)

	exact := &Suite{
		Name:        "exact",
		Description: "depth limit equal to the tree",
		MaxDepth:    4,
		Cases:       []Case{{Hex: "8A004A801A8002F478", VersionSum: u64(16)}},
	}
	assert.True(t, New().Run(exact).Pass)
}

func TestRun_HarnessMaxDepth(t *testing.T) {
	suite := &Suite{
		Name:        "harness_depth",
		Description: "limit comes from the harness",
		Cases:       []Case{{Hex: "8A004A801A8002F478", Error: "DEPTH_EXCEEDED"}},
	}
	assert.True(t, New(WithMaxDepth(2)).Run(suite).Pass)
}

func TestRun_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	h := New(WithLogger(logging.New(&buf, slog.LevelDebug, true)))

	h.Run(&Suite{
		Name:        "logged",
		Description: "log output",
		Cases: []Case{
			{Name: "good", Hex: "D2FE28", Value: "2021"},
			{Name: "bad", Hex: "D2FE28", Value: "1"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "running suite")
	assert.Contains(t, out, "case passed")
	assert.Contains(t, out, "case failed")
	assert.Contains(t, out, "case=bad")
}

func TestObserve(t *testing.T) {
	o := Observe("D2FE28", 0)
	require.Empty(t, o.Error)
	require.NotNil(t, o.VersionSum)
	assert.Equal(t, uint64(6), *o.VersionSum)
	assert.Equal(t, "2021", o.Value)
	assert.Equal(t, "2596784a56ccb9c6c4fb8d9d5829bc1862304d840295d61669c0b0610352bfe0", o.Digest)
	assert.Equal(t, 1, o.Stats.Packets)

	o = Observe("D2FE", 0)
	assert.Equal(t, "TRUNCATED_BITSTREAM", o.Error)
	assert.Nil(t, o.VersionSum)
}

func TestObserve_HandBuiltTransmissions(t *testing.T) {
	literal := func(b *testutil.BitString) *testutil.BitString {
		return b.Header(1, packet.LiteralTypeID).Raw("00011")
	}
	tests := []struct {
		name string
		bits *testutil.BitString
		want string
	}{
		{
			"count beyond children",
			literal(new(testutil.BitString).Header(0, uint64(packet.OpSum)).Field(1, 1).Field(3, packet.CountBits)),
			"TRUNCATED_BITSTREAM",
		},
		{
			"comparison with three children",
			literal(literal(literal(new(testutil.BitString).
				Header(0, uint64(packet.OpLessThan)).Field(1, 1).Field(3, packet.CountBits)))),
			"INVALID_OPERATOR_ARITY",
		},
		{
			"bit length beyond input",
			literal(new(testutil.BitString).Header(0, uint64(packet.OpMax)).Field(0, 1).Field(200, packet.BitLengthBits)),
			"TRUNCATED_BITSTREAM",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Observe(tt.bits.Hex(), 0)
			assert.Equal(t, tt.want, o.Error, o.Detail)
			assert.Nil(t, o.VersionSum)
		})
	}
}

func TestRun_HandBuiltTransmission(t *testing.T) {
	// product framed by count: 3 * 3
	three := func(b *testutil.BitString) *testutil.BitString {
		return b.Header(2, packet.LiteralTypeID).Raw("00011")
	}
	hex := three(three(new(testutil.BitString).
		Header(5, uint64(packet.OpProduct)).Field(1, 1).Field(2, packet.CountBits))).Hex()

	suite := &Suite{
		Name:        "built",
		Description: "transmission assembled field by field",
		Cases:       []Case{{Hex: hex, VersionSum: u64(9), Value: "9"}},
	}
	result := Run(suite)
	assert.True(t, result.Pass, "%+v", result.Cases)
}
