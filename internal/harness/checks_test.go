package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u64(v uint64) *uint64 { return &v }

func TestCheck_AllMatch(t *testing.T) {
	c := Case{Hex: "D2FE28", VersionSum: u64(6), Value: "2021", Digest: "ABCD"}
	o := Observation{VersionSum: u64(6), Value: "2021", Digest: "abcd"}
	assert.Empty(t, Check(c, o))
}

func TestCheck_OnlyComparesSetFields(t *testing.T) {
	c := Case{Hex: "D2FE28", Value: "2021"}
	o := Observation{VersionSum: u64(99), Value: "2021", Digest: "whatever"}
	assert.Empty(t, Check(c, o))
}

func TestCheck_ValueIgnoresLeadingZeros(t *testing.T) {
	c := Case{Hex: "x", Value: "007"}
	assert.Empty(t, Check(c, Observation{Value: "7"}))

	c = Case{Hex: "x", Value: "000"}
	assert.Empty(t, Check(c, Observation{Value: "0"}))
}

func TestCheck_ValueAcceptsSignPrefix(t *testing.T) {
	c := Case{Hex: "x", Value: "+2021"}
	assert.Empty(t, Check(c, Observation{Value: "2021"}))

	c = Case{Hex: "x", Value: "+0"}
	assert.Empty(t, Check(c, Observation{Value: "0"}))

	c = Case{Hex: "x", Value: "+2020"}
	assert.Len(t, Check(c, Observation{Value: "2021"}), 1)
}

func TestCheck_ValueMissingObservation(t *testing.T) {
	c := Case{Hex: "x", Value: "0"}
	failures := Check(c, Observation{})
	require.Len(t, failures, 1)
	assert.Equal(t, "value", failures[0].Field)
}

func TestRun_SignedValueCasePasses(t *testing.T) {
	suite, err := ParseSuite([]byte(`
name: signed
description: explicit plus sign on an expected value
cases:
  - name: literal
    hex: D2FE28
    value: "+2021"
`))
	require.NoError(t, err)

	result := Run(suite)
	assert.True(t, result.Pass, "%+v", result.Cases)
}

func TestCheck_Mismatches(t *testing.T) {
	c := Case{Hex: "x", VersionSum: u64(6), Value: "2021"}
	o := Observation{VersionSum: u64(7), Value: "2020"}

	failures := Check(c, o)
	require.Len(t, failures, 2)
	assert.Equal(t, Failure{Field: "version_sum", Expected: "6", Actual: "7"}, failures[0])
	assert.Equal(t, Failure{Field: "value", Expected: "2021", Actual: "2020"}, failures[1])
}

func TestCheck_ExpectedErrorMissing(t *testing.T) {
	c := Case{Hex: "D2FE28", Error: "TRUNCATED_BITSTREAM"}
	failures := Check(c, Observation{VersionSum: u64(6), Value: "2021"})
	require.Len(t, failures, 1)
	assert.Equal(t, "none", failures[0].Actual)
}

func TestCheck_WrongErrorCode(t *testing.T) {
	c := Case{Hex: "D2FG", Error: "TRUNCATED_BITSTREAM"}
	failures := Check(c, Observation{Error: "MALFORMED_HEX"})
	require.Len(t, failures, 1)
	assert.Equal(t, "MALFORMED_HEX", failures[0].Actual)
}

func TestCheck_UnexpectedError(t *testing.T) {
	c := Case{Hex: "D2FE", Value: "2021"}
	failures := Check(c, Observation{Error: "TRUNCATED_BITSTREAM"})
	require.Len(t, failures, 1)
	assert.Equal(t, Failure{Field: "error", Expected: "none", Actual: "TRUNCATED_BITSTREAM"}, failures[0])
}

func TestCheckCase_ErrorFormat(t *testing.T) {
	c := Case{Name: "literal", Hex: "D2FE28", Value: "1"}
	err := CheckCase(c, Observation{Value: "2021"})
	require.Error(t, err)

	var checkErr *CheckError
	require.ErrorAs(t, err, &checkErr)
	assert.Equal(t, "literal", checkErr.Case)
	assert.Equal(t, "case literal failed:\n  value: expected 1, got 2021", err.Error())

	assert.NoError(t, CheckCase(c, Observation{Value: "1"}))
}
