package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Golden files are regenerated with:
//
//	go test ./internal/harness -run Golden -update
func TestRunWithGolden_Examples(t *testing.T) {
	suite, err := LoadSuite("testdata/cases/examples.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, New(), suite)
	require.NoError(t, err)
	require.True(t, result.Pass)
}

func TestRunWithGolden_Errors(t *testing.T) {
	suite, err := LoadSuite("testdata/cases/errors.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, New(), suite)
	require.NoError(t, err)
	require.True(t, result.Pass)
}

func TestAssertGolden_ReusesResult(t *testing.T) {
	suite, err := LoadSuite("testdata/cases/examples.yaml")
	require.NoError(t, err)

	result := Run(suite)
	require.NoError(t, AssertGolden(t, "examples", result))
}
