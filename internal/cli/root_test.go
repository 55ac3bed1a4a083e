package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bits/internal/testutil"
)

// clearEnv keeps the caller's BITS_* variables out of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BITS_LOG_LEVEL", "")
	t.Setenv("BITS_NO_COLOR", "")
	t.Setenv("BITS_MAX_DEPTH", "")
}

// execute runs the full command tree with deterministic ids and clock.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)

	opts := &RootOptions{
		Clock: testutil.NewStepClock(time.Unix(0, 0), 1500*time.Microsecond),
		IDs:   testutil.NewFixedRunIDGenerator("run-1"),
	}
	cmd := newRootCommand(opts)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "bits", cmd.Use)
	assert.Contains(t, cmd.Long, "BITS")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"solve", "sum", "eval", "decode", "encode", "check"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("max-depth"))
}

func TestCheckCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	checkCmd, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	filterFlag := checkCmd.Flags().Lookup("filter")
	require.NotNil(t, filterFlag)
	assert.Equal(t, "", filterFlag.DefValue)
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "", "sum", "D2FE28", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRoot_ConfigFileSetsFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0644))

	stdout, _, err := execute(t, "", "sum", "D2FE28", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"version_sum":6`)
}

func TestRoot_FlagOverridesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bits.cue")
	require.NoError(t, os.WriteFile(path, []byte("format: \"json\"\n"), 0644))

	stdout, _, err := execute(t, "", "sum", "D2FE28", "--config", path, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "6\n", stdout)
}

func TestRoot_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 0\n"), 0644))

	_, _, err := execute(t, "", "sum", "D2FE28", "--config", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRoot_MaxDepthFlag(t *testing.T) {
	// 8A004A801A8002F478 nests four packets deep.
	_, _, err := execute(t, "", "sum", "8A004A801A8002F478", "--max-depth", "3")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	stdout, _, err := execute(t, "", "sum", "8A004A801A8002F478", "--max-depth", "4")
	require.NoError(t, err)
	assert.Equal(t, "16\n", stdout)
}

func TestRoot_MaxDepthOutOfRange(t *testing.T) {
	_, _, err := execute(t, "", "sum", "D2FE28", "--max-depth", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "", "sum", "D2FE28", "-v")
	require.NoError(t, err)
	assert.Equal(t, "6\n", stdout)
	assert.Contains(t, stderr, "decoding transmission")
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bits.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_depth": 10}`), 0644))

	opts := &RootOptions{Config: path}
	cmd := newRootCommand(opts)
	cmd.SetErr(&bytes.Buffer{})

	env := map[string]string{"BITS_MAX_DEPTH": "20"}
	require.NoError(t, opts.resolve(cmd, func(k string) string { return env[k] }))
	assert.Equal(t, 20, opts.MaxDepth)
	assert.Equal(t, "text", opts.Format)
	assert.NotNil(t, opts.Logger)
}

func TestResolve_BadEnv(t *testing.T) {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)

	env := map[string]string{"BITS_NO_COLOR": "sometimes"}
	err := opts.resolve(cmd, func(k string) string { return env[k] })
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
