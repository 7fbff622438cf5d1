package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points configuration at a fresh file so neither the working
// directory nor the user's config dir leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	for _, name := range []string{
		"FLASHDECK_STORAGE_PATH",
		"FLASHDECK_STORAGE_KEY",
		"FLASHDECK_STORAGE_EPHEMERAL",
		"FLASHDECK_LOG_LEVEL",
		"FLASHDECK_LOG_FILE",
		"FLASHDECK_STUDY_ADVANCE_DELAY",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "flashdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))
	return path
}

// execute runs the command tree and returns what it wrote.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "flashdeck", cmd.Use)
	assert.Contains(t, cmd.Long, "flashcards")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"study", "groups", "export"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "Command %s should exist", name)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	for name, def := range map[string]string{
		"config":    "",
		"db":        "",
		"ephemeral": "false",
		"log-level": "",
	} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, def, flag.DefValue, name)
	}
}

func TestFormatFlags(t *testing.T) {
	cmd := NewRootCommand()

	groups, _, err := cmd.Find([]string{"groups"})
	require.NoError(t, err)
	assert.Equal(t, "text", groups.Flags().Lookup("format").DefValue)

	export, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)
	assert.Equal(t, "json", export.Flags().Lookup("format").DefValue)
}

func TestInvalidFormat(t *testing.T) {
	cfg := isolate(t)

	_, _, err := execute(t, "--config", cfg, "--ephemeral", "export", "--format", "text")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "text"`)
}

func TestBadConfigFile(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "groups")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBadLogLevelFlag(t *testing.T) {
	cfg := isolate(t)

	_, _, err := execute(t, "--config", cfg, "--ephemeral", "--log-level", "loud", "groups")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLogFile(t *testing.T) {
	cfg := isolate(t)
	logPath := filepath.Join(t.TempDir(), "logs", "flashdeck.log")
	t.Setenv("FLASHDECK_LOG_FILE", logPath)

	_, stderr, err := execute(t, "--config", cfg, "--ephemeral", "--log-level", "debug", "groups")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "deck opened")
	// the seed fallback is logged through the command-scoped logger
	assert.Contains(t, string(data), `"command":"groups"`)
	assert.Contains(t, string(data), "no persisted state, using seed data")
}
