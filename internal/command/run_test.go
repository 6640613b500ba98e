package command

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeycumines/btagent/internal/config"
	"github.com/joeycumines/btagent/internal/tree"
	"github.com/stretchr/testify/require"
)

// isolateEnv clears every BTAGENT_ variable the run command resolves.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BTAGENT_COLOR", "BTAGENT_LOG_LEVEL", "BTAGENT_LOG_FILE", "BTAGENT_TRACE_FILE", "NO_COLOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func runCommand(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRunCommand(cfg)
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.SetupFlags(fs)
	require.NoError(t, fs.Parse(args))

	var stdout, stderr bytes.Buffer
	err := cmd.Execute(context.Background(), fs.Args(), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCommand_DefaultScenario(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := runCommand(t, nil, "-color", "never", "-log-level", "error")
	require.NoError(t, err)
	require.Equal(t, "Action: Attaquer\n"+
		"Action: Patrouiller\n"+
		"Message: Coucou\n"+
		"Tick 1 result: SUCCESS\n"+
		"Tick 2 result: SUCCESS\n", stdout)
}

func TestRunCommand_Quiet(t *testing.T) {
	isolateEnv(t)

	t.Run("flag", func(t *testing.T) {
		stdout, _, err := runCommand(t, nil, "-quiet", "-color", "never")
		require.NoError(t, err)
		require.Equal(t, "Tick 1 result: SUCCESS\nTick 2 result: SUCCESS\n", stdout)
	})

	t.Run("config", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.SetCommandOption("run", "quiet", "yes")
		stdout, _, err := runCommand(t, cfg, "-color", "never")
		require.NoError(t, err)
		require.NotContains(t, stdout, "Action:")
	})

	t.Run("flag overrides config", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.SetGlobalOption("quiet", "true")
		stdout, _, err := runCommand(t, cfg, "-quiet=false", "-color", "never")
		require.NoError(t, err)
		require.Contains(t, stdout, "Action: Attaquer\n")
	})
}

func TestRunCommand_ScenarioFile(t *testing.T) {
	isolateEnv(t)

	path := writeScenario(t, `
name: lost
blackboard:
  PlayerDetected: 0
ticks:
  - expect: success
  - expect: success
`)

	t.Run("flag", func(t *testing.T) {
		stdout, _, err := runCommand(t, nil, "-scenario", path, "-color", "never")
		require.NoError(t, err)
		require.Equal(t, "Tick 1 result: SUCCESS\nTick 2 result: SUCCESS\n", stdout)
	})

	t.Run("config", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.SetCommandOption("run", "scenario", path)
		stdout, _, err := runCommand(t, cfg, "-color", "never")
		require.NoError(t, err)
		require.NotContains(t, stdout, "Action:")
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := runCommand(t, nil, "-scenario", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestRunCommand_UnexpectedState(t *testing.T) {
	isolateEnv(t)

	path := writeScenario(t, `
ticks:
  - expect: failure
`)
	stdout, stderr, err := runCommand(t, nil, "-scenario", path, "-color", "never")
	require.Error(t, err)
	require.True(t, errors.Is(err, tree.ErrUnexpectedState))
	require.Contains(t, stderr, "Scenario failed:")
	require.Contains(t, stdout, "Tick 1 result: SUCCESS\n")
}

func TestRunCommand_InvalidOptions(t *testing.T) {
	isolateEnv(t)

	for _, tc := range []struct {
		name string
		args []string
	}{
		{"color", []string{"-color", "sometimes"}},
		{"log level", []string{"-log-level", "chatty"}},
		{"arguments", []string{"extra"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := runCommand(t, nil, tc.args...)
			require.Error(t, err)
			require.Empty(t, stdout)
		})
	}
}

func TestRunCommand_LogFile(t *testing.T) {
	isolateEnv(t)

	logPath := filepath.Join(t.TempDir(), "run.log")
	_, stderr, err := runCommand(t, nil, "-log-file", logPath, "-log-level", "debug", "-quiet", "-color", "never")
	require.NoError(t, err)
	require.Empty(t, stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	logs := string(data)
	require.Contains(t, logs, `"msg":"[Run] starting scenario"`)
	require.Contains(t, logs, `"msg":"[Tree] tick complete"`)
	require.Equal(t, 2, strings.Count(logs, "[Tree] tick complete"))
}

func TestRunCommand_TraceFile(t *testing.T) {
	isolateEnv(t)

	t.Run("flag", func(t *testing.T) {
		tracePath := filepath.Join(t.TempDir(), "trace.json")
		_, _, err := runCommand(t, nil, "-trace-file", tracePath, "-quiet", "-color", "never")
		require.NoError(t, err)

		data, err := os.ReadFile(tracePath)
		require.NoError(t, err)
		require.Equal(t, 2, strings.Count(string(data), `"Name":"btagent.tick"`))
		require.Contains(t, string(data), `"btagent.tick.state"`)
	})

	t.Run("config", func(t *testing.T) {
		tracePath := filepath.Join(t.TempDir(), "trace.json")
		cfg := config.NewConfig()
		cfg.SetGlobalOption("trace.file", tracePath)
		_, _, err := runCommand(t, cfg, "-quiet", "-color", "never")
		require.NoError(t, err)

		data, err := os.ReadFile(tracePath)
		require.NoError(t, err)
		require.Contains(t, string(data), "btagent.tick")
	})

	t.Run("unwritable", func(t *testing.T) {
		_, _, err := runCommand(t, nil, "-trace-file", filepath.Join(t.TempDir(), "missing", "trace.json"))
		require.Error(t, err)
	})
}

func TestRunCommand_ReportsConfigWarnings(t *testing.T) {
	isolateEnv(t)

	cfg, err := config.LoadFromReader(strings.NewReader("log.levl debug\ncolor sometimes\n"))
	require.NoError(t, err)
	require.Len(t, cfg.Warnings, 2)

	_, stderr, err := runCommand(t, cfg, "-quiet", "-log-level", "error")
	// color sometimes is still invalid once resolved
	require.Error(t, err)
	require.Contains(t, stderr, "Warning: config:")
	require.Contains(t, stderr, "log.levl")
	require.Contains(t, stderr, "color")
}
