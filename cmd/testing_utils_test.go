package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/triflow/internal/configs"
)

// setupTestEnvironment points settings at temporary directories and resets
// global command state. It returns the data directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	settings := &configs.Settings{
		ConfigDir: filepath.Join(tempDir, "config"),
		DataDir:   filepath.Join(tempDir, "data"),
		Username:  "testuser",
	}

	// t.Setenv restores the variable afterwards; unset it so viper sees nothing.
	for _, env := range []string{
		"TRIFLOW_DATA_DIR", "TRIFLOW_KEY_FILE", "TRIFLOW_TASKS_FILE",
		"TRIFLOW_BUDGETS_FILE", "TRIFLOW_TASKS_EXPORT",
		"TRIFLOW_BUDGETS_EXPORT", "TRIFLOW_AUDIT_LOG",
	} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	originalSettings := settingsFunc
	settingsFunc = func() (*configs.Settings, error) { return settings, nil }
	ResetGlobalState()

	t.Cleanup(func() {
		settingsFunc = originalSettings
		ResetGlobalState()
	})

	return settings.DataDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		stdoutChan <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// runCLI executes the command tree with args and returns everything it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ResetGlobalState()
	root := NewRootCmd()
	root.SetArgs(args)
	return captureOutput(root.Execute)
}

// mustRunCLI is runCLI that fails the test on error.
func mustRunCLI(t *testing.T, args ...string) string {
	t.Helper()

	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("triflow %v failed: %v\noutput:\n%s", args, err, out)
	}
	return out
}
