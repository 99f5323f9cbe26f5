package workflows

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/triflow/internal/configs"
	logger "github.com/PolarWolf314/triflow/internal/logging"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	dir := t.TempDir()
	settings := &configs.Settings{
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
		Username:  "tester",
	}

	cfg, err := configs.Load(settings.ConfigPath(), settings)
	require.NoError(t, err)

	env := NewEnv(cfg, settings.ConfigPath(), settings, logger.Logger{Out: io.Discard, Err: io.Discard})
	env.Now = func() time.Time { return testNow }
	env.Audit.Now = env.Now
	return env
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func addTasks(t *testing.T, env *Env, descriptions ...string) {
	t.Helper()
	for _, d := range descriptions {
		_, err := AddTask(context.Background(), env, AddTaskOptions{Description: d})
		require.NoError(t, err)
	}
}
