package workflows

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/triflow/internal/audit"
	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/records"
	"github.com/PolarWolf314/triflow/internal/secrets"
)

func TestListTasks_FirstRun(t *testing.T) {
	env := newTestEnv(t)

	result, err := ListTasks(context.Background(), env)
	require.NoError(t, err)
	assert.Empty(t, result.Tasks)

	_, err = os.Stat(env.Config.TasksPath())
	assert.True(t, os.IsNotExist(err), "listing must not write the collection")
}

func TestAddTask(t *testing.T) {
	env := newTestEnv(t)

	task, err := AddTask(context.Background(), env, AddTaskOptions{Description: "  Buy milk "})
	require.NoError(t, err)
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, "Buy milk", task.Description)
	assert.False(t, task.Completed)
	assert.Equal(t, "2025-06-15T10:30:00", task.CreatedAt)

	addTasks(t, env, "Walk dog")

	result, err := ListTasks(context.Background(), env)
	require.NoError(t, err)
	require.Len(t, result.Tasks, 2)
	assert.Equal(t, 2, result.Tasks[1].ID)
	assert.Equal(t, 2, result.Pending())
}

func TestAddTask_EmptyDescription(t *testing.T) {
	env := newTestEnv(t)

	_, err := AddTask(context.Background(), env, AddTaskOptions{Description: "   "})
	assert.ErrorIs(t, err, kerrors.ErrValidation)

	_, err = os.Stat(env.Config.TasksPath())
	assert.True(t, os.IsNotExist(err))
}

func TestCompleteTask(t *testing.T) {
	env := newTestEnv(t)
	addTasks(t, env, "Buy milk", "Walk dog")

	task, err := CompleteTask(context.Background(), env, TaskIDOptions{ID: 2})
	require.NoError(t, err)
	assert.True(t, task.Completed)

	// Completing again is not an error.
	_, err = CompleteTask(context.Background(), env, TaskIDOptions{ID: 2})
	require.NoError(t, err)

	result, err := ListTasks(context.Background(), env)
	require.NoError(t, err)
	assert.False(t, result.Tasks[0].Completed)
	assert.True(t, result.Tasks[1].Completed)
	assert.Equal(t, 1, result.Completed)
}

func TestCompleteTask_MissingDoesNotSave(t *testing.T) {
	env := newTestEnv(t)
	addTasks(t, env, "Buy milk")
	before := readFile(t, env.Config.TasksPath())

	_, err := CompleteTask(context.Background(), env, TaskIDOptions{ID: 9})
	assert.ErrorIs(t, err, kerrors.ErrRecordNotFound)

	assert.Equal(t, before, readFile(t, env.Config.TasksPath()))
}

func TestEditTask(t *testing.T) {
	env := newTestEnv(t)
	addTasks(t, env, "Buy milk")

	task, err := EditTask(context.Background(), env, EditTaskOptions{ID: 1, Description: "Buy oat milk"})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", task.Description)

	_, err = EditTask(context.Background(), env, EditTaskOptions{ID: 1, Description: ""})
	assert.ErrorIs(t, err, kerrors.ErrValidation)

	result, err := ListTasks(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", result.Tasks[0].Description)
}

func TestDeleteTask(t *testing.T) {
	env := newTestEnv(t)
	addTasks(t, env, "one", "two", "three")

	removed, err := DeleteTask(context.Background(), env, TaskIDOptions{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, "two", removed.Description)

	_, err = DeleteTask(context.Background(), env, TaskIDOptions{ID: 2})
	assert.ErrorIs(t, err, kerrors.ErrRecordNotFound)

	task, err := AddTask(context.Background(), env, AddTaskOptions{Description: "four"})
	require.NoError(t, err)
	assert.Equal(t, 4, task.ID)
}

func TestListTasks_WrongKeyIsAnError(t *testing.T) {
	env := newTestEnv(t)
	addTasks(t, env, "Buy milk")

	other, err := secrets.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.Config.KeyPath(), other[:], 0600))
	env.Keys = secrets.NewKeyStore(env.Config.KeyPath())

	_, err = ListTasks(context.Background(), env)
	assert.ErrorIs(t, err, kerrors.ErrDecryptFailed)

	_, err = AddTask(context.Background(), env, AddTaskOptions{Description: "lost?"})
	assert.ErrorIs(t, err, kerrors.ErrDecryptFailed)
}

func TestListTasks_CorruptKey(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.Config.DataDir(), 0700))
	require.NoError(t, os.WriteFile(env.Config.KeyPath(), []byte("short"), 0600))

	_, err := ListTasks(context.Background(), env)
	assert.ErrorIs(t, err, kerrors.ErrKeyCorrupt)
}

func TestExportTasks(t *testing.T) {
	env := newTestEnv(t)
	addTasks(t, env, "Buy milk", "Walk dog")
	before := readFile(t, env.Config.TasksPath())

	result, err := ExportTasks(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, env.Config.TasksExportPath(), result.OutputPath)
	assert.Equal(t, 2, result.Count)

	assert.Equal(t, before, readFile(t, env.Config.TasksPath()))

	var exported []records.Task
	require.NoError(t, json.Unmarshal(readFile(t, result.OutputPath), &exported))
	require.Len(t, exported, 2)
	assert.Equal(t, "Walk dog", exported[1].Description)
}

func TestTasks_AuditTrail(t *testing.T) {
	env := newTestEnv(t)
	addTasks(t, env, "Buy milk")
	_, err := CompleteTask(context.Background(), env, TaskIDOptions{ID: 1})
	require.NoError(t, err)
	_, err = ExportTasks(context.Background(), env)
	require.NoError(t, err)

	entries, err := audit.ReadEntries(env.Config.AuditLogPath())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, audit.OpTaskAdd, entries[0].Operation)
	assert.Equal(t, 1, entries[0].RecordID)
	assert.Equal(t, "tester", entries[0].User)
	assert.Equal(t, audit.OpTaskComplete, entries[1].Operation)
	assert.Equal(t, audit.OpTaskExport, entries[2].Operation)
	assert.Equal(t, 1, entries[2].Count)

	assert.NotContains(t, string(readFile(t, env.Config.AuditLogPath())), "Buy milk")
}
