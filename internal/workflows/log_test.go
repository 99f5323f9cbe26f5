package workflows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/triflow/internal/audit"
	kerrors "github.com/PolarWolf314/triflow/internal/errors"
)

func dirOf(path string) string {
	return filepath.Dir(path)
}

func seedLog(t *testing.T, env *Env) {
	t.Helper()
	addTasks(t, env, "one", "two")
	_, err := AddExpense(context.Background(), env, AddExpenseOptions{Item: "Coffee", Amount: "3"})
	require.NoError(t, err)
	_, err = DeleteTask(context.Background(), env, TaskIDOptions{ID: 1})
	require.NoError(t, err)
}

func TestLog_NoLogYet(t *testing.T) {
	env := newTestEnv(t)

	_, err := Log(context.Background(), env, LogOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNoFilesFound)
}

func TestLog_All(t *testing.T) {
	env := newTestEnv(t)
	seedLog(t, env)

	result, err := Log(context.Background(), env, LogOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Scanned)
	require.Len(t, result.Entries, 4)
	assert.Equal(t, audit.OpTaskDelete, result.Entries[3].Operation)
}

func TestLog_Filters(t *testing.T) {
	env := newTestEnv(t)
	seedLog(t, env)

	tests := []struct {
		name string
		opts LogOptions
		want []string
	}{
		{"collection", LogOptions{Collection: "budgets"}, []string{audit.OpExpenseAdd}},
		{"collection alias", LogOptions{Collection: "Expenses"}, []string{audit.OpExpenseAdd}},
		{"full operations", LogOptions{Operations: []string{"task.add, task.delete"}},
			[]string{audit.OpTaskAdd, audit.OpTaskAdd, audit.OpTaskDelete}},
		{"verb", LogOptions{Operations: []string{"add"}},
			[]string{audit.OpTaskAdd, audit.OpTaskAdd, audit.OpExpenseAdd}},
		{"verb within collection", LogOptions{Operations: []string{"add"}, Collection: "tasks"},
			[]string{audit.OpTaskAdd, audit.OpTaskAdd}},
		{"record id", LogOptions{RecordID: 1},
			[]string{audit.OpTaskAdd, audit.OpExpenseAdd, audit.OpTaskDelete}},
		{"record id within collection", LogOptions{RecordID: 1, Collection: "tasks"},
			[]string{audit.OpTaskAdd, audit.OpTaskDelete}},
		{"since later day", LogOptions{Since: "2025-06-16"}, nil},
		{"until same day", LogOptions{Until: "2025-06-15"},
			[]string{audit.OpTaskAdd, audit.OpTaskAdd, audit.OpExpenseAdd, audit.OpTaskDelete}},
		{"until earlier day", LogOptions{Until: "2025-06-14"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Log(context.Background(), env, tt.opts)
			require.NoError(t, err)

			var got []string
			for _, e := range result.Entries {
				got = append(got, e.Operation)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 4, result.Scanned)
		})
	}
}

func TestLog_LimitKeepsMostRecent(t *testing.T) {
	env := newTestEnv(t)
	seedLog(t, env)

	result, err := Log(context.Background(), env, LogOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, audit.OpExpenseAdd, result.Entries[0].Operation)
	assert.Equal(t, audit.OpTaskDelete, result.Entries[1].Operation)

	result, err = Log(context.Background(), env, LogOptions{Limit: 2, NewestFirst: true})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, audit.OpTaskDelete, result.Entries[0].Operation)
	assert.Equal(t, audit.OpExpenseAdd, result.Entries[1].Operation)
}

func TestLog_RejectsBadOptions(t *testing.T) {
	env := newTestEnv(t)

	// Options are checked before the log is read.
	_, err := Log(context.Background(), env, LogOptions{Since: "yesterday"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)

	_, err = Log(context.Background(), env, LogOptions{Until: "15/06/2025"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)

	_, err = Log(context.Background(), env, LogOptions{Collection: "notes"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidFilter)

	_, err = Log(context.Background(), env, LogOptions{RecordID: -1})
	assert.ErrorIs(t, err, kerrors.ErrInvalidFilter)
}

func TestLogResult_OperationCounts(t *testing.T) {
	env := newTestEnv(t)
	seedLog(t, env)

	result, err := Log(context.Background(), env, LogOptions{})
	require.NoError(t, err)
	assert.Equal(t, []OperationCount{
		{Operation: audit.OpExpenseAdd, Count: 1},
		{Operation: audit.OpTaskAdd, Count: 2},
		{Operation: audit.OpTaskDelete, Count: 1},
	}, result.OperationCounts())
}
