package records

import (
	"encoding/json"
	"testing"
	"time"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 30, 15, 123456789, time.Local)

	task, err := NewTask(3, "  Buy milk  ", now)
	require.NoError(t, err)

	assert.Equal(t, Task{
		ID:          3,
		Description: "Buy milk",
		Completed:   false,
		CreatedAt:   "2025-01-01T09:30:15",
	}, task)
	assert.Equal(t, "2025-01-01", task.CreatedDate())
}

func TestNewTask_EmptyDescription(t *testing.T) {
	for _, desc := range []string{"", "   ", "\t\n"} {
		_, err := NewTask(1, desc, time.Now())
		assert.ErrorIs(t, err, kerrors.ErrValidation, "description %q", desc)
	}
}

func TestTask_Validate(t *testing.T) {
	valid := Task{ID: 1, Description: "x", CreatedAt: "2025-01-01T00:00:00"}

	tests := []struct {
		name   string
		mutate func(*Task)
		ok     bool
	}{
		{"Valid", func(*Task) {}, true},
		{"FractionalSeconds", func(t *Task) { t.CreatedAt = "2025-01-01T00:00:00.123456" }, true},
		{"WithOffset", func(t *Task) { t.CreatedAt = "2025-01-01T00:00:00+02:00" }, true},
		{"ZeroID", func(t *Task) { t.ID = 0 }, false},
		{"NegativeID", func(t *Task) { t.ID = -4 }, false},
		{"BlankDescription", func(t *Task) { t.Description = " " }, false},
		{"MissingCreatedAt", func(t *Task) { t.CreatedAt = "" }, false},
		{"DateOnlyCreatedAt", func(t *Task) { t.CreatedAt = "2025-01-01" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := valid
			tc.mutate(&task)
			err := task.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, kerrors.ErrValidation)
			}
		})
	}
}

func TestTask_JSONFieldNames(t *testing.T) {
	task := Task{ID: 1, Description: "Buy milk", Completed: true, CreatedAt: "2025-01-01T00:00:00"}

	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"description":"Buy milk","completed":true,"created_at":"2025-01-01T00:00:00"}`, string(data))
}

func TestTask_UnmarshalRequiresEveryField(t *testing.T) {
	inputs := map[string]string{
		"missing completed":  `{"id":1,"description":"a","created_at":"2025-01-01T00:00:00"}`,
		"missing created_at": `{"id":1,"description":"a","completed":false}`,
		"null completed":     `{"id":1,"description":"a","completed":null,"created_at":"2025-01-01T00:00:00"}`,
		"capitalised keys":   `{"ID":1,"Description":"a","Completed":true,"Created_At":"2025-01-01T00:00:00"}`,
		"not an object":      `[1]`,
		"null":               `null`,
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			task := Task{ID: 9}
			assert.Error(t, json.Unmarshal([]byte(in), &task))
			assert.Equal(t, 9, task.ID, "a failed decode leaves the task untouched")
		})
	}
}

func TestTask_UnmarshalIgnoresUnknownKeys(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"description":"a","completed":true,"created_at":"2025-01-01T00:00:00","priority":"high"}`), &task))
	assert.Equal(t, Task{ID: 2, Description: "a", Completed: true, CreatedAt: "2025-01-01T00:00:00"}, task)
}
