package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/triflow/internal/audit"
	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/records"
	"github.com/PolarWolf314/triflow/internal/store"
)

// ListTasksResult contains every task in collection order.
type ListTasksResult struct {
	Tasks     []records.Task
	Completed int
}

// Pending returns the number of tasks not yet completed.
func (r *ListTasksResult) Pending() int {
	return len(r.Tasks) - r.Completed
}

// ListTasks loads the task collection.
//
// Returns ErrDecryptFailed or ErrMalformedPayload if the file cannot be read back.
func ListTasks(ctx context.Context, env *Env) (*ListTasksResult, error) {
	f, err := env.tasksFile()
	if err != nil {
		return nil, err
	}
	tasks, err := f.Load()
	if err != nil {
		return nil, err
	}

	result := &ListTasksResult{Tasks: tasks.Items()}
	for _, t := range result.Tasks {
		if t.Completed {
			result.Completed++
		}
	}
	return result, nil
}

// AddTaskOptions configures the add-task workflow.
type AddTaskOptions struct {
	Description string
}

// AddTask appends a pending task with the next identifier and saves.
//
// Returns ErrValidation if the description is empty; nothing is saved.
func AddTask(ctx context.Context, env *Env, opts AddTaskOptions) (*records.Task, error) {
	if strings.TrimSpace(opts.Description) == "" {
		return nil, fmt.Errorf("%w: task description cannot be empty", kerrors.ErrValidation)
	}

	f, err := env.tasksFile()
	if err != nil {
		return nil, err
	}
	tasks, err := f.Load()
	if err != nil {
		return nil, err
	}

	task, err := tasks.Append(func(id int) (records.Task, error) {
		return records.NewTask(id, opts.Description, env.now())
	})
	if err != nil {
		return nil, err
	}
	env.Logger.Debugf("Assigned task id %d", task.ID)

	if err := f.Save(tasks); err != nil {
		return nil, err
	}
	env.Logger.Infof("Saved %d tasks to %s", tasks.Len(), f.Path)

	env.record(audit.Entry{Operation: audit.OpTaskAdd, Collection: audit.CollectionTasks, RecordID: task.ID})
	return &task, nil
}

// TaskIDOptions identifies a single task.
type TaskIDOptions struct {
	ID int
}

// CompleteTask marks a task completed and saves. Completing a task that is
// already completed succeeds and leaves it completed.
//
// Returns ErrRecordNotFound if no task has the id; nothing is saved.
func CompleteTask(ctx context.Context, env *Env, opts TaskIDOptions) (*records.Task, error) {
	return updateTask(env, opts.ID, audit.OpTaskComplete, func(t *records.Task) error {
		t.Completed = true
		return nil
	})
}

// EditTaskOptions configures the edit-task workflow.
type EditTaskOptions struct {
	ID          int
	Description string
}

// EditTask replaces a task's description and saves.
//
// Returns ErrRecordNotFound if no task has the id.
// Returns ErrValidation if the new description is empty.
func EditTask(ctx context.Context, env *Env, opts EditTaskOptions) (*records.Task, error) {
	return updateTask(env, opts.ID, audit.OpTaskEdit, func(t *records.Task) error {
		t.Description = strings.TrimSpace(opts.Description)
		return nil
	})
}

func updateTask(env *Env, id int, op string, fn func(t *records.Task) error) (*records.Task, error) {
	f, err := env.tasksFile()
	if err != nil {
		return nil, err
	}
	tasks, err := f.Load()
	if err != nil {
		return nil, err
	}

	task, err := tasks.Update(id, fn)
	if err != nil {
		return nil, err
	}

	if err := f.Save(tasks); err != nil {
		return nil, err
	}
	env.Logger.Infof("Saved %d tasks to %s", tasks.Len(), f.Path)

	env.record(audit.Entry{Operation: op, Collection: audit.CollectionTasks, RecordID: id})
	return &task, nil
}

// DeleteTask removes a task and saves. Its identifier is not handed out
// again while other tasks with higher identifiers exist.
//
// Returns ErrRecordNotFound if no task has the id; nothing is saved.
func DeleteTask(ctx context.Context, env *Env, opts TaskIDOptions) (*records.Task, error) {
	f, err := env.tasksFile()
	if err != nil {
		return nil, err
	}
	tasks, err := f.Load()
	if err != nil {
		return nil, err
	}

	task, err := tasks.Remove(opts.ID)
	if err != nil {
		return nil, err
	}

	if err := f.Save(tasks); err != nil {
		return nil, err
	}
	env.Logger.Infof("Saved %d tasks to %s", tasks.Len(), f.Path)

	env.record(audit.Entry{Operation: audit.OpTaskDelete, Collection: audit.CollectionTasks, RecordID: opts.ID})
	return &task, nil
}

// ExportResult describes a plaintext export.
type ExportResult struct {
	OutputPath string
	Count      int
}

// ExportTasks writes the task collection as plaintext JSON to the
// configured export path. The encrypted file is left as it is.
func ExportTasks(ctx context.Context, env *Env) (*ExportResult, error) {
	f, err := env.tasksFile()
	if err != nil {
		return nil, err
	}
	tasks, err := f.Load()
	if err != nil {
		return nil, err
	}

	return exportCollection(env, tasks, env.Config.TasksExportPath(), audit.OpTaskExport, audit.CollectionTasks)
}

func exportCollection[T records.Record](env *Env, c *store.Collection[T], path, op, collection string) (*ExportResult, error) {
	if err := store.ExportPlain(path, c); err != nil {
		return nil, err
	}
	env.Logger.Infof("Exported %d records to %s", c.Len(), path)

	env.record(audit.Entry{Operation: op, Collection: collection, Count: c.Len(), OutputPath: path})
	return &ExportResult{OutputPath: path, Count: c.Len()}, nil
}
