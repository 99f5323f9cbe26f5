// Package workflows provides high-level orchestration for triflow commands.
//
// Workflows coordinate the key store, the encrypted collections and the
// audit log to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else. A mutating workflow is always one
// load, mutate, save cycle:
//
//	f, _ := env.tasksFile()         // key from the KeyStore, created on first use
//	tasks, _ := f.Load()            // missing file loads as empty
//	task, _ := tasks.Append(build)  // next id computed from this load
//	_ = f.Save(tasks)               // full snapshot, atomic replace
//	env.record(entry)               // best-effort audit
//
// Validation happens before the save, so a rejected request never
// rewrites the file.
//
// # Available Workflows
//
//   - Tasks: ListTasks, AddTask, CompleteTask, EditTask, DeleteTask, ExportTasks
//   - Budget: ListExpenses, AddExpense, RemoveExpense, ExportExpenses
//   - Init: creates the config file and the key
//   - Doctor: read-only health checks
//   - Log: filtered audit log entries
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	_, err := workflows.CompleteTask(ctx, env, workflows.TaskIDOptions{ID: 7})
//	if errors.Is(err, kerrors.ErrRecordNotFound) {
//	    // Show "no task with id 7"
//	}
//
// A file that fails to decrypt is always reported as ErrDecryptFailed. It is
// never treated as an empty collection.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
package workflows
