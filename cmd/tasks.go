package cmd

import (
	"github.com/spf13/cobra"
)

// TasksCmd is the parent of every task command.
var TasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
	Long: `Add, complete, edit, delete and export tasks.

Tasks are stored encrypted in tasks.json.enc in the data directory. Each
task gets an id one greater than the highest id in the list.

Examples:
  triflow tasks add Buy milk
  triflow tasks list
  triflow tasks complete 1
  triflow tasks edit 1 Buy oat milk
  triflow tasks delete 1
  triflow tasks export`,
}

func init() {
	TasksCmd.AddCommand(tasksListCmd)
	TasksCmd.AddCommand(tasksAddCmd)
	TasksCmd.AddCommand(tasksCompleteCmd)
	TasksCmd.AddCommand(tasksEditCmd)
	TasksCmd.AddCommand(tasksDeleteCmd)
	TasksCmd.AddCommand(tasksExportCmd)
}

// resetTasksCommandState resets the task commands' global state for testing.
func resetTasksCommandState() {
	tasksListJSON = false
	tasksDeleteYes = false
}
