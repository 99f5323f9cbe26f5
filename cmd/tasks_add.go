package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var tasksAddCmd = &cobra.Command{
	Use:   "add <description...>",
	Short: "Add a task",
	Long: `Adds a pending task. All arguments are joined into the description.

Examples:
  triflow tasks add Buy milk
  triflow tasks add "Call the bank before 5pm"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTasksAdd,
}

func runTasksAdd(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting tasks add command")

	spinner, cleanup := startSpinner("Adding task...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	task, err := workflows.AddTask(context.Background(), env, workflows.AddTaskOptions{
		Description: strings.Join(args, " "),
	})
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "add task")
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Added task %s: %s", ui.Highlight.Sprintf("#%d", task.ID), task.Description)
	return nil
}
