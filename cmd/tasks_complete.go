package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var tasksCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksComplete,
}

func runTasksComplete(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting tasks complete command")

	spinner, cleanup := startSpinner("Completing task...")
	defer cleanup()

	id, err := parseID(args[0])
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "complete task")
		return nil
	}

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	task, err := workflows.CompleteTask(context.Background(), env, workflows.TaskIDOptions{ID: id})
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "complete task")
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Completed task %s: %s", ui.Highlight.Sprintf("#%d", task.ID), task.Description)
	return nil
}
