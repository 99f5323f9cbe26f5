package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var tasksEditCmd = &cobra.Command{
	Use:   "edit <id> <description...>",
	Short: "Change a task's description",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTasksEdit,
}

func runTasksEdit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting tasks edit command")

	spinner, cleanup := startSpinner("Editing task...")
	defer cleanup()

	id, err := parseID(args[0])
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "edit task")
		return nil
	}

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	task, err := workflows.EditTask(context.Background(), env, workflows.EditTaskOptions{
		ID:          id,
		Description: strings.Join(args[1:], " "),
	})
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "edit task")
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Updated task %s: %s", ui.Highlight.Sprintf("#%d", task.ID), task.Description)
	return nil
}
