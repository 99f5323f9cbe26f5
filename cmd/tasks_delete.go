package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/utils"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var tasksDeleteYes bool

func init() {
	tasksDeleteCmd.Flags().BoolVarP(&tasksDeleteYes, "yes", "y", false, "skip the confirmation prompt")
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Long: `Deletes a task. When run in a terminal you are asked to confirm
unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runTasksDelete,
}

func runTasksDelete(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting tasks delete command")

	id, err := parseID(args[0])
	if err != nil {
		fmt.Println(formatStoreError(err, "delete task"))
		return nil
	}

	if !tasksDeleteYes && utils.IsTerminal() {
		ok, err := utils.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete task #%d?", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(ui.Info.Sprint("ℹ") + " Nothing deleted")
			return nil
		}
	}

	spinner, cleanup := startSpinner("Deleting task...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	task, err := workflows.DeleteTask(context.Background(), env, workflows.TaskIDOptions{ID: id})
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "delete task")
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Deleted task %s: %s", ui.Highlight.Sprintf("#%d", task.ID), task.Description)
	return nil
}
