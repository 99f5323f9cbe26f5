package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var tasksListJSON bool

func init() {
	tasksListCmd.Flags().BoolVar(&tasksListJSON, "json", false, "output as JSON array")
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Args:  cobra.NoArgs,
	RunE:  runTasksList,
}

func runTasksList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting tasks list command")

	spinner, cleanup := startSpinner("Loading tasks...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	result, err := workflows.ListTasks(context.Background(), env)
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "list tasks")
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}
	Logger.Debugf("Loaded %d tasks", len(result.Tasks))

	spinner.FinalMSG = ""
	if tasksListJSON {
		return printJSON(result.Tasks)
	}

	if len(result.Tasks) == 0 {
		fmt.Println("No tasks yet. Add one with " + ui.Code.Sprint("triflow tasks add <description>"))
		return nil
	}

	printTasks(result)
	return nil
}

func printTasks(result *workflows.ListTasksResult) {
	fmt.Printf("%s  %s  %s  %s\n",
		ui.PadRight("ID", 4), ui.PadRight("Status", 10), ui.PadRight("Created", 10), "Description")
	for _, t := range result.Tasks {
		fmt.Printf("%s  %s  %s  %s\n",
			ui.PadRight(fmt.Sprint(t.ID), 4), ui.TaskStatus(t.Completed, 10), t.CreatedDate(), t.Description)
	}
	fmt.Println()
	fmt.Printf("%d tasks, %d done, %d pending\n", len(result.Tasks), result.Completed, result.Pending())
}
