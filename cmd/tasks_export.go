package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var tasksExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write tasks to a plaintext JSON file",
	Long: `Writes every task as indented, unencrypted JSON to the configured
tasks_export path (tasks_export.json in the data directory by default).

The export is not encrypted. Delete it when you no longer need it.`,
	Args: cobra.NoArgs,
	RunE: runTasksExport,
}

func runTasksExport(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting tasks export command")

	spinner, cleanup := startSpinner("Exporting tasks...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	result, err := workflows.ExportTasks(context.Background(), env)
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "export tasks")
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = formatExportSuccess("tasks", result)
	return nil
}

func formatExportSuccess(what string, result *workflows.ExportResult) string {
	return ui.Success.Sprint("✓") + fmt.Sprintf(" Exported %d %s to ", result.Count, what) + ui.Path.Sprint(result.OutputPath) + "\n" +
		ui.Warning.Sprint("⚠") + " This file is not encrypted"
}
