package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/workflows"
)

var budgetExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write expenses to a plaintext JSON file",
	Long: `Writes every expense as indented, unencrypted JSON to the configured
budgets_export path (budgets_export.json in the data directory by default).`,
	Args: cobra.NoArgs,
	RunE: runBudgetExport,
}

func runBudgetExport(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting budget export command")

	spinner, cleanup := startSpinner("Exporting expenses...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	result, err := workflows.ExportExpenses(context.Background(), env)
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "export expenses")
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = formatExportSuccess("expenses", result)
	return nil
}
