package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var budgetAddDate string

func init() {
	budgetAddCmd.Flags().StringVar(&budgetAddDate, "date", "", "date of the expense (YYYY-MM-DD, default today)")
}

var budgetAddCmd = &cobra.Command{
	Use:   "add <item> <amount>",
	Short: "Record an expense",
	Long: `Records an expense. The amount must be a non-negative number such as
2.50. Quote the item if it contains spaces.

Examples:
  triflow budget add Coffee 2.50
  triflow budget add "Train ticket" 14 --date 2025-03-01`,
	Args: cobra.ExactArgs(2),
	RunE: runBudgetAdd,
}

func runBudgetAdd(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting budget add command")

	spinner, cleanup := startSpinner("Adding expense...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	expense, err := workflows.AddExpense(context.Background(), env, workflows.AddExpenseOptions{
		Item:   args[0],
		Amount: args[1],
		Date:   budgetAddDate,
	})
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "add expense")
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Added expense %s: %s %s on %s",
		ui.Highlight.Sprintf("#%d", expense.ID), expense.Item, expense.Amount.StringFixed(2), expense.Date)
	return nil
}
