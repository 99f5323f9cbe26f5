package cmd

import (
	"github.com/spf13/cobra"
)

// BudgetCmd is the parent of every expense command.
var BudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage expenses",
	Long: `Add, remove, list and export expenses.

Expenses are stored encrypted in budgets.json.enc in the data directory.
Amounts are exact decimals, so totals never pick up rounding errors.

Examples:
  triflow budget add Coffee 2.50
  triflow budget add Rent 1200 --date 2025-01-01
  triflow budget list
  triflow budget remove 2
  triflow budget export`,
}

func init() {
	BudgetCmd.AddCommand(budgetListCmd)
	BudgetCmd.AddCommand(budgetAddCmd)
	BudgetCmd.AddCommand(budgetRemoveCmd)
	BudgetCmd.AddCommand(budgetExportCmd)
}

// resetBudgetCommandState resets the budget commands' global state for testing.
func resetBudgetCommandState() {
	budgetListJSON = false
	budgetAddDate = ""
	budgetRemoveYes = false
}
