package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/triflow/internal/ui"
	"github.com/PolarWolf314/triflow/internal/workflows"
)

var budgetListJSON bool

func init() {
	budgetListCmd.Flags().BoolVar(&budgetListJSON, "json", false, "output as JSON array")
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all expenses and their total",
	Args:  cobra.NoArgs,
	RunE:  runBudgetList,
}

func runBudgetList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting budget list command")

	spinner, cleanup := startSpinner("Loading expenses...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	result, err := workflows.ListExpenses(context.Background(), env)
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "list expenses")
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}
	Logger.Debugf("Loaded %d expenses", len(result.Expenses))

	spinner.FinalMSG = ""
	if budgetListJSON {
		return printJSON(result.Expenses)
	}

	if len(result.Expenses) == 0 {
		fmt.Println("No expenses yet. Add one with " + ui.Code.Sprint("triflow budget add <item> <amount>"))
		return nil
	}

	printExpenses(result)
	return nil
}

func printExpenses(result *workflows.ListExpensesResult) {
	fmt.Printf("%s  %s  %s  %s\n", ui.PadRight("ID", 4), ui.PadRight("Date", 10), ui.PadRight("Amount", 12), "Item")
	for _, e := range result.Expenses {
		fmt.Printf("%s  %s  %s  %s\n",
			ui.PadRight(fmt.Sprint(e.ID), 4), e.Date, ui.PadRight(e.Amount.StringFixed(2), 12), e.Item)
	}
	fmt.Println()
	fmt.Printf("Total: %s across %d expenses\n", ui.Highlight.Sprint(result.Total.StringFixed(2)), len(result.Expenses))
}
