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

var budgetRemoveYes bool

func init() {
	budgetRemoveCmd.Flags().BoolVarP(&budgetRemoveYes, "yes", "y", false, "skip the confirmation prompt")
}

var budgetRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetRemove,
}

func runBudgetRemove(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting budget remove command")

	id, err := parseID(args[0])
	if err != nil {
		fmt.Println(formatStoreError(err, "remove expense"))
		return nil
	}

	if !budgetRemoveYes && utils.IsTerminal() {
		ok, err := utils.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Remove expense #%d?", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(ui.Info.Sprint("ℹ") + " Nothing removed")
			return nil
		}
	}

	spinner, cleanup := startSpinner("Removing expense...")
	defer cleanup()

	env, err := loadEnv()
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "load configuration")
		return err
	}

	expense, err := workflows.RemoveExpense(context.Background(), env, workflows.ExpenseIDOptions{ID: id})
	if err != nil {
		spinner.FinalMSG = formatStoreError(err, "remove expense")
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Removed expense %s: %s", ui.Highlight.Sprintf("#%d", expense.ID), expense.Item)
	return nil
}
