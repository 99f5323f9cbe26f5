package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PolarWolf314/triflow/internal/audit"
	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/records"
)

// ListExpensesResult contains every expense in collection order.
type ListExpensesResult struct {
	Expenses []records.Expense
	Total    decimal.Decimal
}

// ListExpenses loads the budget collection and sums it.
func ListExpenses(ctx context.Context, env *Env) (*ListExpensesResult, error) {
	f, err := env.budgetsFile()
	if err != nil {
		return nil, err
	}
	expenses, err := f.Load()
	if err != nil {
		return nil, err
	}

	items := expenses.Items()
	return &ListExpensesResult{Expenses: items, Total: records.Total(items)}, nil
}

// AddExpenseOptions configures the add-expense workflow.
type AddExpenseOptions struct {
	Item   string
	Amount string

	// Date is YYYY-MM-DD. Empty means today.
	Date string
}

// AddExpense appends an expense with the next identifier and saves.
//
// Returns ErrInvalidDateFormat if Date is set and not YYYY-MM-DD.
// Returns ErrValidation for an empty item or a non-numeric or negative
// amount; nothing is saved.
func AddExpense(ctx context.Context, env *Env, opts AddExpenseOptions) (*records.Expense, error) {
	date := strings.TrimSpace(opts.Date)
	if date == "" {
		date = env.now().Format(records.DateLayout)
	} else if _, err := time.Parse(records.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat, opts.Date)
	}

	if _, err := records.NewExpense(1, opts.Item, opts.Amount, date); err != nil {
		return nil, err
	}

	f, err := env.budgetsFile()
	if err != nil {
		return nil, err
	}
	expenses, err := f.Load()
	if err != nil {
		return nil, err
	}

	expense, err := expenses.Append(func(id int) (records.Expense, error) {
		return records.NewExpense(id, opts.Item, opts.Amount, date)
	})
	if err != nil {
		return nil, err
	}
	env.Logger.Debugf("Assigned expense id %d", expense.ID)

	if err := f.Save(expenses); err != nil {
		return nil, err
	}
	env.Logger.Infof("Saved %d expenses to %s", expenses.Len(), f.Path)

	env.record(audit.Entry{Operation: audit.OpExpenseAdd, Collection: audit.CollectionBudgets, RecordID: expense.ID})
	return &expense, nil
}

// ExpenseIDOptions identifies a single expense.
type ExpenseIDOptions struct {
	ID int
}

// RemoveExpense deletes an expense and saves.
//
// Returns ErrRecordNotFound if no expense has the id; nothing is saved.
func RemoveExpense(ctx context.Context, env *Env, opts ExpenseIDOptions) (*records.Expense, error) {
	f, err := env.budgetsFile()
	if err != nil {
		return nil, err
	}
	expenses, err := f.Load()
	if err != nil {
		return nil, err
	}

	expense, err := expenses.Remove(opts.ID)
	if err != nil {
		return nil, err
	}

	if err := f.Save(expenses); err != nil {
		return nil, err
	}
	env.Logger.Infof("Saved %d expenses to %s", expenses.Len(), f.Path)

	env.record(audit.Entry{Operation: audit.OpExpenseRemove, Collection: audit.CollectionBudgets, RecordID: opts.ID})
	return &expense, nil
}

// ExportExpenses writes the budget collection as plaintext JSON to the
// configured export path.
func ExportExpenses(ctx context.Context, env *Env) (*ExportResult, error) {
	f, err := env.budgetsFile()
	if err != nil {
		return nil, err
	}
	expenses, err := f.Load()
	if err != nil {
		return nil, err
	}

	return exportCollection(env, expenses, env.Config.BudgetsExportPath(), audit.OpExpenseExport, audit.CollectionBudgets)
}
