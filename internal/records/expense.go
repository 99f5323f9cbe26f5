package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"

	"github.com/shopspring/decimal"
)

// Expense is a single spend entry in the budget.
type Expense struct {
	ID     int             `json:"id"`
	Item   string          `json:"item"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

// NewExpense builds an expense from user input. amount must parse as a
// non-negative decimal; date must be YYYY-MM-DD.
func NewExpense(id int, item, amount, date string) (Expense, error) {
	amt, err := ParseAmount(amount)
	if err != nil {
		return Expense{}, err
	}
	e := Expense{
		ID:     id,
		Item:   strings.TrimSpace(item),
		Amount: amt,
		Date:   date,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// ParseAmount parses a decimal amount such as "2.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q is not a number", kerrors.ErrValidation, s)
	}
	return amt, nil
}

func (e Expense) RecordID() int { return e.ID }

func (e Expense) Validate() error {
	if err := validateID(e.ID); err != nil {
		return err
	}
	if strings.TrimSpace(e.Item) == "" {
		return fmt.Errorf("%w: expense name cannot be empty", kerrors.ErrValidation)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative, got %s", kerrors.ErrValidation, e.Amount)
	}
	return ValidateDate(e.Date)
}

// expenseJSON mirrors Expense with the amount as a bare JSON number.
// decimal.Decimal marshals to a quoted string by default.
type expenseJSON struct {
	ID     int         `json:"id"`
	Item   string      `json:"item"`
	Amount json.Number `json:"amount"`
	Date   string      `json:"date"`
}

// MarshalJSON writes amount as a JSON number so payloads stay plain numeric JSON.
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(expenseJSON{
		ID:     e.ID,
		Item:   e.Item,
		Amount: json.Number(exactString(e.Amount)),
		Date:   e.Date,
	})
}

// UnmarshalJSON requires all four keys with their exact names, and amount
// must be a JSON number; strings are rejected.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var (
		out    Expense
		amount json.RawMessage
	)
	if err := decodeFields(data,
		field{"id", &out.ID},
		field{"item", &out.Item},
		field{"amount", &amount},
		field{"date", &out.Date},
	); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(amount))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	num, ok := v.(json.Number)
	if !ok {
		return fmt.Errorf("amount must be a number, got %s", amount)
	}

	amt, err := decimal.NewFromString(num.String())
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	out.Amount = amt

	*e = out
	return nil
}

// exactString keeps the scale of amounts such as 2.50 so a decoded
// expense is identical to the one that was encoded.
func exactString(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Total sums the amounts of expenses.
func Total(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
