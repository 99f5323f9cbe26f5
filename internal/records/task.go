package records

import (
	"fmt"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"
)

// Task is a to-do item.
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}

// NewTask builds a pending task with the given id. The description is
// trimmed; created_at is now in local time, second precision.
func NewTask(id int, description string, now time.Time) (Task, error) {
	t := Task{
		ID:          id,
		Description: strings.TrimSpace(description),
		CreatedAt:   now.Format(timestampLayouts[0]),
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (t Task) RecordID() int { return t.ID }

func (t Task) Validate() error {
	if err := validateID(t.ID); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: task description cannot be empty", kerrors.ErrValidation)
	}
	return ValidateTimestamp(t.CreatedAt)
}

// UnmarshalJSON requires all four keys with their exact names.
func (t *Task) UnmarshalJSON(data []byte) error {
	var out Task
	if err := decodeFields(data,
		field{"id", &out.ID},
		field{"description", &out.Description},
		field{"completed", &out.Completed},
		field{"created_at", &out.CreatedAt},
	); err != nil {
		return err
	}
	*t = out
	return nil
}

// CreatedDate returns the date part of CreatedAt for display.
func (t Task) CreatedDate() string {
	if len(t.CreatedAt) >= len(DateLayout) {
		return t.CreatedAt[:len(DateLayout)]
	}
	return t.CreatedAt
}
