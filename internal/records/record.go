package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"
)

// Record is an element of a collection.
type Record interface {
	// RecordID returns the identifier, unique within the collection.
	RecordID() int

	// Validate reports whether the record satisfies its shape constraints.
	// Failures wrap ErrValidation.
	Validate() error
}

// Timestamp layouts accepted for created_at. The first is what NewTask writes.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	time.RFC3339Nano,
}

// DateLayout is the ISO-8601 calendar date format used by expenses.
const DateLayout = "2006-01-02"

// ValidateTimestamp checks that s is an ISO-8601 timestamp, with or without
// fractional seconds and offset.
func ValidateTimestamp(s string) error {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not an ISO-8601 timestamp", kerrors.ErrValidation, s)
}

// ValidateDate checks that s is an ISO-8601 calendar date (YYYY-MM-DD).
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", kerrors.ErrValidation, s)
	}
	return nil
}

func validateID(id int) error {
	if id < 1 {
		return fmt.Errorf("%w: id must be a positive integer, got %d", kerrors.ErrValidation, id)
	}
	return nil
}

// field pairs a JSON key with the value it decodes into.
type field struct {
	name   string
	target any
}

// decodeFields decodes a JSON object into fields. Every key must be present,
// spelled exactly, and not null. Keys not listed are ignored.
func decodeFields(data []byte, fields ...field) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("expected an object, got null")
	}

	for _, f := range fields {
		value, ok := raw[f.name]
		if !ok {
			return fmt.Errorf("missing field %q", f.name)
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return fmt.Errorf("field %q is null", f.name)
		}
		if err := json.Unmarshal(value, f.target); err != nil {
			return fmt.Errorf("field %q: %w", f.name, err)
		}
	}
	return nil
}
