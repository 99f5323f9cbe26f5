// Package records defines the record shapes stored in encrypted collections.
//
// Every shape implements Record: a positive integer identifier, unique
// within its collection, plus a Validate method enforcing the shape's
// constraints. Validation runs both on caller input (reported as
// ErrValidation) and on decoded payloads (reported by the store as
// ErrMalformedPayload).
//
// JSON field names are fixed; they are the on-disk contract inside the
// encrypted payload and in plain exports:
//
//	Task:    {"id", "description", "completed", "created_at"}
//	Expense: {"id", "item", "amount", "date"}
package records
