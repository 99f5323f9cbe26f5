package store

import (
	"fmt"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/records"
)

// Collection is the in-memory, ordered form of one collection file. It is
// owned by whoever loaded it and is not safe for concurrent use.
type Collection[T records.Record] struct {
	items []T

	// highWater is the largest identifier this collection has held since
	// it was loaded, so removing the newest record does not free its id.
	highWater int
}

// NewCollection returns a collection holding items in the given order.
func NewCollection[T records.Record](items ...T) *Collection[T] {
	c := &Collection[T]{items: append([]T(nil), items...)}
	c.highWater = maxID(c.items)
	return c
}

// Items returns a copy of the records in collection order.
func (c *Collection[T]) Items() []T {
	return append([]T{}, c.items...)
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// IDs returns the identifiers in collection order.
func (c *Collection[T]) IDs() []int {
	ids := make([]int, len(c.items))
	for i, rec := range c.items {
		ids[i] = rec.RecordID()
	}
	return ids
}

// NextID returns the identifier the next new record should get. Call it
// right before appending, on the freshly loaded collection.
func (c *Collection[T]) NextID() int {
	return NextID(append(c.IDs(), c.highWater))
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id int) (T, error) {
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("%w: id %d", kerrors.ErrRecordNotFound, id)
	}
	return c.items[i], nil
}

// Append builds a record with the next identifier and adds it to the end.
// The collection is unchanged if build or validation fails.
func (c *Collection[T]) Append(build func(id int) (T, error)) (T, error) {
	var zero T
	rec, err := build(c.NextID())
	if err != nil {
		return zero, err
	}
	if err := c.Insert(rec); err != nil {
		return zero, err
	}
	return rec, nil
}

// Insert validates rec and adds it to the end. Its identifier must not be
// in use.
func (c *Collection[T]) Insert(rec T) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if c.indexOf(rec.RecordID()) >= 0 {
		return fmt.Errorf("%w: id %d is already in use", kerrors.ErrValidation, rec.RecordID())
	}

	c.items = append(c.items, rec)
	if id := rec.RecordID(); id > c.highWater {
		c.highWater = id
	}
	return nil
}

// Update applies fn to a copy of the record with the given id and stores
// the result if it is still valid. The identifier cannot be changed.
func (c *Collection[T]) Update(id int, fn func(rec *T) error) (T, error) {
	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%w: id %d", kerrors.ErrRecordNotFound, id)
	}

	updated := c.items[i]
	if err := fn(&updated); err != nil {
		return zero, err
	}
	if updated.RecordID() != id {
		return zero, fmt.Errorf("%w: id cannot change from %d to %d", kerrors.ErrValidation, id, updated.RecordID())
	}
	if err := updated.Validate(); err != nil {
		return zero, err
	}

	c.items[i] = updated
	return updated, nil
}

// Remove deletes the record with the given id and returns it.
func (c *Collection[T]) Remove(id int) (T, error) {
	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%w: id %d", kerrors.ErrRecordNotFound, id)
	}

	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return removed, nil
}

func (c *Collection[T]) indexOf(id int) int {
	for i, rec := range c.items {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}

// NextID returns one more than the largest identifier in ids, or 1 if ids
// is empty.
func NextID(ids []int) int {
	highest := 0
	for _, id := range ids {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}

func maxID[T records.Record](items []T) int {
	highest := 0
	for _, rec := range items {
		if id := rec.RecordID(); id > highest {
			highest = id
		}
	}
	return highest
}
