package store

import (
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testCreatedAt = "2025-01-01T09:00:00"

func task(id int, description string) records.Task {
	return records.Task{ID: id, Description: description, CreatedAt: testCreatedAt}
}

func newTask(description string) func(id int) (records.Task, error) {
	return func(id int) (records.Task, error) {
		return task(id, description), nil
	}
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 5, NextID([]int{1, 3, 4}))
	assert.Equal(t, 5, NextID([]int{4, 1, 3}))
}

func TestNextID_NeverCollides(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOfDistinct(rapid.IntRange(1, 10000), rapid.ID[int]).Draw(t, "ids")
		next := NextID(ids)
		for _, id := range ids {
			if id >= next {
				t.Fatalf("NextID(%v) = %d, not above existing id %d", ids, next, id)
			}
		}
	})
}

func TestCollection_NextIDAfterRemovingNewest(t *testing.T) {
	c := NewCollection(task(1, "a"), task(3, "b"), task(4, "c"))
	assert.Equal(t, 5, c.NextID())

	_, err := c.Remove(4)
	require.NoError(t, err)
	assert.Equal(t, 5, c.NextID())

	added, err := c.Append(newTask("d"))
	require.NoError(t, err)
	assert.Equal(t, 5, added.ID)
}

func TestCollection_EmptyStartsAtOne(t *testing.T) {
	c := NewCollection[records.Task]()
	added, err := c.Append(newTask("first"))
	require.NoError(t, err)
	assert.Equal(t, 1, added.ID)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_AppendKeepsOrder(t *testing.T) {
	c := NewCollection[records.Task]()
	for _, d := range []string{"one", "two", "three"} {
		_, err := c.Append(newTask(d))
		require.NoError(t, err)
	}

	assert.Equal(t, []int{1, 2, 3}, c.IDs())
	assert.Equal(t, "two", c.Items()[1].Description)
}

func TestCollection_AppendInvalidLeavesCollection(t *testing.T) {
	c := NewCollection(task(1, "a"))

	_, err := c.Append(newTask("   "))
	assert.ErrorIs(t, err, kerrors.ErrValidation)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.NextID())
}

func TestCollection_AppendBuildError(t *testing.T) {
	c := NewCollection[records.Task]()
	boom := errors.New("boom")

	_, err := c.Append(func(int) (records.Task, error) { return records.Task{}, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestCollection_InsertDuplicateID(t *testing.T) {
	c := NewCollection(task(1, "a"))
	err := c.Insert(task(1, "b"))
	assert.ErrorIs(t, err, kerrors.ErrValidation)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_Get(t *testing.T) {
	c := NewCollection(task(1, "a"), task(2, "b"))

	got, err := c.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Description)

	_, err = c.Get(9)
	assert.ErrorIs(t, err, kerrors.ErrRecordNotFound)
}

func TestCollection_Update(t *testing.T) {
	c := NewCollection(task(1, "a"), task(2, "b"))

	updated, err := c.Update(2, func(rec *records.Task) error {
		rec.Completed = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	got, err := c.Get(2)
	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func TestCollection_UpdateMissing(t *testing.T) {
	c := NewCollection(task(1, "a"))
	called := false

	_, err := c.Update(7, func(rec *records.Task) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, kerrors.ErrRecordNotFound)
	assert.False(t, called)
}

func TestCollection_UpdateRejectsInvalid(t *testing.T) {
	c := NewCollection(task(1, "a"))

	_, err := c.Update(1, func(rec *records.Task) error {
		rec.Description = ""
		return nil
	})
	assert.ErrorIs(t, err, kerrors.ErrValidation)

	got, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Description)
}

func TestCollection_UpdateCannotChangeID(t *testing.T) {
	c := NewCollection(task(1, "a"))

	_, err := c.Update(1, func(rec *records.Task) error {
		rec.ID = 2
		return nil
	})
	assert.ErrorIs(t, err, kerrors.ErrValidation)
	assert.Equal(t, []int{1}, c.IDs())
}

func TestCollection_Remove(t *testing.T) {
	c := NewCollection(task(1, "a"), task(2, "b"), task(3, "c"))

	removed, err := c.Remove(2)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Description)
	assert.Equal(t, []int{1, 3}, c.IDs())

	_, err = c.Remove(2)
	assert.ErrorIs(t, err, kerrors.ErrRecordNotFound)
	assert.Equal(t, []int{1, 3}, c.IDs())
}

func TestCollection_ItemsIsACopy(t *testing.T) {
	c := NewCollection(task(1, "a"))
	items := c.Items()
	items[0].Description = "changed"

	got, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Description)
}
