//go:build unit

package inventory_test

import (
	"testing"

	"vetclinic/internal/domain/inventory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(t *testing.T, registered, minLevel, maxLevel int) *inventory.Record {
	t.Helper()
	rec, err := inventory.NewRecord(uuid.New(), registered, registered, minLevel, maxLevel)
	require.NoError(t, err)
	return rec
}

func TestNewRecord(t *testing.T) {
	_, err := inventory.NewRecord(uuid.New(), -1, 0, 0, 10)
	assert.ErrorIs(t, err, inventory.ErrNegativeStockLevel)
}

func TestRecordReserve(t *testing.T) {
	t.Run("decrements registered quantity", func(t *testing.T) {
		rec := newRecord(t, 10, 2, 20)
		require.NoError(t, rec.Reserve(4))
		assert.Equal(t, 6, rec.RegisteredQuantity())
	})

	t.Run("exact quantity drains to zero", func(t *testing.T) {
		rec := newRecord(t, 3, 0, 20)
		require.NoError(t, rec.Reserve(3))
		assert.Equal(t, 0, rec.RegisteredQuantity())
	})

	t.Run("insufficient stock leaves the record untouched", func(t *testing.T) {
		rec := newRecord(t, 2, 0, 20)
		assert.ErrorIs(t, rec.Reserve(3), inventory.ErrInsufficientQuantity)
		assert.Equal(t, 2, rec.RegisteredQuantity())
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		rec := newRecord(t, 2, 0, 20)
		assert.ErrorIs(t, rec.Reserve(0), inventory.ErrNonPositiveQuantity)
	})
}

func TestRecordRestock(t *testing.T) {
	rec := newRecord(t, 5, 2, 10)
	require.NoError(t, rec.Restock(3))
	assert.Equal(t, 8, rec.RegisteredQuantity())

	// Restocking past the max level is allowed, only flagged.
	require.NoError(t, rec.Restock(10))
	assert.Equal(t, 18, rec.RegisteredQuantity())

	assert.ErrorIs(t, rec.Restock(-1), inventory.ErrNonPositiveQuantity)
}

func TestRecordIsLowStock(t *testing.T) {
	assert.True(t, newRecord(t, 1, 5, 20).IsLowStock())
	assert.True(t, newRecord(t, 5, 5, 20).IsLowStock())
	assert.False(t, newRecord(t, 10, 5, 20).IsLowStock())
}

func TestRecordExceedsMaxAfter(t *testing.T) {
	rec := newRecord(t, 8, 2, 10)
	assert.False(t, rec.ExceedsMaxAfter(2))
	assert.True(t, rec.ExceedsMaxAfter(3))
}
