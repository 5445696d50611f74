//go:build unit

package cart_test

import (
	"testing"

	"vetclinic/internal/domain/cart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		item, err := cart.NewItem(uuid.New(), 2, 500)
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, int64(500), item.PriceCents())
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := cart.NewItem(uuid.New(), 0, 500)
		assert.ErrorIs(t, err, cart.ErrNonPositiveQuantity)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := cart.NewItem(uuid.New(), 1, -1)
		assert.ErrorIs(t, err, cart.ErrNegativePrice)
	})
}

func TestCartAddItem(t *testing.T) {
	customerID := uuid.New()

	t.Run("appends a new line", func(t *testing.T) {
		c := cart.ReconstructCart(uuid.New(), customerID, nil)
		item, err := c.AddItem(uuid.New(), 3, 250)
		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity())
		assert.Len(t, c.Items(), 1)
		assert.False(t, c.IsEmpty())
	})

	t.Run("merges quantity and keeps the captured price", func(t *testing.T) {
		productID := uuid.New()
		c := cart.ReconstructCart(uuid.New(), customerID, nil)
		first, err := c.AddItem(productID, 2, 250)
		require.NoError(t, err)

		// The product price changed between adds; the line keeps the old one.
		merged, err := c.AddItem(productID, 3, 999)
		require.NoError(t, err)

		assert.Equal(t, first.ID(), merged.ID())
		assert.Equal(t, 5, merged.Quantity())
		assert.Equal(t, int64(250), merged.PriceCents())
		assert.Len(t, c.Items(), 1)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		c := cart.ReconstructCart(uuid.New(), customerID, nil)
		_, err := c.AddItem(uuid.New(), 0, 100)
		assert.ErrorIs(t, err, cart.ErrNonPositiveQuantity)
	})
}

func TestCartChangeQuantity(t *testing.T) {
	c := cart.ReconstructCart(uuid.New(), uuid.New(), nil)
	item, err := c.AddItem(uuid.New(), 2, 100)
	require.NoError(t, err)

	t.Run("updates the line", func(t *testing.T) {
		updated, err := c.ChangeQuantity(item.ID(), 7)
		require.NoError(t, err)
		assert.Equal(t, 7, updated.Quantity())
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := c.ChangeQuantity(uuid.New(), 1)
		assert.ErrorIs(t, err, cart.ErrItemNotFound)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		_, err := c.ChangeQuantity(item.ID(), 0)
		assert.ErrorIs(t, err, cart.ErrNonPositiveQuantity)
	})
}

func TestCartRemoveItem(t *testing.T) {
	c := cart.ReconstructCart(uuid.New(), uuid.New(), nil)
	item, err := c.AddItem(uuid.New(), 1, 100)
	require.NoError(t, err)

	require.NoError(t, c.RemoveItem(item.ID()))
	assert.True(t, c.IsEmpty())
	assert.ErrorIs(t, c.RemoveItem(item.ID()), cart.ErrItemNotFound)
}

func TestCartIsOwnedBy(t *testing.T) {
	customerID := uuid.New()
	c := cart.ReconstructCart(uuid.New(), customerID, nil)
	assert.True(t, c.IsOwnedBy(customerID))
	assert.False(t, c.IsOwnedBy(uuid.New()))
}
