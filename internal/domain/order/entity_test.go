//go:build unit

package order_test

import (
	"testing"
	"time"

	"vetclinic/internal/domain/cart"
	"vetclinic/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartItems(t *testing.T) []cart.Item {
	t.Helper()
	a, err := cart.NewItem(uuid.New(), 2, 1500)
	require.NoError(t, err)
	b, err := cart.NewItem(uuid.New(), 1, 300)
	require.NoError(t, err)
	return []cart.Item{a, b}
}

func reconstructOrder(status order.Status, items ...order.Item) *order.Order {
	if len(items) == 0 {
		items = []order.Item{order.ReconstructItem(uuid.New(), 1, 1000)}
	}
	return order.ReconstructOrder(
		uuid.New(), uuid.New(), 1000, status,
		order.PaymentMethodCard, order.PaymentUnpaid,
		"1 Clinic Way", items,
		time.Now(), time.Now(),
	)
}

func TestNewOrderFromCart(t *testing.T) {
	customerID := uuid.New()

	t.Run("totals the captured cart prices", func(t *testing.T) {
		items := cartItems(t)
		ord, err := order.NewOrderFromCart(customerID, items, order.PaymentMethodCard, "1 Clinic Way")
		require.NoError(t, err)

		assert.Equal(t, int64(2*1500+1*300), ord.TotalCents())
		assert.Equal(t, order.StatusPending, ord.Status())
		assert.Equal(t, order.PaymentUnpaid, ord.PaymentStatus())
		assert.True(t, ord.IsOwnedBy(customerID))
		require.Len(t, ord.Items(), 2)
		assert.Equal(t, items[0].ProductID(), ord.Items()[0].ProductID())
		assert.Equal(t, int64(1500), ord.Items()[0].PriceCents())
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		_, err := order.NewOrderFromCart(customerID, nil, order.PaymentMethodCard, "1 Clinic Way")
		assert.ErrorIs(t, err, order.ErrNoItems)
	})

	t.Run("invalid payment method is rejected", func(t *testing.T) {
		_, err := order.NewOrderFromCart(customerID, cartItems(t), order.PaymentMethod("WIRE"), "1 Clinic Way")
		assert.ErrorIs(t, err, order.ErrInvalidPaymentMethod)
	})

	t.Run("blank shipping address is rejected", func(t *testing.T) {
		_, err := order.NewOrderFromCart(customerID, cartItems(t), order.PaymentMethodCard, "   ")
		assert.ErrorIs(t, err, order.ErrEmptyShippingAddress)
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("pending order cancels", func(t *testing.T) {
		ord := reconstructOrder(order.StatusPending)
		require.NoError(t, ord.Cancel())
		assert.Equal(t, order.StatusCancelled, ord.Status())
	})

	t.Run("shipped order still cancels", func(t *testing.T) {
		ord := reconstructOrder(order.StatusShipped)
		assert.NoError(t, ord.Cancel())
	})

	t.Run("delivered order cannot cancel", func(t *testing.T) {
		ord := reconstructOrder(order.StatusDelivered)
		assert.ErrorIs(t, ord.Cancel(), order.ErrInvalidTransition)
		assert.Equal(t, order.StatusDelivered, ord.Status())
	})

	t.Run("second cancel fails", func(t *testing.T) {
		ord := reconstructOrder(order.StatusPending)
		require.NoError(t, ord.Cancel())
		assert.ErrorIs(t, ord.Cancel(), order.ErrInvalidTransition)
	})
}

func TestOrderAdvanceTo(t *testing.T) {
	cases := []struct {
		name    string
		from    order.Status
		to      order.Status
		wantErr bool
	}{
		{name: "pending to processing", from: order.StatusPending, to: order.StatusProcessing},
		{name: "processing to shipped", from: order.StatusProcessing, to: order.StatusShipped},
		{name: "shipped to delivered", from: order.StatusShipped, to: order.StatusDelivered},
		{name: "pending cannot skip to shipped", from: order.StatusPending, to: order.StatusShipped, wantErr: true},
		{name: "delivered is terminal", from: order.StatusDelivered, to: order.StatusProcessing, wantErr: true},
		{name: "no backwards movement", from: order.StatusShipped, to: order.StatusProcessing, wantErr: true},
		{name: "advance to cancelled routes through cancel", from: order.StatusProcessing, to: order.StatusCancelled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ord := reconstructOrder(tc.from)
			err := ord.AdvanceTo(tc.to)
			if tc.wantErr {
				assert.ErrorIs(t, err, order.ErrInvalidTransition)
				assert.Equal(t, tc.from, ord.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, ord.Status())
		})
	}
}

func TestOrderMarkPaid(t *testing.T) {
	ord := reconstructOrder(order.StatusPending)
	ord.MarkPaid()
	assert.Equal(t, order.PaymentPaid, ord.PaymentStatus())
}

func TestOrderItemsReturnsCopy(t *testing.T) {
	ord := reconstructOrder(order.StatusPending)
	items := ord.Items()
	items[0] = order.ReconstructItem(uuid.New(), 99, 1)
	assert.NotEqual(t, 99, ord.Items()[0].Quantity())
}
