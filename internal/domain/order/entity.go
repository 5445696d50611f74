package order

import (
	"strings"
	"time"

	"vetclinic/internal/domain/cart"

	"github.com/google/uuid"
)

// Item is an immutable order line. The price is the one captured in the cart
// at the instant of checkout and is never recomputed.
type Item struct {
	productID  uuid.UUID
	quantity   int
	priceCents int64
}

func (i Item) ProductID() uuid.UUID { return i.productID }
func (i Item) Quantity() int        { return i.quantity }
func (i Item) PriceCents() int64    { return i.priceCents }

func ReconstructItem(productID uuid.UUID, quantity int, priceCents int64) Item {
	return Item{productID: productID, quantity: quantity, priceCents: priceCents}
}

// Order is the immutable outcome of a checkout. Only status and paymentStatus
// move after creation, and only through the transition table.
type Order struct {
	id              uuid.UUID
	customerID      uuid.UUID
	totalCents      int64
	status          Status
	paymentMethod   PaymentMethod
	paymentStatus   PaymentStatus
	shippingAddress string
	items           []Item
	createdAt       time.Time
	updatedAt       time.Time
}

// NewOrderFromCart snapshots cart lines into order lines and computes the
// total as the sum of quantity * captured price.
func NewOrderFromCart(
	customerID uuid.UUID,
	items []cart.Item,
	paymentMethod PaymentMethod,
	shippingAddress string,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if !paymentMethod.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		return nil, ErrEmptyShippingAddress
	}

	total, _ := NewMoney(0)
	orderItems := make([]Item, 0, len(items))
	for _, ci := range items {
		line, err := NewMoney(ci.PriceCents())
		if err != nil {
			return nil, err
		}
		total = total.Add(line.MultiplyBy(ci.Quantity()))
		orderItems = append(orderItems, Item{
			productID:  ci.ProductID(),
			quantity:   ci.Quantity(),
			priceCents: ci.PriceCents(),
		})
	}

	return &Order{
		id:              uuid.New(),
		customerID:      customerID,
		totalCents:      total.Cents(),
		status:          StatusPending,
		paymentMethod:   paymentMethod,
		paymentStatus:   PaymentUnpaid,
		shippingAddress: address,
		items:           orderItems,
	}, nil
}

func ReconstructOrder(
	id, customerID uuid.UUID,
	totalCents int64,
	status Status,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	shippingAddress string,
	items []Item,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:              id,
		customerID:      customerID,
		totalCents:      totalCents,
		status:          status,
		paymentMethod:   paymentMethod,
		paymentStatus:   paymentStatus,
		shippingAddress: shippingAddress,
		items:           items,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Cancel is the single gate for the compensating restock: it succeeds at most
// once per order, so the restock it triggers cannot be repeated.
func (o *Order) Cancel() error {
	if !o.status.CanTransitionTo(StatusCancelled) {
		return ErrInvalidTransition
	}
	o.status = StatusCancelled
	return nil
}

func (o *Order) AdvanceTo(next Status) error {
	if next == StatusCancelled {
		return o.Cancel()
	}
	if !o.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.status = next
	return nil
}

func (o *Order) MarkPaid() {
	o.paymentStatus = PaymentPaid
}

func (o *Order) IsOwnedBy(customerID uuid.UUID) bool {
	return o.customerID == customerID
}

func (o *Order) ID() uuid.UUID               { return o.id }
func (o *Order) CustomerID() uuid.UUID       { return o.customerID }
func (o *Order) TotalCents() int64           { return o.totalCents }
func (o *Order) Status() Status              { return o.status }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) ShippingAddress() string     { return o.shippingAddress }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) UpdatedAt() time.Time        { return o.updatedAt }

func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}
