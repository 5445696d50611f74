package cart

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	ErrItemNotFound        = errors.New("cart item not found")
	ErrNegativePrice       = errors.New("price cannot be negative")
)

// Item is one product line in a cart. The price is captured at the moment the
// item is added and is the price the customer pays at checkout.
type Item struct {
	id         uuid.UUID
	productID  uuid.UUID
	quantity   int
	priceCents int64
}

func NewItem(productID uuid.UUID, quantity int, priceCents int64) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrNonPositiveQuantity
	}
	if priceCents < 0 {
		return Item{}, ErrNegativePrice
	}
	return Item{
		id:         uuid.New(),
		productID:  productID,
		quantity:   quantity,
		priceCents: priceCents,
	}, nil
}

func ReconstructItem(id, productID uuid.UUID, quantity int, priceCents int64) Item {
	return Item{id: id, productID: productID, quantity: quantity, priceCents: priceCents}
}

func (i Item) ID() uuid.UUID        { return i.id }
func (i Item) ProductID() uuid.UUID { return i.productID }
func (i Item) Quantity() int        { return i.quantity }
func (i Item) PriceCents() int64    { return i.priceCents }

// Cart is mutable until checkout converts it into an immutable order.
// One cart per customer, created lazily.
type Cart struct {
	id         uuid.UUID
	customerID uuid.UUID
	items      []Item
}

func ReconstructCart(id, customerID uuid.UUID, items []Item) *Cart {
	return &Cart{id: id, customerID: customerID, items: items}
}

// AddItem merges quantity into an existing line for the same product, keeping
// the original captured price, or appends a new line.
func (c *Cart) AddItem(productID uuid.UUID, quantity int, priceCents int64) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrNonPositiveQuantity
	}
	for idx, existing := range c.items {
		if existing.productID == productID {
			c.items[idx].quantity += quantity
			return c.items[idx], nil
		}
	}
	item, err := NewItem(productID, quantity, priceCents)
	if err != nil {
		return Item{}, err
	}
	c.items = append(c.items, item)
	return item, nil
}

func (c *Cart) ChangeQuantity(itemID uuid.UUID, quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrNonPositiveQuantity
	}
	for idx, existing := range c.items {
		if existing.id == itemID {
			c.items[idx].quantity = quantity
			return c.items[idx], nil
		}
	}
	return Item{}, ErrItemNotFound
}

func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	for idx, existing := range c.items {
		if existing.id == itemID {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) IsOwnedBy(customerID uuid.UUID) bool {
	return c.customerID == customerID
}

func (c *Cart) ID() uuid.UUID         { return c.id }
func (c *Cart) CustomerID() uuid.UUID { return c.customerID }

func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}
