package shared

import (
	"time"

	"vetclinic/internal/domain/cart"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types.

// ProductSnapshot is the catalog view a checkout or cart mutation needs:
// existence and the current price.
type ProductSnapshot struct {
	ID         uuid.UUID
	Name       string
	PriceCents int64
	Active     bool
}

type CartSnapshot struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Items      []cart.Item
}

type InventorySnapshot struct {
	ProductID          uuid.UUID
	RegisteredQuantity int
	RealQuantity       int
	MinStockLevel      int
	MaxStockLevel      int
}

type AuthorizedUser struct {
	ID        uuid.UUID
	Email     string
	Role      string
	IsActive  bool
	LastLogin *time.Time
}
