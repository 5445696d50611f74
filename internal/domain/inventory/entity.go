package inventory

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveQuantity  = errors.New("quantity must be positive")
	ErrInsufficientQuantity = errors.New("insufficient registered quantity")
	ErrNegativeStockLevel   = errors.New("stock level cannot be negative")
)

// Record tracks the sellable quantity for one product. registeredQuantity is
// the source of truth for checkout; realQuantity is the last physical count
// taken by staff and may drift until the next stocktake.
type Record struct {
	productID          uuid.UUID
	registeredQuantity int
	realQuantity       int
	minStockLevel      int
	maxStockLevel      int
}

func NewRecord(productID uuid.UUID, registered, real, minLevel, maxLevel int) (*Record, error) {
	if registered < 0 || real < 0 || minLevel < 0 || maxLevel < 0 {
		return nil, ErrNegativeStockLevel
	}
	return &Record{
		productID:          productID,
		registeredQuantity: registered,
		realQuantity:       real,
		minStockLevel:      minLevel,
		maxStockLevel:      maxLevel,
	}, nil
}

// Reserve decrements the registered quantity. On failure the record is left
// untouched so a caller can roll up the error without compensating.
func (r *Record) Reserve(qty int) error {
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	if r.registeredQuantity < qty {
		return ErrInsufficientQuantity
	}
	r.registeredQuantity -= qty
	return nil
}

// Restock increments the registered quantity. Exceeding maxStockLevel is
// allowed; the caller decides whether that deserves a warning.
func (r *Record) Restock(qty int) error {
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	r.registeredQuantity += qty
	return nil
}

func (r *Record) IsLowStock() bool {
	return r.registeredQuantity <= r.minStockLevel
}

func (r *Record) ExceedsMaxAfter(qty int) bool {
	return r.registeredQuantity+qty > r.maxStockLevel
}

func (r *Record) ProductID() uuid.UUID    { return r.productID }
func (r *Record) RegisteredQuantity() int { return r.registeredQuantity }
func (r *Record) RealQuantity() int       { return r.realQuantity }
func (r *Record) MinStockLevel() int      { return r.minStockLevel }
func (r *Record) MaxStockLevel() int      { return r.maxStockLevel }
