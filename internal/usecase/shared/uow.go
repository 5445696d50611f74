package shared

import (
	"context"
	"time"

	"vetclinic/internal/domain/appointment"
	"vetclinic/internal/domain/order"
	"vetclinic/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: validation reads outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	Appointments() AppointmentRepository
	Inventory() InventoryRepository
	Carts() CartRepository
	Orders() OrderRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	CartForCustomer(ctx context.Context, customerID uuid.UUID) (*CartSnapshot, error)
	CartByID(ctx context.Context, cartID uuid.UUID) (*CartSnapshot, error)
	InventoryByProduct(ctx context.Context, productID uuid.UUID) (*InventorySnapshot, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, tx db.DBTX, appt *appointment.Appointment) (uuid.UUID, error)
	// LockProviderCalendar serializes concurrent bookings for one provider
	// within the surrounding transaction.
	LockProviderCalendar(ctx context.Context, tx db.DBTX, providerID uuid.UUID) error
	HasActiveOverlap(ctx context.Context, tx db.DBTX, providerID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error)
	FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*appointment.Appointment, error)
	Update(ctx context.Context, tx db.DBTX, appt *appointment.Appointment) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type InventoryRepository interface {
	// Reserve decrements registered quantity only when enough stock remains;
	// it never applies a partial decrement.
	Reserve(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int) error
	// Restock increments registered quantity and returns the new value.
	Restock(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int) (int, error)
}

type CartRepository interface {
	GetOrCreate(ctx context.Context, tx db.DBTX, customerID uuid.UUID) (uuid.UUID, error)
	// ItemsForUpdate locks the cart's item rows for the duration of the
	// transaction, blocking concurrent cart mutation during checkout.
	ItemsForUpdate(ctx context.Context, tx db.DBTX, cartID uuid.UUID) (*CartSnapshot, error)
	UpsertItem(ctx context.Context, tx db.DBTX, cartID uuid.UUID, itemID, productID uuid.UUID, quantity int, priceCents int64) error
	UpdateItemQuantity(ctx context.Context, tx db.DBTX, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, tx db.DBTX, itemID uuid.UUID) error
	Clear(ctx context.Context, tx db.DBTX, cartID uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, ord *order.Order) (uuid.UUID, error)
	FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status order.Status, paymentStatus order.PaymentStatus) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
