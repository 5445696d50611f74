package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type AppointmentView struct {
	ID              uuid.UUID `json:"id"`
	PetID           uuid.UUID `json:"pet_id"`
	ProviderID      uuid.UUID `json:"provider_id"`
	CreatorID       uuid.UUID `json:"creator_id"`
	ServiceType     string    `json:"service_type"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	EndTime         time.Time `json:"end_time"`
	Reason          *string   `json:"reason,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CartItemView struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	PriceCents  int64     `json:"price_cents"`
}

type CartView struct {
	ID         uuid.UUID      `json:"id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	Items      []CartItemView `json:"items"`
	TotalCents int64          `json:"total_cents"`
}

type OrderItemView struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	PriceCents  int64     `json:"price_cents"`
}

type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	TotalCents      int64           `json:"total_cents"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []OrderItemView `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderListItem struct {
	ID         uuid.UUID `json:"id"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type InventoryView struct {
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	RegisteredQuantity int       `json:"registered_quantity"`
	RealQuantity       int       `json:"real_quantity"`
	MinStockLevel      int       `json:"min_stock_level"`
	MaxStockLevel      int       `json:"max_stock_level"`
	LowStock           bool      `json:"low_stock"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
