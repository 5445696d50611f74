package order

import "errors"

var (
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNoItems              = errors.New("order requires at least one item")
	ErrEmptyShippingAddress = errors.New("shipping address is required")
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// transitions: forward progression plus cancellation from any non-terminal
// state. Cancellation from DELIVERED is rejected; goods already left.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

func (p PaymentStatus) String() string {
	return string(p)
}

type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "CARD"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCard || m == PaymentMethodCashOnDelivery
}

func NewPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}
