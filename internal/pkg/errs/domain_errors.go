package errs

import "errors"

// Cross-layer sentinel errors. Commands mark low-level failures with these,
// handlers map them to HTTP statuses with errors.Is.
var (
	// Request shape errors
	ErrInvalidInput = errors.New("invalid input")

	// Scheduling errors
	ErrSlotConflict        = errors.New("slot conflict")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// Lifecycle errors
	ErrInvalidTransition = errors.New("invalid transition")

	// Fulfillment errors
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("empty cart")
	ErrCartNotFound      = errors.New("cart not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	// Ownership / permission errors
	ErrNotOwner  = errors.New("resource not owned by actor")
	ErrForbidden = errors.New("operation not permitted for role")

	// Store errors
	ErrPersistenceFailure = errors.New("persistence failure")
)
