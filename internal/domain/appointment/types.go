package appointment

import "errors"

var (
	ErrInvalidStatus      = errors.New("invalid appointment status")
	ErrInvalidServiceType = errors.New("invalid service type")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrEmptyRejectReason  = errors.New("rejection requires a reason")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsActive reports whether the appointment still occupies the provider's
// calendar. Only active appointments participate in conflict checks.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// transitions is the full state machine. Anything absent is rejected.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCompleted, StatusCancelled, StatusNoShow},
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

type ServiceType string

const (
	ServiceMedical  ServiceType = "MEDICAL"
	ServiceGrooming ServiceType = "GROOMING"
)

func (t ServiceType) String() string {
	return string(t)
}

func (t ServiceType) IsValid() bool {
	return t == ServiceMedical || t == ServiceGrooming
}

func NewServiceType(s string) (ServiceType, error) {
	t := ServiceType(s)
	if !t.IsValid() {
		return "", ErrInvalidServiceType
	}
	return t, nil
}
