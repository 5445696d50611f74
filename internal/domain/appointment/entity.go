package appointment

import (
	"strings"
	"time"

	"vetclinic/internal/domain/user"

	"github.com/google/uuid"
)

// Appointment is a claim on one provider's calendar. The calendar invariant
// (no two active appointments for a provider may overlap) is enforced at
// persistence time under a provider-scoped lock; this aggregate owns the
// lifecycle state machine.
type Appointment struct {
	id          uuid.UUID
	petID       uuid.UUID
	providerID  uuid.UUID
	creatorID   uuid.UUID
	serviceType ServiceType
	slot        TimeSlot
	reason      string
	notes       string
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// NewAppointment builds the aggregate for a booking request. Staff-created
// appointments start APPROVED; customer-created ones await staff review.
func NewAppointment(
	actor user.Actor,
	petID, providerID uuid.UUID,
	serviceType ServiceType,
	slot TimeSlot,
	reason string,
	now time.Time,
) (*Appointment, error) {
	if !serviceType.IsValid() {
		return nil, ErrInvalidServiceType
	}
	if err := slot.ValidateBookable(now, actor.IsStaff()); err != nil {
		return nil, err
	}

	status := StatusPending
	if actor.IsStaff() {
		status = StatusApproved
	}

	return &Appointment{
		id:          uuid.New(),
		petID:       petID,
		providerID:  providerID,
		creatorID:   actor.ID,
		serviceType: serviceType,
		slot:        slot,
		reason:      strings.TrimSpace(reason),
		status:      status,
	}, nil
}

func ReconstructAppointment(
	id, petID, providerID, creatorID uuid.UUID,
	serviceType ServiceType,
	slot TimeSlot,
	reason, notes string,
	status Status,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:          id,
		petID:       petID,
		providerID:  providerID,
		creatorID:   creatorID,
		serviceType: serviceType,
		slot:        slot,
		reason:      reason,
		notes:       notes,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (a *Appointment) transitionTo(next Status) error {
	if !a.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	a.status = next
	return nil
}

func (a *Appointment) Approve() error {
	return a.transitionTo(StatusApproved)
}

func (a *Appointment) Reject(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyRejectReason
	}
	if err := a.transitionTo(StatusRejected); err != nil {
		return err
	}
	a.notes = strings.TrimSpace(reason)
	return nil
}

func (a *Appointment) Complete() error {
	return a.transitionTo(StatusCompleted)
}

func (a *Appointment) Cancel() error {
	return a.transitionTo(StatusCancelled)
}

func (a *Appointment) MarkNoShow() error {
	return a.transitionTo(StatusNoShow)
}

// Reschedule moves an APPROVED appointment to a new slot. Conflict checking
// against the new window is the caller's job; the aggregate only guards the
// lifecycle state.
func (a *Appointment) Reschedule(slot TimeSlot) error {
	if a.status != StatusApproved {
		return ErrInvalidTransition
	}
	a.slot = slot
	return nil
}

func (a *Appointment) IsActive() bool {
	return a.status.IsActive()
}

func (a *Appointment) ID() uuid.UUID            { return a.id }
func (a *Appointment) PetID() uuid.UUID         { return a.petID }
func (a *Appointment) ProviderID() uuid.UUID    { return a.providerID }
func (a *Appointment) CreatorID() uuid.UUID     { return a.creatorID }
func (a *Appointment) ServiceType() ServiceType { return a.serviceType }
func (a *Appointment) Slot() TimeSlot           { return a.slot }
func (a *Appointment) Reason() string           { return a.reason }
func (a *Appointment) Notes() string            { return a.notes }
func (a *Appointment) Status() Status           { return a.status }
func (a *Appointment) CreatedAt() time.Time     { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time     { return a.updatedAt }
