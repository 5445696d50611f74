package request

import (
	"strings"
	"time"

	"vetclinic/internal/domain/appointment"
	"vetclinic/internal/domain/user"

	"github.com/google/uuid"
)

type BookAppointmentRequest struct {
	PetID           uuid.UUID `json:"pet_id" binding:"required"`
	ProviderID      uuid.UUID `json:"provider_id" binding:"required"`
	ServiceType     string    `json:"service_type" binding:"required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	Reason          *string   `json:"reason,omitempty"`
}

func (r BookAppointmentRequest) ToDomain(actor user.Actor, now time.Time) (*appointment.Appointment, error) {
	serviceType, err := appointment.NewServiceType(r.ServiceType)
	if err != nil {
		return nil, err
	}
	slot, err := appointment.NewTimeSlot(r.StartTime, r.DurationMinutes)
	if err != nil {
		return nil, err
	}

	reason := ""
	if r.Reason != nil {
		reason = strings.TrimSpace(*r.Reason)
	}

	return appointment.NewAppointment(actor, r.PetID, r.ProviderID, serviceType, slot, reason, now)
}

type RescheduleAppointmentRequest struct {
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
}

type RejectAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}
