package response

import (
	"time"

	"vetclinic/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	PetID           uuid.UUID `json:"petId"`
	ProviderID      uuid.UUID `json:"providerId"`
	CreatorID       uuid.UUID `json:"creatorId"`
	ServiceType     string    `json:"serviceType"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Reason          *string   `json:"reason,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromAppointmentView(v *queries.AppointmentView) *AppointmentResponse {
	var resp AppointmentResponse
	copyView(&resp, v)
	return &resp
}

func FromAppointmentViews(views []*queries.AppointmentView) []*AppointmentResponse {
	out := make([]*AppointmentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromAppointmentView(v))
	}
	return out
}

type BookAppointmentResponse struct {
	ID uuid.UUID `json:"id"`
}
