//go:build unit || e2e

package builder

import (
	"time"

	reqdto "vetclinic/internal/handler/dto/request"
	"vetclinic/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	PetID           uuid.UUID
	ProviderID      uuid.UUID
	CreatorID       uuid.UUID
	ServiceType     string
	StartTime       time.Time
	DurationMinutes int
	Status          string
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		PetID:           uuid.New(),
		ProviderID:      uuid.New(),
		CreatorID:       uuid.New(),
		ServiceType:     "MEDICAL",
		StartTime:       time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          "PENDING",
	}
}

func (a *AppointmentBuilder) WithCreator(creatorID uuid.UUID) *AppointmentBuilder {
	a.CreatorID = creatorID
	return a
}

func (a *AppointmentBuilder) WithStatus(status string) *AppointmentBuilder {
	a.Status = status
	return a
}

func (a *AppointmentBuilder) BuildDTO() reqdto.BookAppointmentRequest {
	return reqdto.BookAppointmentRequest{
		PetID:           a.PetID,
		ProviderID:      a.ProviderID,
		ServiceType:     a.ServiceType,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
	}
}

func (a *AppointmentBuilder) BuildReadModel() *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:              uuid.New(),
		PetID:           a.PetID,
		ProviderID:      a.ProviderID,
		CreatorID:       a.CreatorID,
		ServiceType:     a.ServiceType,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		EndTime:         a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute),
		Status:          a.Status,
	}
}
