package repository

import (
	"context"
	"time"

	"vetclinic/internal/domain/appointment"
	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"

	"github.com/google/uuid"
)

type AppointmentRepository struct{}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{}
}

func (r *AppointmentRepository) Create(ctx context.Context, tx db.DBTX, appt *appointment.Appointment) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO appointments
			(id, pet_id, provider_id, creator_id, service_type, start_time, duration_minutes, reason, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, appt.ID(), appt.PetID(), appt.ProviderID(), appt.CreatorID(), appt.ServiceType().String(),
		appt.Slot().Start(), appt.Slot().DurationMinutes(), appt.Reason(), appt.Notes(), appt.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create appointment", err)
	}
	return id, nil
}

// LockProviderCalendar takes a transaction-scoped advisory lock keyed on the
// provider id. Concurrent bookings for the same provider queue behind it, so
// the overlap re-check that follows sees every committed row.
func (r *AppointmentRepository) LockProviderCalendar(ctx context.Context, tx db.DBTX, providerID uuid.UUID) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, providerID)
	if err != nil {
		return infra.WrapRepoErr("failed to lock provider calendar", err)
	}
	return nil
}

func (r *AppointmentRepository) HasActiveOverlap(ctx context.Context, tx db.DBTX, providerID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM appointments
			WHERE provider_id = $1
				AND status IN ('PENDING', 'APPROVED')
				AND start_time < $3
				AND start_time + make_interval(mins => duration_minutes) > $2
				AND id <> $4
		)
	`, providerID, start, end, excludeID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check calendar overlap", err)
	}
	return exists, nil
}

func (r *AppointmentRepository) FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*appointment.Appointment, error) {
	var (
		apptID, petID, providerID, creatorID uuid.UUID
		serviceType, reason, notes, status   string
		startTime                            time.Time
		durationMinutes                      int
		createdAt, updatedAt                 time.Time
	)
	err := tx.QueryRow(ctx, `
		SELECT id, pet_id, provider_id, creator_id, service_type, start_time, duration_minutes,
			COALESCE(reason, ''), COALESCE(notes, ''), status, created_at, updated_at
		FROM appointments
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(
		&apptID, &petID, &providerID, &creatorID, &serviceType,
		&startTime, &durationMinutes, &reason, &notes, &status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}

	slot, err := appointment.NewTimeSlot(startTime, durationMinutes)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt appointment slot", err)
	}
	st, err := appointment.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt appointment status", err)
	}
	svc, err := appointment.NewServiceType(serviceType)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt appointment service type", err)
	}

	return appointment.ReconstructAppointment(
		apptID, petID, providerID, creatorID,
		svc, slot, reason, notes, st,
		createdAt, updatedAt,
	), nil
}

func (r *AppointmentRepository) Update(ctx context.Context, tx db.DBTX, appt *appointment.Appointment) error {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET provider_id = $2,
			start_time = $3,
			duration_minutes = $4,
			notes = $5,
			status = $6,
			updated_at = now()
		WHERE id = $1
	`, appt.ID(), appt.ProviderID(), appt.Slot().Start(), appt.Slot().DurationMinutes(),
		appt.Notes(), appt.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}
