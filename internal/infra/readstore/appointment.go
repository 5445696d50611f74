package readstore

import (
	"context"
	"time"

	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentReadStore struct {
	pool db.DBTX
}

func NewAppointmentReadStore(pool db.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{pool: pool}
}

const appointmentViewColumns = `
	id, pet_id, provider_id, creator_id, service_type, start_time,
	duration_minutes, reason, notes, status, created_at, updated_at`

func scanAppointmentView(row pgxRow) (*queries.AppointmentView, error) {
	var v queries.AppointmentView
	err := row.Scan(
		&v.ID, &v.PetID, &v.ProviderID, &v.CreatorID, &v.ServiceType, &v.StartTime,
		&v.DurationMinutes, &v.Reason, &v.Notes, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.EndTime = v.StartTime.Add(time.Duration(v.DurationMinutes) * time.Minute)
	return &v, nil
}

func (s *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT`+appointmentViewColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	v, err := scanAppointmentView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, errs.ErrAppointmentNotFound
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}
	return v, nil
}

func (s *AppointmentReadStore) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*queries.AppointmentView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT`+appointmentViewColumns+`
		FROM appointments
		WHERE creator_id = $1
		ORDER BY start_time DESC
	`, creatorID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	var views []*queries.AppointmentView
	for rows.Next() {
		v, err := scanAppointmentView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err)
		}
		views = append(views, v)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", rows.Err())
	}
	return views, nil
}

func (s *AppointmentReadStore) FindByProviderBetween(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*queries.AppointmentView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT`+appointmentViewColumns+`
		FROM appointments
		WHERE provider_id = $1
		  AND start_time >= $2
		  AND start_time < $3
		ORDER BY start_time
	`, providerID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list provider appointments", err)
	}
	defer rows.Close()

	var views []*queries.AppointmentView
	for rows.Next() {
		v, err := scanAppointmentView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err)
		}
		views = append(views, v)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to list provider appointments", rows.Err())
	}
	return views, nil
}
