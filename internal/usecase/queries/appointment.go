package queries

import (
	"context"
	"time"

	"vetclinic/internal/domain/user"
	"vetclinic/internal/pkg/errs"

	"github.com/google/uuid"
)

type AppointmentQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*AppointmentView, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*AppointmentView, error)
	// ListByProviderDay is the staff view of one provider's calendar day.
	ListByProviderDay(ctx context.Context, actor user.Actor, providerID uuid.UUID, day time.Time) ([]*AppointmentView, error)
}

type AppointmentViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*AppointmentView, error)
	FindByProviderBetween(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*AppointmentView, error)
}

type appointmentQueriesImpl struct {
	repo AppointmentViewRepo
}

func NewAppointmentQueries(repo AppointmentViewRepo) AppointmentQueries {
	return &appointmentQueriesImpl{repo: repo}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*AppointmentView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && view.CreatorID != actor.ID {
		return nil, errs.ErrNotOwner
	}
	return view, nil
}

func (q *appointmentQueriesImpl) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*AppointmentView, error) {
	return q.repo.FindByCreator(ctx, customerID)
}

func (q *appointmentQueriesImpl) ListByProviderDay(ctx context.Context, actor user.Actor, providerID uuid.UUID, day time.Time) ([]*AppointmentView, error) {
	if !actor.IsStaff() {
		return nil, errs.ErrForbidden
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)
	return q.repo.FindByProviderBetween(ctx, providerID, from, to)
}
