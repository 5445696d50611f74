package queries

import (
	"context"

	"vetclinic/internal/domain/user"
	"vetclinic/internal/pkg/errs"

	"github.com/google/uuid"
)

type OrderQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*OrderView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*OrderListItem, error)
}

type OrderViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*OrderListItem, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*OrderView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && view.CustomerID != actor.ID {
		return nil, errs.ErrNotOwner
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*OrderListItem, error) {
	return q.repo.FindByCustomer(ctx, customerID)
}
