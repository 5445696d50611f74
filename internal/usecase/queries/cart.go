package queries

import (
	"context"

	"github.com/google/uuid"
)

type CartQueries interface {
	GetForCustomer(ctx context.Context, customerID uuid.UUID) (*CartView, error)
}

type CartViewRepo interface {
	ForCustomer(ctx context.Context, customerID uuid.UUID) (*CartView, error)
}

type cartQueriesImpl struct {
	repo CartViewRepo
}

func NewCartQueries(repo CartViewRepo) CartQueries {
	return &cartQueriesImpl{repo: repo}
}

func (q *cartQueriesImpl) GetForCustomer(ctx context.Context, customerID uuid.UUID) (*CartView, error) {
	return q.repo.ForCustomer(ctx, customerID)
}
