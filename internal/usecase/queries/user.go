package queries

import (
	"context"

	"vetclinic/internal/pkg/errs"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{readStore: readStore}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !view.IsActive {
		return nil, errs.ErrForbidden
	}
	return view, nil
}
