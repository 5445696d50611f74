package readstore

import (
	"context"

	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	pool db.DBTX
}

func NewUserReadStore(pool db.DBTX) *UserReadStore {
	return &UserReadStore{pool: pool}
}

// FindByEmail returns the user view together with the stored password hash.
// The hash never leaves the usecase layer.
func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		v    queries.AuthorizedUserView
		hash string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, is_active
		FROM users
		WHERE email = $1
	`, email).Scan(&v.ID, &v.Email, &hash, &v.Role, &v.IsActive)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, "", errs.ErrInvalidCredentials
		}
		return nil, "", infra.WrapRepoErr("failed to find user", err)
	}
	return &v, hash, nil
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, role, is_active
		FROM users
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Email, &v.Role, &v.IsActive)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, errs.ErrUserNotFound
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &v, nil
}
