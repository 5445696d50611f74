package repository

import (
	"context"

	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE users
		SET last_login = now()
		WHERE id = $1
	`, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
