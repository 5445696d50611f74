//go:build unit || e2e

package builder

import (
	"vetclinic/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Email    string
	Role     string
	IsActive bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:    "test@example.com",
		Role:     "customer",
		IsActive: true,
	}
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       uuid.New(),
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
