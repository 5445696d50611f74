//go:build unit || e2e

package builder

import (
	reqdto "vetclinic/internal/handler/dto/request"
)

type AuthBuilder struct {
	Email    string
	Password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:    "petowner@example.com",
		Password: "password123",
	}
}

func (a *AuthBuilder) WithEmail(email string) *AuthBuilder {
	a.Email = email
	return a
}

func (a *AuthBuilder) WithPassword(password string) *AuthBuilder {
	a.Password = password
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}
