package response

import (
	"vetclinic/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	UserID       uuid.UUID `json:"userId"`
}

type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type MeResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"isActive"`
}

func FromAuthorizedUserView(v *queries.AuthorizedUserView) *MeResponse {
	return &MeResponse{
		ID:       v.ID,
		Email:    v.Email,
		Role:     v.Role,
		IsActive: v.IsActive,
	}
}
