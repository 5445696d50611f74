package user

import (
	"strings"

	"github.com/google/uuid"
)

// Actor is the authenticated identity attached to every guarded operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func NewActor(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor is the owner of a customer-scoped resource.
func (a Actor) Owns(customerID uuid.UUID) bool {
	return a.ID == customerID
}

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" || !strings.Contains(trimmed, "@") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: trimmed}, nil
}

func (e Email) Value() string {
	return e.value
}

type Credentials struct {
	email    Email
	password string
}

func NewCredentials(email, password string) (Credentials, error) {
	e, err := NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{email: e, password: password}, nil
}

func (c Credentials) Email() Email {
	return c.email
}

func (c Credentials) Password() string {
	return c.password
}
