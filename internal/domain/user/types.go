package user

import "errors"

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidEmail = errors.New("invalid email")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role carries clinic-staff privileges.
// Admins are staff for every guard that asks.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
