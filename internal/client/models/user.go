// Package models defines the wire types exchanged with the dispatch backend.
package models

import "time"

// Role is the account type assigned at registration.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleMechanic Role = "MECHANIC"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleMechanic, RoleAdmin:
		return true
	}
	return false
}

// User is the account record owned by the backend and cached locally.
type User struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Role      Role       `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// TokenPair is the access/refresh token pair issued on login or registration.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthResponse is returned by the register and login endpoints.
type AuthResponse struct {
	User    *User      `json:"user"`
	Tokens  *TokenPair `json:"tokens"`
	Message string     `json:"message,omitempty"`
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Role      Role   `json:"role"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries a partial user update; nil fields are not sent.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}
