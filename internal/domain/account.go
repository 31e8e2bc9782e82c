package domain

import (
	"strings"
	"time"
)

// Account is a person allowed to sign in.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}

// CreateAccountRequest holds the input for creating an account.
type CreateAccountRequest struct {
	Email    string
	Password string
	Name     string
	Role     Role
}

// Validate checks that every mandatory field is present and the role is known.
func (r *CreateAccountRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	if r.Email == "" || r.Password == "" || r.Name == "" || r.Role == "" {
		return ErrValidation("email, password, nome and role are required")
	}
	if !r.Role.Valid() {
		return ErrValidation("role must be %q or %q", RoleAdmin, RoleFieldAgent)
	}
	return nil
}

// UpdateAccountRequest holds a full replacement of an account's mutable fields.
// An empty Password keeps the stored digest.
type UpdateAccountRequest struct {
	Email    string
	Name     string
	Role     Role
	Active   *bool
	Password string
}

// Validate checks that every mandatory field is present and the role is known.
func (r *UpdateAccountRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	if r.Email == "" || r.Name == "" || r.Role == "" || r.Active == nil {
		return ErrValidation("email, nome, role and active are required")
	}
	if !r.Role.Valid() {
		return ErrValidation("role must be %q or %q", RoleAdmin, RoleFieldAgent)
	}
	return nil
}

// AccountUpdate is the row replacement applied by the store.
// A nil PasswordHash leaves the stored digest untouched.
type AccountUpdate struct {
	Email        string
	Name         string
	Role         Role
	Active       bool
	PasswordHash *string
}
