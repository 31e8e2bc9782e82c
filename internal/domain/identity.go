package domain

import "time"

// Role is the access level carried by an account and its session.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleFieldAgent Role = "vigia"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleFieldAgent
}

// Identity is the verified claim set of a session token.
type Identity struct {
	UserID    int64
	Email     string
	Name      string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsAdmin reports whether the identity holds the administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IdentityFromAccount builds the claim set to be signed for a.
func IdentityFromAccount(a *Account) Identity {
	return Identity{
		UserID: a.ID,
		Email:  a.Email,
		Name:   a.Name,
		Role:   a.Role,
	}
}
