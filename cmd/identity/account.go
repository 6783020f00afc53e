package identity

import (
	"strings"
	"time"
)

// Role is the closed set of authorization roles. The route-level allow-lists
// in the API layer are expressed in terms of these values; there is no other
// role source.
type Role string

const (
	// RoleUser logs hours against clients/projects/tasks.
	RoleUser Role = "user"
	// RoleSupervisor manages projects and reviews hours for assigned projects.
	RoleSupervisor Role = "supervisor"
	// RoleAdmin manages accounts and has unrestricted access.
	RoleAdmin Role = "admin"
)

// ParseRole maps a wire string onto the closed role set.
// Unknown values are rejected rather than defaulted.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleSupervisor:
		return RoleSupervisor, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Account is TRB's canonical security principal.
// PasswordHash is a bcrypt hash; the plaintext is never stored.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool

	// ProfessionalID links the account to its professional profile, when one
	// exists. Carried into access-token claims so hour entries can be scoped
	// without a per-request lookup.
	ProfessionalID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Professional is the profile owning hour entries and project assignments.
type Professional struct {
	ID        string
	AccountID string
	FirstName string
	LastName  string
	Phone     *string
	Address   *string
	Active    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
