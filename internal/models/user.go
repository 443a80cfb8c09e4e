package models

import (
	"time"
)

// Role is an actor's editorial role
type Role string

const (
	RoleAuthor     Role = "author"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[Role]bool{
	RoleAuthor:     true,
	RoleEditor:     true,
	RoleAdmin:      true,
	RoleSuperAdmin: true,
}

// CanPublish reports whether the role may publish or schedule directly.
// Authors are always excluded regardless of other attributes.
func (r Role) CanPublish() bool {
	return r == RoleEditor || r == RoleAdmin || r == RoleSuperAdmin
}

// CanReview reports whether the role may act on the editorial queue
func (r Role) CanReview() bool {
	return r == RoleEditor || r == RoleAdmin || r == RoleSuperAdmin
}

// User represents an actor in the editorial system
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      Role      `json:"role" db:"role"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
