package domain

import (
	"time"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────────────────────────────────────
// UserRole
// ──────────────────────────────────────────────────────────────────────────────

// UserRole controls which marketplace surfaces a user can act on.
type UserRole string

const (
	RoleCreator UserRole = "CREATOR" // owns a creator profile, can launch projects
	RoleBrand   UserRole = "BRAND"   // owns a brand profile
	RoleFan     UserRole = "FAN"     // can invest in projects
)

// IsValid returns true if the role is one of the recognised marketplace roles.
func (r UserRole) IsValid() bool {
	return r == RoleCreator || r == RoleBrand || r == RoleFan
}

// ──────────────────────────────────────────────────────────────────────────────
// User
// ──────────────────────────────────────────────────────────────────────────────

// User is the domain entity for registered accounts.
type User struct {
	ID           uuid.UUID `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"` // never serialised
	Role         UserRole  `json:"role"       db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PublicProfile returns a user view safe to expose via API (no password hash).
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPublicProfile converts a User to its public-safe representation.
func (u *User) ToPublicProfile() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
