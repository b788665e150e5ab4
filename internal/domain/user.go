package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperadmin
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        *string   `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperadmin
}

type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

type ProfilePatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

func (p ProfilePatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil
}

// UserPatch is the admin variant of ProfilePatch.
type UserPatch struct {
	ProfilePatch
	Role     *Role `json:"role"`
	IsActive *bool `json:"is_active"`
}

func (p UserPatch) Empty() bool {
	return p.ProfilePatch.Empty() && p.Role == nil && p.IsActive == nil
}

type UserFilter struct {
	Role   *Role
	Search *string
	Page   Page
}

// ResetToken is a single-use password reset credential.
type ResetToken struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}
