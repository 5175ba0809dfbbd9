package entities

import "time"

// Role is the explicit user role replacing the legacy hardcoded
// operator identity.
type Role string

const (
	RoleMember   Role = "member"
	RoleOperator Role = "operator"
)

// User represents a registered user. Users are referenced by the
// listings and reviews they authored and are never cascade-deleted.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	AvatarURL    string    `json:"avatar_url" db:"avatar_url"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CanModerate reports whether the user may resolve reports and read
// contact messages.
func (u *User) CanModerate() bool {
	return u != nil && u.Role == RoleOperator
}
