package model

import "time"

// UserID identifies a registered user
type UserID int64

// Role is the coarse permission tag on a user
type Role string

// Known roles
const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RolePlayer
}

// User is a registered account. PasswordHash is a bcrypt hash and is never
// exposed to clients.
type User struct {
	ID           UserID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
