package domain

import "time"

// Role is the kind of account a user holds.
type Role string

const (
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleRider || r == RoleDriver
}

// User represents a rider or a driver.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
