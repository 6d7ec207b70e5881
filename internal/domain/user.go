package domain

import "time"

// UserRole enumerates portal roles.
type UserRole string

const (
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleClient     UserRole = "CLIENT"
	UserRoleTechnician UserRole = "TECHNICIAN"
)

// UserStatus represents account lifecycle states.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for every portal account: admins who dispatch,
// technicians who work jobs and clients who follow their requests.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
