package domain

import (
	"errors"
	"time"
)

// User is an authenticated account.
type User struct {
	ID             string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Profile carries the role and market affiliation of a user. Its ID
// is the user's ID.
type Profile struct {
	ID        string
	Role      Role
	FullName  string
	MarketID  *string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Role determines which operations a user may perform.
type Role string

const (
	// RoleSeller records entries and requests payment confirmations
	RoleSeller Role = "seller"

	// RoleMarket reviews and resolves payment confirmations
	RoleMarket Role = "market"

	// RoleAdmin has full access
	RoleAdmin Role = "admin"
)

var validRoles = map[Role]bool{
	RoleSeller: true,
	RoleMarket: true,
	RoleAdmin:  true,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanRecord checks if the role can create and edit entries.
func (r Role) CanRecord() bool {
	return r == RoleSeller || r == RoleAdmin
}

// CanReview checks if the role can approve or reject confirmations.
func (r Role) CanReview() bool {
	return r == RoleMarket || r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
	ErrForbidden       = errors.New("insufficient role for this operation")
	ErrProfileNotFound = errors.New("profile not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("user with this email already exists")
)
