// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BirthDateLayout is the wire format accepted for a user's birth date (DD.MM.YYYY).
const BirthDateLayout = "02.01.2006"

// UserRole represents the authorization role of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User represents a user in the Finance Tracker system.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	BirthDate    time.Time
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with the default role.
func NewUser(firstName, lastName, email, passwordHash string, birthDate time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		BirthDate:    birthDate,
		Role:         UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// FullName returns the name used to address the user.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ParseBirthDate parses a DD.MM.YYYY birth date.
func ParseBirthDate(value string) (time.Time, error) {
	return time.ParseInLocation(BirthDateLayout, strings.TrimSpace(value), time.UTC)
}
