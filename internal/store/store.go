// Package store provides persistence for user accounts.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// User is a registered account.
type User struct {
	ID                string
	Username          string
	Email             string
	PasswordHash      string
	PreferredLanguage string
	LoginAttempts     int
	Locked            bool
	LastLogin         time.Time
	CreatedAt         time.Time
}

// Repository defines the interface for persisting user accounts.
type Repository interface {
	// CreateUser inserts a new user. Duplicate usernames and emails
	// return ErrUsernameTaken and ErrEmailTaken respectively.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByUsername retrieves a user, or nil when not found.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// RecordLoginSuccess resets the attempt counter, unlocks the account
	// and stamps last_login.
	RecordLoginSuccess(ctx context.Context, userID string) error

	// RecordLoginFailure increments the attempt counter and locks the
	// account when locked is true.
	RecordLoginFailure(ctx context.Context, userID string, attempts int, locked bool) error

	// UpdatePreferredLanguage stores the user's language choice.
	UpdatePreferredLanguage(ctx context.Context, userID string, language string) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
