// Package auth implements account registration and login with
// attempt-based lockout.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lokbasha/lokbasha/internal/store"
	"github.com/rs/zerolog/log"
)

// maxLoginAttempts is the failure count at which an account locks.
const maxLoginAttempts = 5

var (
	// ErrInvalidCredentials is returned for a bad username or password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountLocked is returned once maxLoginAttempts failures accrue.
	ErrAccountLocked = errors.New("account is temporarily locked due to multiple failed attempts")
)

type Service struct {
	repo store.Repository
}

func NewService(repo store.Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the new account and creates it. An empty language
// defaults to English; the choice can be changed later.
func (s *Service) Register(ctx context.Context, username, email, password, language string) (*store.User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	if language == "" {
		language = "en"
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &store.User{
		ID:                uuid.New().String(),
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		PreferredLanguage: language,
		CreatedAt:         time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("username", username).Msg("Account created")
	return user, nil
}

// Login authenticates a user. Failed attempts are counted per account
// and the account locks after maxLoginAttempts failures; a later
// successful login is only possible once the lock is cleared by an
// operator or a successful reset.
func (s *Service) Login(ctx context.Context, username, password string) (*store.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if user.Locked {
		log.Warn().Str("username", username).Msg("Login attempt on locked account")
		return nil, ErrAccountLocked
	}

	if !VerifyPassword(password, user.PasswordHash) {
		attempts := user.LoginAttempts + 1
		locked := attempts >= maxLoginAttempts
		if err := s.repo.RecordLoginFailure(ctx, user.ID, attempts, locked); err != nil {
			log.Error().Err(err).Str("username", username).Msg("Failed to record login failure")
		}
		if locked {
			log.Warn().Str("username", username).Msg("Account locked after repeated failures")
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.RecordLoginSuccess(ctx, user.ID); err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to record login success")
	}

	return user, nil
}

// SetPreferredLanguage stores the user's language choice.
func (s *Service) SetPreferredLanguage(ctx context.Context, userID, language string) error {
	return s.repo.UpdatePreferredLanguage(ctx, userID, language)
}
