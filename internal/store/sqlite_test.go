package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) Repository {
	t.Helper()

	repo, err := NewSQLite(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testUser(username, email string) *User {
	return &User{
		ID:                uuid.New().String(),
		Username:          username,
		Email:             email,
		PasswordHash:      "not-a-real-hash",
		PreferredLanguage: "hi",
		CreatedAt:         time.Now(),
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create and fetch user", func(t *testing.T) {
		repo := newTestStore(t)
		user := testUser("asha", "asha@example.org")

		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := repo.GetUserByUsername(ctx, "asha")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected user, got nil")
		}
		if got.Email != "asha@example.org" {
			t.Errorf("Got email %s, want asha@example.org", got.Email)
		}
		if got.PreferredLanguage != "hi" {
			t.Errorf("Got preferred language %s, want hi", got.PreferredLanguage)
		}
		if got.Locked {
			t.Error("New user should not be locked")
		}
	})

	t.Run("missing user returns nil", func(t *testing.T) {
		repo := newTestStore(t)

		got, err := repo.GetUserByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for missing user, got %+v", got)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := newTestStore(t)

		if err := repo.CreateUser(ctx, testUser("ravi", "ravi@example.org")); err != nil {
			t.Fatalf("First CreateUser failed: %v", err)
		}
		err := repo.CreateUser(ctx, testUser("ravi", "other@example.org"))
		if !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("Got error %v, want ErrUsernameTaken", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newTestStore(t)

		if err := repo.CreateUser(ctx, testUser("meena", "shared@example.org")); err != nil {
			t.Fatalf("First CreateUser failed: %v", err)
		}
		err := repo.CreateUser(ctx, testUser("kumar", "shared@example.org"))
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("Got error %v, want ErrEmailTaken", err)
		}
	})

	t.Run("login failure tracking and lockout", func(t *testing.T) {
		repo := newTestStore(t)
		user := testUser("lata", "lata@example.org")
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		if err := repo.RecordLoginFailure(ctx, user.ID, 5, true); err != nil {
			t.Fatalf("RecordLoginFailure failed: %v", err)
		}

		got, _ := repo.GetUserByUsername(ctx, "lata")
		if got.LoginAttempts != 5 {
			t.Errorf("Got %d attempts, want 5", got.LoginAttempts)
		}
		if !got.Locked {
			t.Error("Expected account to be locked")
		}

		if err := repo.RecordLoginSuccess(ctx, user.ID); err != nil {
			t.Fatalf("RecordLoginSuccess failed: %v", err)
		}
		got, _ = repo.GetUserByUsername(ctx, "lata")
		if got.Locked || got.LoginAttempts != 0 {
			t.Errorf("Expected unlock and reset, got locked=%v attempts=%d", got.Locked, got.LoginAttempts)
		}
		if got.LastLogin.IsZero() {
			t.Error("Expected last_login to be stamped")
		}
	})

	t.Run("update preferred language", func(t *testing.T) {
		repo := newTestStore(t)
		user := testUser("vijay", "vijay@example.org")
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		if err := repo.UpdatePreferredLanguage(ctx, user.ID, "ta"); err != nil {
			t.Fatalf("UpdatePreferredLanguage failed: %v", err)
		}
		got, _ := repo.GetUserByUsername(ctx, "vijay")
		if got.PreferredLanguage != "ta" {
			t.Errorf("Got language %s, want ta", got.PreferredLanguage)
		}

		if err := repo.UpdatePreferredLanguage(ctx, "missing-id", "ta"); err == nil {
			t.Error("Expected error for unknown user")
		}
	})
}
