package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT UNIQUE,
		password_hash TEXT NOT NULL,
		preferred_language TEXT NOT NULL DEFAULT 'en',
		login_attempts INTEGER NOT NULL DEFAULT 0,
		is_locked INTEGER NOT NULL DEFAULT 0,
		last_login INTEGER,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new user record.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	query := `
	INSERT INTO users (id, username, email, password_hash, preferred_language, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.PreferredLanguage, user.CreatedAt.Unix(),
	)
	if err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// mapConstraintError turns SQLite unique-constraint failures into the
// repository's sentinel errors.
func mapConstraintError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE") {
		if strings.Contains(msg, "username") {
			return ErrUsernameTaken
		}
		if strings.Contains(msg, "email") {
			return ErrEmailTaken
		}
	}
	return fmt.Errorf("insert user: %w", err)
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, email, password_hash, preferred_language,
		       login_attempts, is_locked, last_login, created_at
		FROM users WHERE username = ?`

	row := s.db.QueryRowContext(ctx, query, username)

	var user User
	var email sql.NullString
	var lastLogin sql.NullInt64
	var locked int
	var createdAt int64

	err := row.Scan(
		&user.ID, &user.Username, &email, &user.PasswordHash,
		&user.PreferredLanguage, &user.LoginAttempts, &locked,
		&lastLogin, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}

	user.Email = email.String
	user.Locked = locked != 0
	if lastLogin.Valid {
		user.LastLogin = time.Unix(lastLogin.Int64, 0)
	}
	user.CreatedAt = time.Unix(createdAt, 0)

	return &user, nil
}

// RecordLoginSuccess resets attempt tracking and stamps last_login.
func (s *SQLiteStore) RecordLoginSuccess(ctx context.Context, userID string) error {
	query := `
	UPDATE users SET login_attempts = 0, is_locked = 0, last_login = ?
	WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query, time.Now().Unix(), userID); err != nil {
		return fmt.Errorf("record login success: %w", err)
	}
	return nil
}

// RecordLoginFailure updates the attempt counter and lock flag.
func (s *SQLiteStore) RecordLoginFailure(ctx context.Context, userID string, attempts int, locked bool) error {
	lockedInt := 0
	if locked {
		lockedInt = 1
	}

	query := `UPDATE users SET login_attempts = ?, is_locked = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, attempts, lockedInt, userID); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}

// UpdatePreferredLanguage stores the user's language choice.
func (s *SQLiteStore) UpdatePreferredLanguage(ctx context.Context, userID string, language string) error {
	query := `UPDATE users SET preferred_language = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, language, userID)
	if err != nil {
		return fmt.Errorf("update preferred language: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}
