// Package session manages cookie-bound JWT sessions and the per-session
// conversation history shown in the chat widget.
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lokbasha/lokbasha/internal/config"
	"github.com/lokbasha/lokbasha/internal/infrastructure/genai"
	"github.com/lokbasha/lokbasha/internal/infrastructure/redis"
	"github.com/rs/zerolog/log"
)

const (
	cookieLifetime = 1 * time.Hour
	// maxHistoryMessages bounds the stored conversation so the prompt
	// context cannot grow without limit.
	maxHistoryMessages = 40
)

type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	UserID    string `json:"uid,omitempty"`
	Username  string `json:"name,omitempty"`
	Language  string `json:"lang,omitempty"`
}

type SessionStore interface {
	Set(ctx context.Context, sessionID string, claims *SessionClaims) error
	Get(ctx context.Context, sessionID string) (*SessionClaims, error)
	Delete(ctx context.Context, sessionID string) error
	SetHistory(ctx context.Context, sessionID string, history []genai.Message) error
	GetHistory(ctx context.Context, sessionID string) ([]genai.Message, error)
}

type RedisStore struct {
	redisService *redis.Service
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*SessionClaims
	history  map[string][]genai.Message
}

type Service struct {
	store SessionStore
}

func NewService(redisService *redis.Service) *Service {
	var store SessionStore
	if redisService != nil {
		// Test Redis connection
		ctx := context.Background()
		if err := redisService.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable - falling back to in-memory sessions")
			store = newMemoryStore()
		} else {
			store = &RedisStore{redisService: redisService}
		}
	} else {
		store = newMemoryStore()
	}

	return &Service{store: store}
}

func newMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*SessionClaims),
		history:  make(map[string][]genai.Message),
	}
}

// Redis store implementation

func (rs *RedisStore) Set(ctx context.Context, sessionID string, claims *SessionClaims) error {
	data, err := json.Marshal(claims)
	if err != nil {
		return err
	}
	return rs.redisService.Set(ctx, "sess:"+sessionID, string(data), cookieLifetime)
}

func (rs *RedisStore) Get(ctx context.Context, sessionID string) (*SessionClaims, error) {
	data, err := rs.redisService.Get(ctx, "sess:"+sessionID)
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, nil
	}

	var claims SessionClaims
	if err := json.Unmarshal([]byte(data), &claims); err != nil {
		return nil, err
	}

	// Activity slides the expiration so a live widget conversation is
	// not cut off mid-session.
	if err := rs.redisService.Expire(ctx, "sess:"+sessionID, cookieLifetime); err != nil {
		log.Debug().Err(err).Msg("Failed to refresh session TTL")
	}
	if err := rs.redisService.Expire(ctx, "hist:"+sessionID, cookieLifetime); err != nil {
		log.Debug().Err(err).Msg("Failed to refresh history TTL")
	}

	return &claims, nil
}

func (rs *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := rs.redisService.Delete(ctx, "sess:"+sessionID); err != nil {
		return err
	}
	return rs.redisService.Delete(ctx, "hist:"+sessionID)
}

func (rs *RedisStore) SetHistory(ctx context.Context, sessionID string, history []genai.Message) error {
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return rs.redisService.Set(ctx, "hist:"+sessionID, string(data), cookieLifetime)
}

func (rs *RedisStore) GetHistory(ctx context.Context, sessionID string) ([]genai.Message, error) {
	data, err := rs.redisService.Get(ctx, "hist:"+sessionID)
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, nil
	}

	var history []genai.Message
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Memory store implementation

func (ms *MemoryStore) Set(ctx context.Context, sessionID string, claims *SessionClaims) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[sessionID] = claims
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, sessionID string) (*SessionClaims, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	claims, exists := ms.sessions[sessionID]
	if !exists {
		return nil, nil
	}
	return claims, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.sessions, sessionID)
	delete(ms.history, sessionID)
	return nil
}

func (ms *MemoryStore) SetHistory(ctx context.Context, sessionID string, history []genai.Message) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.history[sessionID] = history
	return nil
}

func (ms *MemoryStore) GetHistory(ctx context.Context, sessionID string) ([]genai.Message, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.history[sessionID], nil
}

// CreateSession generates a new session cookie and sets it in the response
func (s *Service) CreateSession(w http.ResponseWriter, userID, username, language string) error {
	ctx := context.Background()

	sessionID := uuid.New().String()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cookieLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        sessionID,
		},
		SessionID: sessionID,
		UserID:    userID,
		Username:  username,
		Language:  language,
	}

	if err := s.store.Set(ctx, sessionID, claims); err != nil {
		return err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(config.GetJWTSecret())
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     config.GetSessionCookieName(),
		Value:    signedToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(cookieLifetime),
	}

	http.SetCookie(w, cookie)
	return nil
}

// ValidateSession checks if a valid session cookie exists and returns the
// claims. A missing, expired or tampered cookie yields nil claims; an
// error is returned only when the session store itself fails, so callers
// can tell "not logged in" apart from a store outage.
func (s *Service) ValidateSession(r *http.Request) (*SessionClaims, error) {
	ctx := r.Context()

	cookie, err := r.Cookie(config.GetSessionCookieName())
	if err != nil {
		return nil, nil
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return config.GetJWTSecret(), nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("Session cookie failed verification")
		return nil, nil
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		// Verify session exists in store
		storedClaims, err := s.store.Get(ctx, claims.SessionID)
		if err != nil {
			return nil, err
		}
		if storedClaims == nil {
			return nil, nil
		}
		return storedClaims, nil
	}

	return nil, nil
}

// ClearSession removes the session cookie and the stored state
func (s *Service) ClearSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Get session ID from cookie before clearing it
	if cookie, err := r.Cookie(config.GetSessionCookieName()); err == nil {
		if token, err := jwt.ParseWithClaims(cookie.Value, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
			return config.GetJWTSecret(), nil
		}); err == nil {
			if claims, ok := token.Claims.(*SessionClaims); ok {
				_ = s.store.Delete(ctx, claims.SessionID)
			}
		}
	}

	cookie := &http.Cookie{
		Name:     config.GetSessionCookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	}

	http.SetCookie(w, cookie)
}

// SetLanguage updates the language recorded on an existing session.
func (s *Service) SetLanguage(ctx context.Context, claims *SessionClaims, language string) error {
	claims.Language = language
	return s.store.Set(ctx, claims.SessionID, claims)
}

// History returns the stored conversation for a session.
func (s *Service) History(ctx context.Context, sessionID string) ([]genai.Message, error) {
	return s.store.GetHistory(ctx, sessionID)
}

// AppendHistory adds a user/assistant exchange to the session history,
// trimming the oldest messages beyond maxHistoryMessages.
func (s *Service) AppendHistory(ctx context.Context, sessionID string, messages ...genai.Message) error {
	history, err := s.store.GetHistory(ctx, sessionID)
	if err != nil {
		return err
	}

	history = append(history, messages...)
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}

	return s.store.SetHistory(ctx, sessionID, history)
}
