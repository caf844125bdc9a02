package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lokbasha/lokbasha/internal/config"
	"github.com/lokbasha/lokbasha/internal/infrastructure/genai"
)

func requestWithCookies(recorder *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range recorder.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// brokenStore simulates a session backend whose reads fail.
type brokenStore struct{}

func (brokenStore) Set(ctx context.Context, sessionID string, claims *SessionClaims) error {
	return nil
}

func (brokenStore) Get(ctx context.Context, sessionID string) (*SessionClaims, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Delete(ctx context.Context, sessionID string) error { return nil }

func (brokenStore) SetHistory(ctx context.Context, sessionID string, history []genai.Message) error {
	return nil
}

func (brokenStore) GetHistory(ctx context.Context, sessionID string) ([]genai.Message, error) {
	return nil, errors.New("connection refused")
}

func TestSessionLifecycle(t *testing.T) {
	restore := config.SetJWTSecret([]byte("test-secret"))
	defer restore()

	svc := NewService(nil) // memory store

	t.Run("create and validate", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := svc.CreateSession(rec, "user-1", "asha", "hi"); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != config.GetSessionCookieName() {
			t.Fatalf("Expected session cookie, got %v", cookies)
		}

		claims, err := svc.ValidateSession(requestWithCookies(rec))
		if err != nil {
			t.Fatalf("ValidateSession failed: %v", err)
		}
		if claims == nil {
			t.Fatal("Expected valid session claims")
		}
		if claims.UserID != "user-1" || claims.Username != "asha" || claims.Language != "hi" {
			t.Errorf("Claims round trip lost fields: %+v", claims)
		}
	})

	t.Run("no cookie means no session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		claims, err := svc.ValidateSession(req)
		if err != nil {
			t.Fatalf("ValidateSession failed: %v", err)
		}
		if claims != nil {
			t.Errorf("Expected nil claims without cookie, got %+v", claims)
		}
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := svc.CreateSession(rec, "", "", ""); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		cookie := rec.Result().Cookies()[0]
		cookie.Value += "tampered"
		req.AddCookie(cookie)

		claims, err := svc.ValidateSession(req)
		if err != nil {
			t.Fatalf("Tampered cookie must not be treated as a store failure: %v", err)
		}
		if claims != nil {
			t.Errorf("Expected nil claims for tampered token, got %+v", claims)
		}
	})

	t.Run("store failure surfaces as error", func(t *testing.T) {
		svc := NewService(nil)
		rec := httptest.NewRecorder()
		if err := svc.CreateSession(rec, "user-9", "outage", "en"); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		// Swap in a store whose reads fail, as a Redis outage would.
		svc.store = &brokenStore{}

		if _, err := svc.ValidateSession(requestWithCookies(rec)); err == nil {
			t.Error("Expected store failure to surface as an error")
		}
	})

	t.Run("clear session removes stored state", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := svc.CreateSession(rec, "user-2", "ravi", "ta"); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		clearRec := httptest.NewRecorder()
		svc.ClearSession(clearRec, requestWithCookies(rec))

		claims, err := svc.ValidateSession(requestWithCookies(rec))
		if err != nil {
			t.Fatalf("ValidateSession failed: %v", err)
		}
		if claims != nil {
			t.Error("Expected session to be gone after ClearSession")
		}
	})

	t.Run("session language update", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := svc.CreateSession(rec, "user-3", "meena", "en"); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		claims, _ := svc.ValidateSession(requestWithCookies(rec))
		if err := svc.SetLanguage(context.Background(), claims, "te"); err != nil {
			t.Fatalf("SetLanguage failed: %v", err)
		}

		updated, _ := svc.ValidateSession(requestWithCookies(rec))
		if updated.Language != "te" {
			t.Errorf("Got language %s, want te", updated.Language)
		}
	})
}

func TestSessionHistory(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	t.Run("append and read back", func(t *testing.T) {
		err := svc.AppendHistory(ctx, "sess-1",
			genai.Message{Role: "user", Content: "नमस्ते"},
			genai.Message{Role: "assistant", Content: "नमस्ते! मैं कैसे मदद कर सकता हूं?"},
		)
		if err != nil {
			t.Fatalf("AppendHistory failed: %v", err)
		}

		history, err := svc.History(ctx, "sess-1")
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("Got %d messages, want 2", len(history))
		}
		if history[0].Role != "user" || history[1].Role != "assistant" {
			t.Errorf("History order wrong: %+v", history)
		}
	})

	t.Run("history is bounded", func(t *testing.T) {
		for i := 0; i < maxHistoryMessages; i++ {
			if err := svc.AppendHistory(ctx, "sess-2", genai.Message{Role: "user", Content: "q"}); err != nil {
				t.Fatalf("AppendHistory failed: %v", err)
			}
		}
		if err := svc.AppendHistory(ctx, "sess-2", genai.Message{Role: "user", Content: "newest"}); err != nil {
			t.Fatalf("AppendHistory failed: %v", err)
		}

		history, _ := svc.History(ctx, "sess-2")
		if len(history) != maxHistoryMessages {
			t.Errorf("Got %d messages, want cap of %d", len(history), maxHistoryMessages)
		}
		if history[len(history)-1].Content != "newest" {
			t.Error("Expected newest message to survive trimming")
		}
	})

	t.Run("empty session has no history", func(t *testing.T) {
		history, err := svc.History(ctx, "sess-none")
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(history) != 0 {
			t.Errorf("Expected empty history, got %d messages", len(history))
		}
	})
}
