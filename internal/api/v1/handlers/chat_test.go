package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lokbasha/lokbasha/internal/api/v1/middleware"
	"github.com/lokbasha/lokbasha/internal/infrastructure/genai"
	"github.com/lokbasha/lokbasha/internal/languages"
	"github.com/lokbasha/lokbasha/internal/services/auth"
	"github.com/lokbasha/lokbasha/internal/services/localize"
	"github.com/lokbasha/lokbasha/internal/services/session"
	"github.com/lokbasha/lokbasha/internal/store"
)

// longReply clears every language's minimum reply length so the direct
// generation path succeeds without a translator.
const longReply = "Council services are available through the citizen portal where you can " +
	"apply for certificates, pay property taxes, and track the status of earlier " +
	"applications from a single dashboard."

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, req genai.Request) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newChatTestDeps(t *testing.T, gen localize.Generator) (*localize.Service, *session.Service) {
	t.Helper()

	localizeService, err := localize.NewService(gen, nil, languages.NewRegistry())
	if err != nil {
		t.Fatalf("Failed to build localize service: %v", err)
	}
	return localizeService, session.NewService(nil)
}

func chatRequestWithClaims(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(body))
	claims := &session.SessionClaims{
		SessionID: "test-session",
		Username:  "tester",
		Language:  "en",
	}
	return req.WithContext(middleware.WithSessionClaims(req.Context(), claims))
}

func TestHandleChatCompletion(t *testing.T) {
	t.Run("successful completion", func(t *testing.T) {
		gen := &stubGenerator{reply: longReply}
		localizeService, sessionService := newChatTestDeps(t, gen)

		req := chatRequestWithClaims(`{"message": "How do I pay property tax?", "language": "en"}`)
		w := httptest.NewRecorder()

		HandleChatCompletion(localizeService, sessionService, nil, w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp struct {
			ID       string `json:"id"`
			Reply    string `json:"reply"`
			Language string `json:"language"`
			Pivoted  bool   `json:"pivoted"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if !strings.HasPrefix(resp.ID, "lokbasha-") {
			t.Errorf("Expected a lokbasha-prefixed id, got %q", resp.ID)
		}
		if !strings.Contains(resp.Reply, "citizen portal") {
			t.Errorf("Unexpected reply: %q", resp.Reply)
		}
		if resp.Language != "en" {
			t.Errorf("Expected language en, got %q", resp.Language)
		}
		if resp.Pivoted {
			t.Error("Direct generation should not be reported as pivoted")
		}

		// Both turns of the exchange must land in the session history.
		history, err := sessionService.History(context.Background(), "test-session")
		if err != nil {
			t.Fatalf("Failed to load history: %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("Expected 2 history messages, got %d", len(history))
		}
		if history[0].Role != "user" || history[1].Role != "assistant" {
			t.Errorf("Unexpected history roles: %s, %s", history[0].Role, history[1].Role)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		gen := &stubGenerator{reply: longReply}
		localizeService, sessionService := newChatTestDeps(t, gen)

		req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions",
			strings.NewReader(`{"message": "How do I pay property tax?", "language": "en"}`))
		w := httptest.NewRecorder()

		HandleChatCompletion(localizeService, sessionService, nil, w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, w.Code)
		}
		if gen.calls != 0 {
			t.Errorf("Generator should not be called without a session, got %d calls", gen.calls)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		localizeService, sessionService := newChatTestDeps(t, &stubGenerator{reply: longReply})

		req := chatRequestWithClaims(`{"message": `)
		w := httptest.NewRecorder()

		HandleChatCompletion(localizeService, sessionService, nil, w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		localizeService, sessionService := newChatTestDeps(t, &stubGenerator{reply: longReply})

		req := chatRequestWithClaims(`{"message": "How do I pay property tax?"}`)
		w := httptest.NewRecorder()

		HandleChatCompletion(localizeService, sessionService, nil, w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("question too short", func(t *testing.T) {
		localizeService, sessionService := newChatTestDeps(t, &stubGenerator{reply: longReply})

		req := chatRequestWithClaims(`{"message": "hi", "language": "en"}`)
		w := httptest.NewRecorder()

		HandleChatCompletion(localizeService, sessionService, nil, w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("unsupported language", func(t *testing.T) {
		localizeService, sessionService := newChatTestDeps(t, &stubGenerator{reply: longReply})

		req := chatRequestWithClaims(`{"message": "How do I pay property tax?", "language": "xx"}`)
		w := httptest.NewRecorder()

		HandleChatCompletion(localizeService, sessionService, nil, w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("quota exceeded", func(t *testing.T) {
		localizeService, sessionService := newChatTestDeps(t, &stubGenerator{err: genai.ErrQuota})

		req := chatRequestWithClaims(`{"message": "How do I pay property tax?", "language": "en"}`)
		w := httptest.NewRecorder()

		HandleChatCompletion(localizeService, sessionService, nil, w, req)

		if w.Code != http.StatusTooManyRequests {
			t.Errorf("Expected status code %d, got %d", http.StatusTooManyRequests, w.Code)
		}
	})

	t.Run("network failure", func(t *testing.T) {
		localizeService, sessionService := newChatTestDeps(t, &stubGenerator{err: genai.ErrNetwork})

		req := chatRequestWithClaims(`{"message": "How do I pay property tax?", "language": "en"}`)
		w := httptest.NewRecorder()

		HandleChatCompletion(localizeService, sessionService, nil, w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status code %d, got %d", http.StatusBadGateway, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Network error") {
			t.Errorf("Expected a network error message, got %s", w.Body.String())
		}
	})

	t.Run("language change persists on the account", func(t *testing.T) {
		repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "users.db"))
		if err != nil {
			t.Fatalf("Failed to open test store: %v", err)
		}
		t.Cleanup(func() { repo.Close() })
		authService := auth.NewService(repo)

		user, err := authService.Register(context.Background(), "asha", "asha@example.org", "Sunlight9", "en")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		localizeService, sessionService := newChatTestDeps(t, &stubGenerator{reply: longReply})

		req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions",
			strings.NewReader(`{"message": "How do I pay property tax?", "language": "hi"}`))
		claims := &session.SessionClaims{
			SessionID: "test-session",
			UserID:    user.ID,
			Username:  user.Username,
			Language:  "en",
		}
		req = req.WithContext(middleware.WithSessionClaims(req.Context(), claims))
		w := httptest.NewRecorder()

		HandleChatCompletion(localizeService, sessionService, authService, w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		stored, err := repo.GetUserByUsername(context.Background(), "asha")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if stored.PreferredLanguage != "hi" {
			t.Errorf("Got stored language %s, want hi", stored.PreferredLanguage)
		}
	})
}
