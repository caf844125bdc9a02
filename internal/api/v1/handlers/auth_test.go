package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lokbasha/lokbasha/internal/languages"
	"github.com/lokbasha/lokbasha/internal/services/auth"
	"github.com/lokbasha/lokbasha/internal/services/session"
	"github.com/lokbasha/lokbasha/internal/store"
)

func newAuthTestDeps(t *testing.T) (*auth.Service, *session.Service) {
	t.Helper()

	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return auth.NewService(repo), session.NewService(nil)
}

func postJSON(t *testing.T, handler func(w http.ResponseWriter, r *http.Request), path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleRegister(t *testing.T) {
	authService, sessionService := newAuthTestDeps(t)
	registry := languages.NewRegistry()
	handler := func(w http.ResponseWriter, r *http.Request) {
		HandleRegister(authService, sessionService, registry, w, r)
	}

	t.Run("valid registration", func(t *testing.T) {
		w := postJSON(t, handler, "/v1/auth/register",
			`{"username": "asha", "email": "asha@example.com", "password": "Str0ngPass"}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status code %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}
		if len(w.Result().Cookies()) == 0 {
			t.Error("Expected a session cookie after registration")
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		w := postJSON(t, handler, "/v1/auth/register",
			`{"username": "asha", "email": "other@example.com", "password": "Str0ngPass"}`)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected status code %d, got %d", http.StatusConflict, w.Code)
		}
	})

	t.Run("signup with chosen language", func(t *testing.T) {
		w := postJSON(t, handler, "/v1/auth/register",
			`{"username": "devi", "email": "devi@example.com", "password": "Str0ngPass", "language": "ta"}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status code %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"preferred_language":"ta"`) {
			t.Errorf("Expected preferred_language ta in response, got %s", w.Body.String())
		}
	})

	t.Run("unsupported language", func(t *testing.T) {
		w := postJSON(t, handler, "/v1/auth/register",
			`{"username": "kiran", "email": "kiran@example.com", "password": "Str0ngPass", "language": "fr"}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		w := postJSON(t, handler, "/v1/auth/register",
			`{"username": "ravi", "email": "ravi@example.com", "password": "short"}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"error":"validation_failed"`) {
			t.Errorf("Expected validation_failed error, got %s", w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "error_description") {
			t.Errorf("Expected error_description detail, got %s", w.Body.String())
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postJSON(t, handler, "/v1/auth/register", `{"username": "ravi"}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}

func TestHandleLogin(t *testing.T) {
	authService, sessionService := newAuthTestDeps(t)
	register := func(w http.ResponseWriter, r *http.Request) {
		HandleRegister(authService, sessionService, languages.NewRegistry(), w, r)
	}
	login := func(w http.ResponseWriter, r *http.Request) {
		HandleLogin(authService, sessionService, w, r)
	}

	w := postJSON(t, register, "/v1/auth/register",
		`{"username": "meera", "email": "meera@example.com", "password": "Str0ngPass"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Setup registration failed with status %d", w.Code)
	}

	t.Run("valid credentials", func(t *testing.T) {
		w := postJSON(t, login, "/v1/auth/login",
			`{"username": "meera", "password": "Str0ngPass"}`)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(t, login, "/v1/auth/login",
			`{"username": "meera", "password": "WrongPass1"}`)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		w := postJSON(t, login, "/v1/auth/login",
			`{"username": "nobody", "password": "Str0ngPass"}`)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("lockout after repeated failures", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			postJSON(t, login, "/v1/auth/login",
				`{"username": "meera", "password": "WrongPass1"}`)
		}

		w := postJSON(t, login, "/v1/auth/login",
			`{"username": "meera", "password": "Str0ngPass"}`)

		if w.Code != http.StatusForbidden {
			t.Errorf("Expected status code %d after lockout, got %d", http.StatusForbidden, w.Code)
		}
	})
}

func TestHandleLogout(t *testing.T) {
	_, sessionService := newAuthTestDeps(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	w := httptest.NewRecorder()

	HandleLogout(sessionService, w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status code %d, got %d", http.StatusNoContent, w.Code)
	}

	// The session cookie must be expired.
	for _, c := range w.Result().Cookies() {
		if c.MaxAge > 0 {
			t.Errorf("Expected cookie to be cleared, got MaxAge %d", c.MaxAge)
		}
	}
}
