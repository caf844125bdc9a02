package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lokbasha/lokbasha/internal/languages"
	"github.com/lokbasha/lokbasha/internal/services/auth"
	"github.com/lokbasha/lokbasha/internal/services/session"
	"github.com/lokbasha/lokbasha/internal/store"
	"github.com/lokbasha/lokbasha/pkg/httpext"
	"github.com/rs/zerolog/log"
)

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Language string `json:"language"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	Username          string `json:"username"`
	Email             string `json:"email,omitempty"`
	PreferredLanguage string `json:"preferred_language"`
}

// HandleRegister creates a new account and opens a session for it. The
// optional language field picks the account's preferred language at
// signup.
func HandleRegister(authService *auth.Service, sessionService *session.Service, registry *languages.Registry, w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	// use a single instance of Validate, it caches struct info
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(req); err != nil {
		httpext.JsonError(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	langCode := ""
	if req.Language != "" {
		lang, ok := registry.Lookup(req.Language)
		if !ok {
			httpext.JsonError(w, "Unsupported language", http.StatusBadRequest)
			return
		}
		langCode = lang.Code
	}

	user, err := authService.Register(r.Context(), req.Username, req.Email, req.Password, langCode)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameTaken), errors.Is(err, store.ErrEmailTaken):
			httpext.JsonError(w, err.Error(), http.StatusConflict)
		case isValidationError(err):
			httpext.JsonErrorWithDetails(w, http.StatusBadRequest, httpext.ErrorResponse{
				Error:            "validation_failed",
				ErrorDescription: err.Error(),
			})
		default:
			log.Error().Err(err).Msg("Failed to register user")
			httpext.JsonError(w, "Registration failed", http.StatusInternalServerError)
		}
		return
	}

	if err := sessionService.CreateSession(w, user.ID, user.Username, user.PreferredLanguage); err != nil {
		log.Error().Err(err).Msg("Failed to create session after registration")
		httpext.JsonError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(userResponse{
		Username:          user.Username,
		Email:             user.Email,
		PreferredLanguage: user.PreferredLanguage,
	})

	log.Info().Str("username", user.Username).Str("client_ip", r.RemoteAddr).Msg("User registered")
}

// HandleLogin authenticates a user and opens a session.
func HandleLogin(authService *auth.Service, sessionService *session.Service, w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(req); err != nil {
		httpext.JsonError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	user, err := authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAccountLocked):
			httpext.JsonError(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, auth.ErrInvalidCredentials):
			httpext.JsonError(w, err.Error(), http.StatusUnauthorized)
		default:
			log.Error().Err(err).Msg("Login failed")
			httpext.JsonError(w, "Login failed", http.StatusInternalServerError)
		}
		return
	}

	if err := sessionService.CreateSession(w, user.ID, user.Username, user.PreferredLanguage); err != nil {
		log.Error().Err(err).Msg("Failed to create session after login")
		httpext.JsonError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userResponse{
		Username:          user.Username,
		Email:             user.Email,
		PreferredLanguage: user.PreferredLanguage,
	})

	log.Info().Str("username", user.Username).Str("client_ip", r.RemoteAddr).Msg("User logged in")
}

// HandleLogout clears the session.
func HandleLogout(sessionService *session.Service, w http.ResponseWriter, r *http.Request) {
	sessionService.ClearSession(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	for _, candidate := range []error{
		auth.ErrUsernameTooShort, auth.ErrUsernameTooLong, auth.ErrUsernameInvalid,
		auth.ErrEmailInvalid,
		auth.ErrPasswordTooShort, auth.ErrPasswordNoUpper, auth.ErrPasswordNoLower, auth.ErrPasswordNoDigit,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
