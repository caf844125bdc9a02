package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lokbasha/lokbasha/internal/api/v1/middleware"
	"github.com/lokbasha/lokbasha/internal/infrastructure/genai"
	"github.com/lokbasha/lokbasha/internal/services/auth"
	"github.com/lokbasha/lokbasha/internal/services/localize"
	"github.com/lokbasha/lokbasha/internal/services/session"
	"github.com/lokbasha/lokbasha/pkg/httpext"
	"github.com/rs/zerolog/log"
)

type chatRequest struct {
	Message  string `json:"message" validate:"required"`
	Language string `json:"language" validate:"required"`
}

type chatResponse struct {
	ID       string `json:"id"`
	Created  int64  `json:"created"`
	Reply    string `json:"reply"`
	Language string `json:"language"`
	Pivoted  bool   `json:"pivoted"`
}

// HandleChatCompletion answers one widget message in the requested
// language, threading the session's conversation history through the
// generative backend.
func HandleChatCompletion(localizeService *localize.Service, sessionService *session.Service, authService *auth.Service, w http.ResponseWriter, r *http.Request) {
	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		httpext.JsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	// use a single instance of Validate, it caches struct info
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(req); err != nil {
		httpext.JsonError(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	log.Info().
		Str("language", req.Language).
		Str("client_ip", r.RemoteAddr).
		Msg("Received chat completion request")

	history, err := sessionService.History(r.Context(), claims.SessionID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load session history")
		// A lost history degrades the answer but should not block it.
		history = nil
	}

	result, err := localizeService.Localize(r.Context(), req.Message, req.Language, history)
	if err != nil {
		writeLocalizeError(w, err)
		return
	}

	if err := sessionService.AppendHistory(r.Context(), claims.SessionID,
		genai.Message{Role: "user", Content: req.Message},
		genai.Message{Role: "assistant", Content: result.Reply},
	); err != nil {
		log.Error().Err(err).Msg("Failed to store session history")
	}

	// Remember the language the session is chatting in, and persist the
	// choice on the account when the session belongs to one.
	if claims.Language != result.Language {
		if err := sessionService.SetLanguage(r.Context(), claims, result.Language); err != nil {
			log.Error().Err(err).Msg("Failed to update session language")
		}
		if claims.UserID != "" && authService != nil {
			if err := authService.SetPreferredLanguage(r.Context(), claims.UserID, result.Language); err != nil {
				log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to persist preferred language")
			}
		}
	}

	resp := chatResponse{
		ID:       fmt.Sprintf("lokbasha-%s", uuid.New().String()[:8]),
		Created:  time.Now().Unix(),
		Reply:    result.Reply,
		Language: result.Language,
		Pivoted:  result.Pivoted,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		httpext.JsonError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("language", result.Language).
		Bool("pivoted", result.Pivoted).
		Str("client_ip", r.RemoteAddr).
		Msg("Chat completion request processed successfully")
}

func writeLocalizeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, localize.ErrQuestionTooShort):
		httpext.JsonError(w, "Please ask a more detailed question", http.StatusBadRequest)
	case errors.Is(err, localize.ErrQuestionTooLong):
		httpext.JsonError(w, "Question is too long (1000 characters max)", http.StatusBadRequest)
	case errors.Is(err, localize.ErrUnsupportedLanguage):
		httpext.JsonError(w, "Unsupported language", http.StatusBadRequest)
	case errors.Is(err, genai.ErrQuota):
		httpext.JsonError(w, "API quota exceeded. Please try again later", http.StatusTooManyRequests)
	case errors.Is(err, genai.ErrNetwork):
		httpext.JsonError(w, "Network error occurred. Please check your connection and try again", http.StatusBadGateway)
	default:
		log.Error().Err(err).Msg("Failed to process chat")
		httpext.JsonError(w, "Failed to process chat", http.StatusBadGateway)
	}
}
