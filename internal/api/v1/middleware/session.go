package middleware

import (
	"context"
	"net/http"

	"github.com/lokbasha/lokbasha/internal/services/session"
	"github.com/lokbasha/lokbasha/pkg/httpext"
	"github.com/rs/zerolog/log"
)

type contextKey string

const sessionClaimsKey contextKey = "sessionClaims"

// RequireSession rejects requests without a valid session cookie and
// stores the claims in the request context for handlers downstream.
func RequireSession(sessionService *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := sessionService.ValidateSession(r)
			if err != nil {
				// Store failures are outages, not missing credentials.
				log.Error().Err(err).Str("client_ip", r.RemoteAddr).Msg("Session store unavailable")
				httpext.JsonError(w, "Service temporarily unavailable", http.StatusServiceUnavailable)
				return
			}
			if claims == nil {
				httpext.JsonError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSessionClaims(r.Context(), claims)))
		})
	}
}

// WithSessionClaims attaches validated claims to a request context.
func WithSessionClaims(ctx context.Context, claims *session.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionClaimsKey, claims)
}

// SessionFromContext returns the claims stored by RequireSession.
func SessionFromContext(ctx context.Context) *session.SessionClaims {
	claims, _ := ctx.Value(sessionClaimsKey).(*session.SessionClaims)
	return claims
}
