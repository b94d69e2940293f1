package middleware

import (
	"context"
	"net/http"
	"strings"

	"table-together/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey struct{}

var sessionKey contextKey

// TokenParser resolves a bearer token to a session id.
type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

// SessionLookup finds live sessions by id.
type SessionLookup interface {
	Get(id uuid.UUID) (*session.Store, error)
}

// WithSession returns a copy of ctx carrying store.
func WithSession(ctx context.Context, store *session.Store) context.Context {
	return context.WithValue(ctx, sessionKey, store)
}

// SessionFromContext returns the session attached by SessionAuth.
func SessionFromContext(ctx context.Context) (*session.Store, bool) {
	store, ok := ctx.Value(sessionKey).(*session.Store)
	return store, ok && store != nil
}

// SessionAuth requires an "Authorization: Bearer <token>" header naming a
// live session and attaches that session to the request context.
func SessionAuth(tokens TokenParser, sessions SessionLookup, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("missing session token")
				http.Error(w, "unauthorised: missing session token", http.StatusUnauthorized)
				return
			}

			sessionID, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid session token")
				http.Error(w, "unauthorised: invalid session token", http.StatusUnauthorized)
				return
			}

			store, err := sessions.Get(sessionID)
			if err != nil {
				logger.Debug().Str("session_id", sessionID.String()).Msg("session not found")
				http.Error(w, "unauthorised: session has ended", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), store)))
		})
	}
}
