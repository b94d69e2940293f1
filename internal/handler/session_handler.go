package handler

import (
	"context"
	"net/http"
	"time"

	"table-together/internal/model"
	"table-together/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionManager creates and ends sessions.
type SessionManager interface {
	Create() *session.Store
	Delete(id uuid.UUID) bool
	Count() int
}

// TokenIssuer signs session bearer tokens.
type TokenIssuer interface {
	Issue(sessionID uuid.UUID) (string, error)
}

// ChallengeCanceller discards pending verification for an ended session.
type ChallengeCanceller interface {
	Cancel(ctx context.Context, sessionID uuid.UUID) error
}

// SessionHandler handles session lifecycle and profile requests.
type SessionHandler struct {
	sessions SessionManager
	tokens   TokenIssuer
	pending  ChallengeCanceller
	logger   zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions SessionManager, tokens TokenIssuer, pending ChallengeCanceller, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		tokens:   tokens,
		pending:  pending,
		logger:   logger.With().Str("handler", "session").Logger(),
	}
}

// Health handles GET /health requests.
func (h *SessionHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:   "healthy",
		Sessions: h.sessions.Count(),
		Time:     time.Now().UTC(),
	})
}

// Create handles POST /api/sessions requests.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	store := h.sessions.Create()

	token, err := h.tokens.Issue(store.ID())
	if err != nil {
		h.sessions.Delete(store.ID())
		h.logger.Error().Err(err).Str("session_id", store.ID().String()).Msg("failed to issue token")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to create session", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.SessionResponse{
		SessionID: store.ID(),
		Token:     token,
	})
}

// End handles DELETE /api/session requests.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.pending.Cancel(r.Context(), store.ID()); err != nil {
		h.logger.Warn().Err(err).Str("session_id", store.ID().String()).Msg("failed to cancel pending verification")
	}
	h.sessions.Delete(store.ID())

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /api/session requests.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, store.Snapshot())
}

// Logout handles POST /api/session/logout requests.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	store.Logout()
	writeJSON(w, http.StatusOK, store.CurrentUser())
}

// UpdateProfile handles PUT /api/session/profile requests.
func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ProfileRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	store.UpdateProfile(req.Name, req.Email, req.Phone)
	writeJSON(w, http.StatusOK, store.CurrentUser())
}
