package handler

import (
	"context"
	"net/http"

	"table-together/internal/model"
	"table-together/internal/verification"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Verifier runs the one-time code login flow.
type Verifier interface {
	Start(ctx context.Context, sessionID uuid.UUID, id verification.Identity) (*verification.StartResult, error)
	Verify(ctx context.Context, target verification.Target, code string) error
}

// AuthHandler handles login and signup verification requests.
type AuthHandler struct {
	verifier Verifier
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(verifier Verifier, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Start handles POST /api/session/auth/start requests.
func (h *AuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	var req verification.Identity
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	result, err := h.verifier.Start(r.Context(), store.ID(), req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusAccepted, result)
}

// Verify handles POST /api/session/auth/verify requests.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.VerifyRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := h.verifier.Verify(r.Context(), store, req.Code); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, store.CurrentUser())
}
