package handler

import (
	"net/http"

	"table-together/internal/checkout"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles simulated payment requests.
type CheckoutHandler struct {
	service checkout.Service
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service checkout.Service, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Pay handles POST /api/session/checkout requests.
func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	var req checkout.PaymentDetails
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	receipt, err := h.service.Pay(r.Context(), store, req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}
