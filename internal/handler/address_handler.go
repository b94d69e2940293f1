package handler

import (
	"net/http"

	"table-together/internal/model"

	"github.com/rs/zerolog"
)

// AddressHandler handles delivery address requests.
type AddressHandler struct {
	logger zerolog.Logger
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(logger zerolog.Logger) *AddressHandler {
	return &AddressHandler{
		logger: logger.With().Str("handler", "address").Logger(),
	}
}

// Add handles POST /api/session/addresses requests.
func (h *AddressHandler) Add(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.AddressInput
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if _, err := store.AddAddress(req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.AddressResponse{
		Addresses:         store.SavedAddresses(),
		SelectedAddressID: store.SelectedAddressID(),
	})
}

// List handles GET /api/session/addresses requests.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, model.AddressResponse{
		Addresses:         store.SavedAddresses(),
		SelectedAddressID: store.SelectedAddressID(),
	})
}

// Select handles PUT /api/session/addresses/selected requests.
func (h *AddressHandler) Select(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.SelectAddressRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := store.SelectAddress(req.ID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	current, _ := store.CurrentAddress()
	writeJSON(w, http.StatusOK, current)
}
