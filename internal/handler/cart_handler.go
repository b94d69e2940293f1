package handler

import (
	"net/http"

	"table-together/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart requests.
type CartHandler struct {
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/session/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, store.CartSummary())
}

// Add handles POST /api/session/cart requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.AddToCartRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	food, found := store.Catalog().Food(req.FoodName)
	if !found {
		writeDomainError(w, model.ErrFoodNotFound, h.logger)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := store.AddToCart(food, quantity); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, store.CartSummary())
}

// Remove handles DELETE /api/session/cart/{lineID} requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	lineID, err := uuid.Parse(r.PathValue("lineID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid cart line ID format", h.logger)
		return
	}

	store.RemoveFromCart(lineID)
	writeJSON(w, http.StatusOK, store.CartSummary())
}

// Clear handles DELETE /api/session/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	store.ClearCart()
	writeJSON(w, http.StatusOK, store.CartSummary())
}
