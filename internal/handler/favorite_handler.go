package handler

import (
	"net/http"

	"table-together/internal/model"

	"github.com/rs/zerolog"
)

// FavoriteHandler handles favorites requests.
type FavoriteHandler struct {
	logger zerolog.Logger
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(logger zerolog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		logger: logger.With().Str("handler", "favorite").Logger(),
	}
}

// List handles GET /api/session/favorites requests.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, store.Favorites())
}

// Toggle handles POST /api/session/favorites requests.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ToggleFavoriteRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	food, found := store.Catalog().Food(req.FoodName)
	if !found {
		writeDomainError(w, model.ErrFoodNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.FavoriteResponse{
		FoodName:   food.Name,
		IsFavorite: store.ToggleFavorite(food),
	})
}
