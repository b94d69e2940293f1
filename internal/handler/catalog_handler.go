package handler

import (
	"net/http"

	"table-together/internal/catalog"
	"table-together/internal/model"

	"github.com/rs/zerolog"
)

// CatalogHandler handles menu browsing requests.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(c *catalog.Catalog, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: c,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Categories handles GET /api/catalog/categories requests.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Categories())
}

// Foods handles GET /api/catalog/foods requests. The optional category query
// parameter restricts the list to one category.
func (h *CatalogHandler) Foods(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("category")
	if name == "" {
		writeJSON(w, http.StatusOK, h.catalog.Foods())
		return
	}

	if !h.catalog.HasCategory(name) {
		writeDomainError(w, model.ErrCategoryNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.catalog.FoodsInCategory(name))
}

// Offers handles GET /api/catalog/offers requests.
func (h *CatalogHandler) Offers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Offers())
}

// SelectCategory handles PUT /api/session/category requests.
func (h *CatalogHandler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.SelectCategoryRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := store.SelectCategory(req.Name); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, store.SelectedCategory())
}

// SelectedFoods handles GET /api/session/foods requests.
func (h *CatalogHandler) SelectedFoods(w http.ResponseWriter, r *http.Request) {
	store, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, store.FoodsInSelectedCategory())
}
