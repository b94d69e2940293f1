package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"table-together/internal/catalog"
	"table-together/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_Categories(t *testing.T) {
	handler := NewCatalogHandler(catalog.Default(), zerolog.Nop())

	w := httptest.NewRecorder()
	handler.Categories(w, httptest.NewRequest(http.MethodGet, "/api/catalog/categories", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var categories []model.Category
	decodeBody(t, w, &categories)
	require.Len(t, categories, 5)
	assert.Equal(t, "Burger Meals", categories[0].Name)
}

func TestCatalogHandler_Foods(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCount  int
	}{
		{"All foods", "", http.StatusOK, 12},
		{"One category", "?category=Pizza", http.StatusOK, 3},
		{"Escaped category name", "?category=Cupcakes+%26+Cakes", http.StatusOK, 2},
		{"Unknown category", "?category=Sushi", http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCatalogHandler(catalog.Default(), zerolog.Nop())

			w := httptest.NewRecorder()
			handler.Foods(w, httptest.NewRequest(http.MethodGet, "/api/catalog/foods"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var foods []model.FoodItem
				decodeBody(t, w, &foods)
				assert.Len(t, foods, tt.expectedCount)
			} else {
				assert.Equal(t, model.ErrCodeCategoryNotFound, decodeError(t, w).Error)
			}
		})
	}
}

func TestCatalogHandler_Offers(t *testing.T) {
	handler := NewCatalogHandler(catalog.Default(), zerolog.Nop())

	w := httptest.NewRecorder()
	handler.Offers(w, httptest.NewRequest(http.MethodGet, "/api/catalog/offers", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var offers []model.Offer
	decodeBody(t, w, &offers)
	assert.Len(t, offers, 3)
}

func TestCatalogHandler_SelectCategory(t *testing.T) {
	tests := []struct {
		name             string
		body             interface{}
		expectedStatus   int
		expectedSelected string
	}{
		{"Known category", model.SelectCategoryRequest{Name: "Pizza"}, http.StatusOK, "Pizza"},
		{"Unknown category keeps selection", model.SelectCategoryRequest{Name: "Sushi"}, http.StatusNotFound, "Burger Meals"},
		{"Invalid JSON", "[", http.StatusBadRequest, "Burger Meals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			handler := NewCatalogHandler(store.Catalog(), zerolog.Nop())

			w := httptest.NewRecorder()
			handler.SelectCategory(w, newSessionRequest(t, http.MethodPut, "/api/session/category", tt.body, store))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedSelected, store.SelectedCategory().Name)
		})
	}
}

func TestCatalogHandler_SelectedFoods(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SelectCategory("Sandwiches"))
	handler := NewCatalogHandler(store.Catalog(), zerolog.Nop())

	w := httptest.NewRecorder()
	handler.SelectedFoods(w, newSessionRequest(t, http.MethodGet, "/api/session/foods", nil, store))

	require.Equal(t, http.StatusOK, w.Code)
	var foods []model.FoodItem
	decodeBody(t, w, &foods)
	require.Len(t, foods, 2)
	assert.Equal(t, "Grilled Cheese Sandwich", foods[0].Name)
	assert.Equal(t, "Veggie Sandwich", foods[1].Name)
}
