package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"table-together/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteHandler_Toggle(t *testing.T) {
	store := newTestStore(t)
	handler := NewFavoriteHandler(zerolog.Nop())

	toggle := func(name string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.Toggle(w, newSessionRequest(t, http.MethodPost, "/api/session/favorites",
			model.ToggleFavoriteRequest{FoodName: name}, store))
		return w
	}

	w := toggle("Pepperoni Pizza")
	require.Equal(t, http.StatusOK, w.Code)
	var resp model.FavoriteResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, model.FavoriteResponse{FoodName: "Pepperoni Pizza", IsFavorite: true}, resp)

	w = toggle("Pepperoni Pizza")
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.False(t, resp.IsFavorite)
	assert.Empty(t, store.Favorites())

	w = toggle("Sushi Roll")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeFoodNotFound, decodeError(t, w).Error)
}

func TestFavoriteHandler_List(t *testing.T) {
	store := newTestStore(t)
	for _, name := range []string{"Vanilla Cupcake", "Beef Burger"} {
		food, ok := store.Catalog().Food(name)
		require.True(t, ok)
		store.ToggleFavorite(food)
	}
	handler := NewFavoriteHandler(zerolog.Nop())

	w := httptest.NewRecorder()
	handler.List(w, newSessionRequest(t, http.MethodGet, "/api/session/favorites", nil, store))

	require.Equal(t, http.StatusOK, w.Code)
	var foods []model.FoodItem
	decodeBody(t, w, &foods)
	require.Len(t, foods, 2)
	assert.Equal(t, "Beef Burger", foods[0].Name)
	assert.Equal(t, "Vanilla Cupcake", foods[1].Name)
}
