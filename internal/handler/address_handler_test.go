package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"table-together/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func homeAddress() model.AddressInput {
	return model.AddressInput{
		Label: "Home",
		State: "Texas",
		Line1: "1 Main St",
		City:  "Austin",
		Zip:   "73301",
	}
}

func TestAddressHandler_Add(t *testing.T) {
	missingZip := homeAddress()
	missingZip.Zip = " "

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCount  int
		expectedCode   string
	}{
		{"Success", homeAddress(), http.StatusCreated, 1, ""},
		{"Missing zip", missingZip, http.StatusBadRequest, 0, model.ErrCodeMissingField},
		{"Invalid JSON", "{", http.StatusBadRequest, 0, model.ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			handler := NewAddressHandler(zerolog.Nop())

			w := httptest.NewRecorder()
			handler.Add(w, newSessionRequest(t, http.MethodPost, "/api/session/addresses", tt.body, store))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Len(t, store.SavedAddresses(), tt.expectedCount)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
				return
			}

			var resp model.AddressResponse
			decodeBody(t, w, &resp)
			require.Len(t, resp.Addresses, 1)
			require.NotNil(t, resp.SelectedAddressID)
			assert.Equal(t, resp.Addresses[0].ID, *resp.SelectedAddressID)
		})
	}
}

func TestAddressHandler_List(t *testing.T) {
	store := newTestStore(t)
	_, err := store.AddAddress(homeAddress())
	require.NoError(t, err)
	handler := NewAddressHandler(zerolog.Nop())

	w := httptest.NewRecorder()
	handler.List(w, newSessionRequest(t, http.MethodGet, "/api/session/addresses", nil, store))

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.AddressResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Addresses, 1)
	assert.Equal(t, "Home", resp.Addresses[0].Label)
}

func TestAddressHandler_Select(t *testing.T) {
	store := newTestStore(t)
	first, err := store.AddAddress(homeAddress())
	require.NoError(t, err)
	work := homeAddress()
	work.Label = "Work"
	second, err := store.AddAddress(work)
	require.NoError(t, err)

	tests := []struct {
		name           string
		id             uuid.UUID
		expectedStatus int
		expectedID     uuid.UUID
	}{
		{"Select first", first, http.StatusOK, first},
		{"Unknown id keeps selection", uuid.New(), http.StatusNotFound, first},
		{"Select second", second, http.StatusOK, second},
	}

	handler := NewAddressHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Select(w, newSessionRequest(t, http.MethodPut, "/api/session/addresses/selected",
				model.SelectAddressRequest{ID: tt.id}, store))

			assert.Equal(t, tt.expectedStatus, w.Code)
			require.NotNil(t, store.SelectedAddressID())
			assert.Equal(t, tt.expectedID, *store.SelectedAddressID())
		})
	}
}
