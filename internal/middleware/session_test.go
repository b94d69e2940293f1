package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"table-together/internal/auth"
	"table-together/internal/catalog"
	"table-together/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAuth(t *testing.T) {
	logger := zerolog.Nop()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	manager := session.NewManager(catalog.Default(), logger)

	live := manager.Create()
	liveToken, err := tokens.Issue(live.ID())
	require.NoError(t, err)

	ended := manager.Create()
	endedToken, err := tokens.Issue(ended.ID())
	require.NoError(t, err)
	manager.Delete(ended.ID())

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectHandler  bool
	}{
		{"Valid token", "Bearer " + liveToken, http.StatusOK, true},
		{"Missing header", "", http.StatusUnauthorized, false},
		{"Wrong scheme", "Basic " + liveToken, http.StatusUnauthorized, false},
		{"Empty bearer", "Bearer ", http.StatusUnauthorized, false},
		{"Garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, false},
		{"Ended session", "Bearer " + endedToken, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *session.Store
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = SessionFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := SessionAuth(tokens, manager, logger)(testHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectHandler {
				require.NotNil(t, got)
				assert.Equal(t, live.ID(), got.ID())
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestSessionFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	store, ok := SessionFromContext(req.Context())

	assert.False(t, ok)
	assert.Nil(t, store)
}
