package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"table-together/internal/model"
	"table-together/internal/verification"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVerifier is a mock implementation of Verifier.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Start(ctx context.Context, sessionID uuid.UUID, id verification.Identity) (*verification.StartResult, error) {
	args := m.Called(ctx, sessionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*verification.StartResult), args.Error(1)
}

func (m *MockVerifier) Verify(ctx context.Context, target verification.Target, code string) error {
	args := m.Called(ctx, target, code)
	return args.Error(0)
}

func TestAuthHandler_Start(t *testing.T) {
	identity := verification.Identity{
		Mode:     verification.ModeLogin,
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret",
	}

	tests := []struct {
		name           string
		body           interface{}
		mockResult     *verification.StartResult
		mockError      error
		expectService  bool
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success",
			body:           identity,
			mockResult:     &verification.StartResult{Destination: "ada@example.com", ExpiresAt: time.Now().Add(time.Minute)},
			expectService:  true,
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "Password mismatch",
			body:           identity,
			mockError:      model.ErrPasswordMismatch,
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodePasswordMismatch,
		},
		{
			name:           "Invalid JSON",
			body:           "nope",
			expectService:  false,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			verifier := new(MockVerifier)
			if tt.expectService {
				verifier.On("Start", mock.Anything, store.ID(), identity).Return(tt.mockResult, tt.mockError)
			}
			handler := NewAuthHandler(verifier, zerolog.Nop())

			w := httptest.NewRecorder()
			handler.Start(w, newSessionRequest(t, http.MethodPost, "/api/session/auth/start", tt.body, store))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			}
			verifier.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Verify(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
		expectedCode   string
	}{
		{"Success", nil, http.StatusOK, ""},
		{"Incorrect code", model.ErrIncorrectCode, http.StatusUnauthorized, model.ErrCodeIncorrectCode},
		{"Too many attempts", model.ErrTooManyAttempts, http.StatusUnauthorized, model.ErrCodeTooManyAttempts},
		{"No pending challenge", model.ErrChallengeNotFound, http.StatusNotFound, model.ErrCodeChallengeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			verifier := new(MockVerifier)
			verifier.On("Verify", mock.Anything, store, "0420").
				Run(func(args mock.Arguments) {
					if tt.mockError == nil {
						args.Get(1).(verification.Target).Login("Ada", "ada@example.com", "")
					}
				}).
				Return(tt.mockError)
			handler := NewAuthHandler(verifier, zerolog.Nop())

			w := httptest.NewRecorder()
			handler.Verify(w, newSessionRequest(t, http.MethodPost, "/api/session/auth/verify", model.VerifyRequest{Code: "0420"}, store))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
				assert.False(t, store.CurrentUser().IsAuthenticated)
			} else {
				var user model.UserProfile
				decodeBody(t, w, &user)
				assert.True(t, user.IsAuthenticated)
			}
			verifier.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_WithRealVerifier(t *testing.T) {
	store := newTestStore(t)
	verifier := verification.NewVerifier(verification.NewMemoryCodeStore(), verification.DefaultConfig(), zerolog.Nop())
	handler := NewAuthHandler(verifier, zerolog.Nop())

	w := httptest.NewRecorder()
	handler.Start(w, newSessionRequest(t, http.MethodPost, "/api/session/auth/start", verification.Identity{
		Mode:            verification.ModeSignup,
		Name:            "Ada",
		Email:           "ada@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	}, store))
	require.Equal(t, http.StatusAccepted, w.Code)

	var result verification.StartResult
	decodeBody(t, w, &result)
	assert.Equal(t, "ada@example.com", result.Destination)

	// The code never appears in the response.
	assert.NotContains(t, w.Body.String(), "code")

	w = httptest.NewRecorder()
	handler.Verify(w, newSessionRequest(t, http.MethodPost, "/api/session/auth/verify", model.VerifyRequest{Code: "not-a-code"}, store))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, store.CurrentUser().IsAuthenticated)
}
