package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-together/internal/catalog"
	"table-together/internal/model"
	"table-together/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecorder is a mock implementation of Recorder.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordCheckout(method string, total decimal.Decimal) {
	m.Called(method, total.StringFixed(2))
}

func validDetails() PaymentDetails {
	return PaymentDetails{
		Method:     MethodCreditCard,
		CardNumber: "4242 4242 4242 4242",
		CardHolder: "Ada Lovelace",
		Expiry:     "12/30",
		CVV:        "123",
	}
}

func newCart(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(uuid.New(), catalog.Default(), zerolog.Nop())
	burger, ok := store.Catalog().Food("Beef Burger")
	require.True(t, ok)
	cupcake, ok := store.Catalog().Food("Vanilla Cupcake")
	require.True(t, ok)
	require.NoError(t, store.AddToCart(burger, 2))
	require.NoError(t, store.AddToCart(cupcake, 1))
	return store
}

func TestService_Pay_Success(t *testing.T) {
	recorder := new(MockRecorder)
	recorder.On("RecordCheckout", MethodCreditCard, "15.30").Return()

	svc := NewService(recorder, zerolog.Nop()).(*checkoutService)
	placedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return placedAt }

	store := newCart(t)

	receipt, err := svc.Pay(context.Background(), store, validDetails())

	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.NotEqual(t, uuid.Nil, receipt.ID)
	assert.Equal(t, MethodCreditCard, receipt.Method)
	assert.Len(t, receipt.Items, 2)
	assert.Equal(t, 3, receipt.TotalQuantity)
	assert.Equal(t, "15.30", receipt.TotalPrice.StringFixed(2))
	assert.Equal(t, placedAt, receipt.PlacedAt)
	assert.Contains(t, receipt.Message, "$15.30")

	assert.Empty(t, store.Cart())
	recorder.AssertExpectations(t)
}

func TestService_Pay_NilRecorder(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	receipt, err := svc.Pay(context.Background(), newCart(t), validDetails())

	require.NoError(t, err)
	assert.Equal(t, 3, receipt.TotalQuantity)
}

func TestService_Pay_InvalidDetails(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*PaymentDetails)
		errorMsg string
	}{
		{"Unknown method", func(d *PaymentDetails) { d.Method = "cash" }, "payment method"},
		{"Missing card number", func(d *PaymentDetails) { d.CardNumber = "  " }, "card number is required"},
		{"Missing holder", func(d *PaymentDetails) { d.CardHolder = "" }, "card holder name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := new(MockRecorder)
			svc := NewService(recorder, zerolog.Nop())
			store := newCart(t)
			details := validDetails()
			tt.mutate(&details)

			receipt, err := svc.Pay(context.Background(), store, details)

			require.Error(t, err)
			assert.Nil(t, receipt)
			assert.Contains(t, err.Error(), tt.errorMsg)
			assert.True(t, errors.Is(err, model.ErrValidation))
			assert.Equal(t, model.ErrCodeInvalidPayment, model.CodeOf(err))

			// The cart survives a rejected payment.
			assert.Equal(t, 3, store.CartTotalQuantity())
			recorder.AssertNotCalled(t, "RecordCheckout", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Pay_EmptyCart(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())
	store := session.NewStore(uuid.New(), catalog.Default(), zerolog.Nop())

	receipt, err := svc.Pay(context.Background(), store, validDetails())

	assert.Nil(t, receipt)
	assert.Equal(t, model.ErrEmptyCart, err)
}

func TestService_Pay_CancelledContext(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())
	store := newCart(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Pay(ctx, store, validDetails())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, store.CartTotalQuantity())
}

func TestMaskCard(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"4242 4242 4242 4242", "************4242"},
		{"1234", "****"},
		{"", ""},
		{"12-345", "*2345"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskCard(tt.input))
		})
	}
}
