package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"table-together/internal/checkout"
	"table-together/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutHandler_Pay(t *testing.T) {
	valid := checkout.PaymentDetails{
		Method:     checkout.MethodDebitCard,
		CardNumber: "5555 5555 5555 4444",
		CardHolder: "Ada Lovelace",
		Expiry:     "01/29",
		CVV:        "999",
	}
	noHolder := valid
	noHolder.CardHolder = ""

	tests := []struct {
		name             string
		body             interface{}
		fillCart         bool
		expectedStatus   int
		expectedCode     string
		expectedQuantity int
	}{
		{"Success", valid, true, http.StatusCreated, "", 0},
		{"Empty cart", valid, false, http.StatusBadRequest, model.ErrCodeEmptyCart, 0},
		{"Missing holder", noHolder, true, http.StatusBadRequest, model.ErrCodeInvalidPayment, 2},
		{"Invalid JSON", "{", true, http.StatusBadRequest, model.ErrCodeInvalidJSON, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			if tt.fillCart {
				fries, _ := store.Catalog().Food("Golden Fries")
				require.NoError(t, store.AddToCart(fries, 2))
			}
			handler := NewCheckoutHandler(checkout.NewService(nil, zerolog.Nop()), zerolog.Nop())

			w := httptest.NewRecorder()
			handler.Pay(w, newSessionRequest(t, http.MethodPost, "/api/session/checkout", tt.body, store))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedQuantity, store.CartTotalQuantity())
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
				return
			}

			var receipt model.Receipt
			decodeBody(t, w, &receipt)
			assert.Equal(t, checkout.MethodDebitCard, receipt.Method)
			assert.Equal(t, 2, receipt.TotalQuantity)
			assert.Equal(t, "8.50", receipt.TotalPrice.StringFixed(2))
		})
	}
}
