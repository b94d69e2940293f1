// Package checkout simulates payment for a session's cart. No payment
// network is contacted and receipts are not stored.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"table-together/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Payment methods offered by the payment screen.
const (
	MethodCreditCard = "credit_card"
	MethodDebitCard  = "debit_card"
)

// PaymentDetails is what the payment form collected.
type PaymentDetails struct {
	Method     string `json:"method"`
	CardNumber string `json:"cardNumber"`
	CardHolder string `json:"cardHolder"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Cart is the part of a session checkout needs.
type Cart interface {
	ID() uuid.UUID
	TakeCart() (model.CartSummary, bool)
}

// Recorder receives completed payments.
type Recorder interface {
	RecordCheckout(method string, total decimal.Decimal)
}

// Service defines the checkout operation.
type Service interface {
	// Pay validates details, empties the cart and returns a receipt.
	Pay(ctx context.Context, cart Cart, details PaymentDetails) (*model.Receipt, error)
}

// checkoutService implements Service.
type checkoutService struct {
	recorder Recorder
	now      func() time.Time
	logger   zerolog.Logger
}

// NewService creates a checkout service. recorder may be nil.
func NewService(recorder Recorder, logger zerolog.Logger) Service {
	return &checkoutService{
		recorder: recorder,
		now:      time.Now,
		logger:   logger.With().Str("service", "checkout").Logger(),
	}
}

// Pay validates details, empties the cart and returns a receipt.
func (s *checkoutService) Pay(ctx context.Context, cart Cart, details PaymentDetails) (*model.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validateDetails(details); err != nil {
		s.logger.Warn().
			Str("session_id", cart.ID().String()).
			Str("method", details.Method).
			Err(err).
			Msg("payment rejected")
		return nil, err
	}

	summary, ok := cart.TakeCart()
	if !ok {
		return nil, model.ErrEmptyCart
	}

	receipt := &model.Receipt{
		ID:            uuid.New(),
		Method:        details.Method,
		Items:         summary.Lines,
		TotalQuantity: summary.TotalQuantity,
		TotalPrice:    summary.TotalPrice,
		PlacedAt:      s.now(),
		Message:       fmt.Sprintf("Payment of $%s received. Your order is being prepared.", summary.TotalPrice.StringFixed(2)),
	}

	if s.recorder != nil {
		s.recorder.RecordCheckout(details.Method, summary.TotalPrice)
	}

	s.logger.Info().
		Str("session_id", cart.ID().String()).
		Str("receipt_id", receipt.ID.String()).
		Str("method", details.Method).
		Str("card", maskCard(details.CardNumber)).
		Int("item_count", summary.TotalQuantity).
		Str("total", summary.TotalPrice.StringFixed(2)).
		Msg("payment accepted")

	return receipt, nil
}

func validateDetails(d PaymentDetails) error {
	if d.Method != MethodCreditCard && d.Method != MethodDebitCard {
		return model.NewValidationError(model.ErrCodeInvalidPayment, "payment method must be credit_card or debit_card")
	}
	if strings.TrimSpace(d.CardNumber) == "" {
		return model.NewValidationError(model.ErrCodeInvalidPayment, "card number is required")
	}
	if strings.TrimSpace(d.CardHolder) == "" {
		return model.NewValidationError(model.ErrCodeInvalidPayment, "card holder name is required")
	}
	return nil
}

// maskCard keeps only the last four digits for logging.
func maskCard(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
