package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeQuantityTooLarge  = "QUANTITY_TOO_LARGE"
	ErrCodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
	ErrCodeAddressNotFound   = "ADDRESS_NOT_FOUND"
	ErrCodeFoodNotFound      = "FOOD_NOT_FOUND"
	ErrCodeSessionNotFound   = "SESSION_NOT_FOUND"
	ErrCodeChallengeNotFound = "CHALLENGE_NOT_FOUND"
	ErrCodeIncorrectCode     = "INCORRECT_CODE"
	ErrCodeTooManyAttempts   = "TOO_MANY_ATTEMPTS"
	ErrCodePasswordMismatch  = "PASSWORD_MISMATCH"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInvalidPayment    = "INVALID_PAYMENT"
	ErrCodeInvalidCatalog    = "INVALID_CATALOG"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Error kinds. Every DomainError unwraps to exactly one of these so callers
// can branch with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// DomainError is a business rule failure carrying an API error code.
type DomainError struct {
	Code    string
	Message string
	Kind    error
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the error kind.
func (e *DomainError) Unwrap() error {
	return e.Kind
}

// NewDomainError creates a new domain error
func NewDomainError(kind error, code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Kind:    kind,
	}
}

// NewValidationError creates a domain error of kind ErrValidation.
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(ErrValidation, code, message)
}

// NewNotFoundError creates a domain error of kind ErrNotFound.
func NewNotFoundError(code, message string) *DomainError {
	return NewDomainError(ErrNotFound, code, message)
}

// Common domain errors
var (
	ErrInvalidQuantity   = NewValidationError(ErrCodeInvalidQuantity, "Quantity must be at least one")
	ErrQuantityTooLarge  = NewValidationError(ErrCodeQuantityTooLarge, "Quantity exceeds the per-item limit")
	ErrCategoryNotFound  = NewNotFoundError(ErrCodeCategoryNotFound, "Category not found in catalog")
	ErrAddressNotFound   = NewNotFoundError(ErrCodeAddressNotFound, "Saved address not found")
	ErrFoodNotFound      = NewNotFoundError(ErrCodeFoodNotFound, "Food item not found in catalog")
	ErrSessionNotFound   = NewNotFoundError(ErrCodeSessionNotFound, "Session not found")
	ErrChallengeNotFound = NewNotFoundError(ErrCodeChallengeNotFound, "No pending verification for this session")
	ErrIncorrectCode     = NewDomainError(ErrUnauthorized, ErrCodeIncorrectCode, "Incorrect code, check the log and try again")
	ErrTooManyAttempts   = NewDomainError(ErrUnauthorized, ErrCodeTooManyAttempts, "Too many incorrect codes, try again later")
	ErrPasswordMismatch  = NewValidationError(ErrCodePasswordMismatch, "Passwords do not match")
	ErrEmptyCart         = NewValidationError(ErrCodeEmptyCart, "Cart is empty")
)

// CodeOf returns the API error code of err, or ErrCodeInternalError when err
// carries none.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternalError
}
