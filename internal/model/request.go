package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
	Token     string    `json:"token"`
}

// ProfileRequest updates the identity fields of the profile.
type ProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SelectCategoryRequest names the category to browse.
type SelectCategoryRequest struct {
	Name string `json:"name"`
}

// SelectAddressRequest names the saved address to deliver to.
type SelectAddressRequest struct {
	ID uuid.UUID `json:"id"`
}

// AddressResponse lists saved addresses and the current selection.
type AddressResponse struct {
	Addresses         []SavedAddress `json:"addresses"`
	SelectedAddressID *uuid.UUID     `json:"selectedAddressId,omitempty"`
}

// AddToCartRequest adds a catalog item to the cart. Quantity defaults to one.
type AddToCartRequest struct {
	FoodName string `json:"foodName"`
	Quantity *int   `json:"quantity,omitempty"`
}

// ToggleFavoriteRequest names the catalog item to toggle.
type ToggleFavoriteRequest struct {
	FoodName string `json:"foodName"`
}

// FavoriteResponse reports membership after a toggle.
type FavoriteResponse struct {
	FoodName   string `json:"foodName"`
	IsFavorite bool   `json:"isFavorite"`
}

// VerifyRequest carries the one-time code typed by the user.
type VerifyRequest struct {
	Code string `json:"code"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status   string    `json:"status"`
	Sessions int       `json:"sessions"`
	Time     time.Time `json:"time"`
}
