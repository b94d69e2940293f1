package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one aggregated cart row for a single food item.
type CartLine struct {
	ID       uuid.UUID `json:"id"`
	Food     FoodItem  `json:"food"`
	Quantity int       `json:"quantity"`
}

// Subtotal returns quantity × price.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Food.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SavedAddress is a user-entered delivery address.
type SavedAddress struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	State string    `json:"state"`
	Line1 string    `json:"line1"`
	Apt   string    `json:"apt,omitempty"`
	City  string    `json:"city"`
	Zip   string    `json:"zip"`
}

// AddressInput holds the fields of a new address. Apt is optional.
type AddressInput struct {
	Label string `json:"label"`
	State string `json:"state"`
	Line1 string `json:"line1"`
	Apt   string `json:"apt"`
	City  string `json:"city"`
	Zip   string `json:"zip"`
}

// UserProfile is the identity attached to a session.
type UserProfile struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// CartSummary is the cart with its derived totals.
type CartSummary struct {
	Lines         []CartLine      `json:"lines"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// SessionSnapshot is a consistent copy of one session's state.
type SessionSnapshot struct {
	ID                uuid.UUID      `json:"id"`
	User              UserProfile    `json:"user"`
	Addresses         []SavedAddress `json:"addresses"`
	SelectedAddressID *uuid.UUID     `json:"selectedAddressId,omitempty"`
	SelectedCategory  Category       `json:"selectedCategory"`
	Cart              CartSummary    `json:"cart"`
	Favorites         []FoodItem     `json:"favorites"`
}

// Receipt is the in-memory confirmation returned by a simulated checkout.
// It is not stored anywhere.
type Receipt struct {
	ID            uuid.UUID       `json:"id"`
	Method        string          `json:"method"`
	Items         []CartLine      `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PlacedAt      time.Time       `json:"placedAt"`
	Message       string          `json:"message"`
}
