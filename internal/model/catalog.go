package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category is a menu section. Name is its unique key.
type Category struct {
	Name      string `json:"name"`
	ImagePath string `json:"imagePath"`
}

// FoodItem is a menu entry. It has no identifier of its own: two items are the
// same item when every field is equal, so use Equal or Key rather than ==
// (Price holds a pointer internally).
type FoodItem struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Subtitle    string          `json:"subtitle"`
	Price       decimal.Decimal `json:"price"`
	ImagePath   string          `json:"imagePath"`
	Description string          `json:"description"`
}

// Equal reports whether f and other hold the same values.
func (f FoodItem) Equal(other FoodItem) bool {
	return f.Name == other.Name &&
		f.Category == other.Category &&
		f.Subtitle == other.Subtitle &&
		f.Price.Equal(other.Price) &&
		f.ImagePath == other.ImagePath &&
		f.Description == other.Description
}

// Key returns a string that is identical for equal items and distinct
// otherwise. It is used as a map key for favorites and cart lookups.
func (f FoodItem) Key() string {
	return strings.Join([]string{
		f.Name,
		f.Category,
		f.Subtitle,
		f.Price.String(),
		f.ImagePath,
		f.Description,
	}, "\x1f")
}

// Offer is a static promotion shown on the home screen.
type Offer struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
}
