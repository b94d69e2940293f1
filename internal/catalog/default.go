package catalog

import (
	"context"

	"table-together/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultCategoryName is the category a session opens on with the built-in menu.
const DefaultCategoryName = "Burger Meals"

// DefaultDocument returns the built-in menu.
func DefaultDocument() Document {
	return Document{
		DefaultCategory: DefaultCategoryName,
		Categories: []model.Category{
			{Name: "Burger Meals", ImagePath: "burger2"},
			{Name: "Pizza", ImagePath: "pizza3"},
			{Name: "Sandwiches", ImagePath: "sandwich"},
			{Name: "Cupcakes & Cakes", ImagePath: "cupcake"},
			{Name: "Fries & Sides", ImagePath: "bur3"},
		},
		Foods: []model.FoodItem{
			food("Beef Burger", "Burger Meals", "Cheesy beef", "6.15", "bur1",
				"Juicy grilled beef patty with melted cheese and fresh vegetables."),
			food("Double Burger", "Burger Meals", "Double beef", "7.80", "bur2",
				"Two beef patties, double cheese, pickles and our house sauce."),
			food("Crispy Chicken Burger", "Burger Meals", "Fried chicken", "7.20", "burger1",
				"Crispy fried chicken burger with lettuce and mayo."),
			food("House Hamburger", "Burger Meals", "House classic", "6.99", "hamburger",
				"Classic hamburger with toasted bun and fresh veggies."),

			food("Pepperoni Pizza", "Pizza", `12" pepperoni`, "10.99", "pizza3",
				"Crispy crust pizza topped with pepperoni and mozzarella."),
			food("Veggie Delight Pizza", "Pizza", "Loaded with veggies", "9.99", "pizza1",
				"Pizza with bell peppers, onions, olives and mushrooms."),
			food("Cheese Lovers Pizza", "Pizza", "Extra cheese", "11.49", "pizza2-1",
				"Three-cheese blend on a crispy thin crust."),

			food("Grilled Cheese Sandwich", "Sandwiches", "Cheesy & crispy", "5.99", "sandwich",
				"Grilled sandwich with melted cheese and toasted bread."),
			food("Veggie Sandwich", "Sandwiches", "Light & fresh", "5.49", "sandwich",
				"Sandwich with fresh vegetables and house sauce."),

			food("Chocolate Cupcake", "Cupcakes & Cakes", "Rich chocolate", "3.50", "cup3",
				"Moist chocolate cupcake with creamy frosting."),
			food("Vanilla Cupcake", "Cupcakes & Cakes", "Light & fluffy", "3.00", "cup1",
				"Classic vanilla cupcake with buttercream frosting."),

			food("Golden Fries", "Fries & Sides", "Crispy & hot", "4.25", "bur3",
				"Crispy golden fries with house seasoning."),
		},
		Offers: []model.Offer{
			{Title: "20% OFF on Burgers", Subtitle: "Use code BURGER20 on orders above $20.", Icon: "hamburger"},
			{Title: "Free Fries Friday", Subtitle: "Free fries with any pizza every Friday.", Icon: "pizza3"},
			{Title: "Dessert Delight", Subtitle: "Buy 2 cupcakes, get 1 free.", Icon: "cupcake"},
		},
	}
}

func food(name, category, subtitle, price, image, description string) model.FoodItem {
	return model.FoodItem{
		Name:        name,
		Category:    category,
		Subtitle:    subtitle,
		Price:       decimal.RequireFromString(price),
		ImagePath:   image,
		Description: description,
	}
}

// Default returns the built-in catalog. It panics only if the built-in menu
// is itself invalid.
func Default() *Catalog {
	c, err := DefaultDocument().Build()
	if err != nil {
		panic("built-in catalog is invalid: " + err.Error())
	}
	return c
}

// StaticSource serves a fixed document.
type StaticSource struct {
	Document Document
}

// NewDefaultSource returns a source for the built-in menu.
func NewDefaultSource() *StaticSource {
	return &StaticSource{Document: DefaultDocument()}
}

// Load builds the catalog from the fixed document.
func (s *StaticSource) Load(_ context.Context) (*Catalog, error) {
	return s.Document.Build()
}
