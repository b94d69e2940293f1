package catalog

import (
	"context"
	"fmt"

	"table-together/internal/model"
)

// Source produces a catalog at process start.
type Source interface {
	// Load builds the catalog. It is called once; the result is never mutated.
	Load(ctx context.Context) (*Catalog, error)
}

// Catalog is the immutable menu shared by every session.
type Catalog struct {
	categories      []model.Category
	foods           []model.FoodItem
	offers          []model.Offer
	categoryIndex   map[string]int
	foodIndex       map[string]int
	defaultCategory string
}

// New validates the given menu and returns a catalog. When defaultCategory is
// empty the first category is the default.
func New(categories []model.Category, foods []model.FoodItem, offers []model.Offer, defaultCategory string) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, invalid("catalog must contain at least one category")
	}

	c := &Catalog{
		categories:    append([]model.Category(nil), categories...),
		foods:         append([]model.FoodItem(nil), foods...),
		offers:        append([]model.Offer(nil), offers...),
		categoryIndex: make(map[string]int, len(categories)),
		foodIndex:     make(map[string]int, len(foods)),
	}

	for i, cat := range c.categories {
		if cat.Name == "" {
			return nil, invalid(fmt.Sprintf("category %d: name is required", i))
		}
		if _, exists := c.categoryIndex[cat.Name]; exists {
			return nil, invalid(fmt.Sprintf("duplicate category %q", cat.Name))
		}
		c.categoryIndex[cat.Name] = i
	}

	for i, food := range c.foods {
		if food.Name == "" {
			return nil, invalid(fmt.Sprintf("food %d: name is required", i))
		}
		if _, exists := c.foodIndex[food.Name]; exists {
			return nil, invalid(fmt.Sprintf("duplicate food %q", food.Name))
		}
		if _, ok := c.categoryIndex[food.Category]; !ok {
			return nil, invalid(fmt.Sprintf("food %q references unknown category %q", food.Name, food.Category))
		}
		if food.Price.IsNegative() {
			return nil, invalid(fmt.Sprintf("food %q has negative price %s", food.Name, food.Price))
		}
		c.foodIndex[food.Name] = i
	}

	if defaultCategory == "" {
		defaultCategory = c.categories[0].Name
	}
	if _, ok := c.categoryIndex[defaultCategory]; !ok {
		return nil, invalid(fmt.Sprintf("default category %q is not in the catalog", defaultCategory))
	}
	c.defaultCategory = defaultCategory

	return c, nil
}

func invalid(msg string) error {
	return model.NewValidationError(model.ErrCodeInvalidCatalog, msg)
}

// Categories returns the categories in catalog order.
func (c *Catalog) Categories() []model.Category {
	return append([]model.Category(nil), c.categories...)
}

// Foods returns every food item in catalog order.
func (c *Catalog) Foods() []model.FoodItem {
	return append([]model.FoodItem(nil), c.foods...)
}

// FoodsInCategory returns, in catalog order, the items of the named category.
func (c *Catalog) FoodsInCategory(name string) []model.FoodItem {
	foods := make([]model.FoodItem, 0)
	for _, f := range c.foods {
		if f.Category == name {
			foods = append(foods, f)
		}
	}
	return foods
}

// Category looks up a category by name.
func (c *Catalog) Category(name string) (model.Category, bool) {
	i, ok := c.categoryIndex[name]
	if !ok {
		return model.Category{}, false
	}
	return c.categories[i], true
}

// HasCategory reports whether the named category exists.
func (c *Catalog) HasCategory(name string) bool {
	_, ok := c.categoryIndex[name]
	return ok
}

// Food looks up a food item by name.
func (c *Catalog) Food(name string) (model.FoodItem, bool) {
	i, ok := c.foodIndex[name]
	if !ok {
		return model.FoodItem{}, false
	}
	return c.foods[i], true
}

// DefaultCategory is the category a new session starts on.
func (c *Catalog) DefaultCategory() model.Category {
	return c.categories[c.categoryIndex[c.defaultCategory]]
}

// Offers returns the promotional offers.
func (c *Catalog) Offers() []model.Offer {
	return append([]model.Offer(nil), c.offers...)
}

// Document is the serialised form of a catalog used by the file and S3
// sources.
type Document struct {
	DefaultCategory string           `json:"defaultCategory,omitempty"`
	Categories      []model.Category `json:"categories"`
	Foods           []model.FoodItem `json:"foods"`
	Offers          []model.Offer    `json:"offers,omitempty"`
}

// Build validates the document and returns the catalog it describes.
func (d Document) Build() (*Catalog, error) {
	return New(d.Categories, d.Foods, d.Offers, d.DefaultCategory)
}

// ToDocument serialises c.
func (c *Catalog) ToDocument() Document {
	return Document{
		DefaultCategory: c.defaultCategory,
		Categories:      c.Categories(),
		Foods:           c.Foods(),
		Offers:          c.Offers(),
	}
}
