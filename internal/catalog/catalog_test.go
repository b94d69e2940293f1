package catalog

import (
	"errors"
	"testing"

	"table-together/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Len(t, c.Categories(), 5)
	assert.Len(t, c.Foods(), 12)
	assert.Len(t, c.Offers(), 3)
	assert.Equal(t, "Burger Meals", c.DefaultCategory().Name)

	beef, ok := c.Food("Beef Burger")
	require.True(t, ok)
	assert.True(t, beef.Price.Equal(decimal.RequireFromString("6.15")))
}

func TestCatalog_FoodsInCategory(t *testing.T) {
	c := Default()

	burgers := c.FoodsInCategory("Burger Meals")
	names := make([]string, len(burgers))
	for i, f := range burgers {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Beef Burger", "Double Burger", "Crispy Chicken Burger", "House Hamburger"}, names)

	assert.Empty(t, c.FoodsInCategory("Sushi"))
	assert.NotNil(t, c.FoodsInCategory("Sushi"))
}

func TestCatalog_Lookups(t *testing.T) {
	c := Default()

	cat, ok := c.Category("Pizza")
	assert.True(t, ok)
	assert.Equal(t, "pizza3", cat.ImagePath)

	_, ok = c.Category("Sushi")
	assert.False(t, ok)

	assert.True(t, c.HasCategory("Sandwiches"))
	assert.False(t, c.HasCategory("sandwiches"))

	_, ok = c.Food("Nothing")
	assert.False(t, ok)
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Default()

	cats := c.Categories()
	cats[0].Name = "Changed"
	assert.Equal(t, "Burger Meals", c.Categories()[0].Name)

	foods := c.Foods()
	foods[0].Name = "Changed"
	assert.Equal(t, "Beef Burger", c.Foods()[0].Name)
}

func TestNew_Validation(t *testing.T) {
	burgers := model.Category{Name: "Burgers"}
	validFood := model.FoodItem{Name: "Burger", Category: "Burgers", Price: decimal.NewFromInt(5)}

	tests := []struct {
		name            string
		categories      []model.Category
		foods           []model.FoodItem
		defaultCategory string
		errorMsg        string
	}{
		{
			name:     "No categories",
			errorMsg: "at least one category",
		},
		{
			name:       "Empty category name",
			categories: []model.Category{{Name: ""}},
			errorMsg:   "name is required",
		},
		{
			name:       "Duplicate category",
			categories: []model.Category{burgers, burgers},
			errorMsg:   "duplicate category",
		},
		{
			name:       "Duplicate food",
			categories: []model.Category{burgers},
			foods:      []model.FoodItem{validFood, validFood},
			errorMsg:   "duplicate food",
		},
		{
			name:       "Unknown category",
			categories: []model.Category{burgers},
			foods:      []model.FoodItem{{Name: "Pizza", Category: "Pizza", Price: decimal.NewFromInt(9)}},
			errorMsg:   "unknown category",
		},
		{
			name:       "Negative price",
			categories: []model.Category{burgers},
			foods:      []model.FoodItem{{Name: "Burger", Category: "Burgers", Price: decimal.NewFromInt(-1)}},
			errorMsg:   "negative price",
		},
		{
			name:            "Unknown default category",
			categories:      []model.Category{burgers},
			foods:           []model.FoodItem{validFood},
			defaultCategory: "Pizza",
			errorMsg:        "default category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.categories, tt.foods, nil, tt.defaultCategory)

			require.Error(t, err)
			assert.Nil(t, c)
			assert.Contains(t, err.Error(), tt.errorMsg)
			assert.True(t, errors.Is(err, model.ErrValidation))
		})
	}
}

func TestNew_DefaultsToFirstCategory(t *testing.T) {
	c, err := New([]model.Category{{Name: "A"}, {Name: "B"}}, nil, nil, "")

	require.NoError(t, err)
	assert.Equal(t, "A", c.DefaultCategory().Name)
}

func TestCatalog_DocumentRoundTrip(t *testing.T) {
	c := Default()

	rebuilt, err := c.ToDocument().Build()

	require.NoError(t, err)
	assert.Equal(t, c.DefaultCategory(), rebuilt.DefaultCategory())
	assert.Equal(t, len(c.Foods()), len(rebuilt.Foods()))
}
