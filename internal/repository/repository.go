package repository

import (
	"context"

	"table-together/internal/model"
)

// CatalogRepository defines data access for the menu tables.
type CatalogRepository interface {
	// ListCategories returns every category in menu order.
	ListCategories(ctx context.Context) ([]model.Category, error)

	// ListFoodItems returns every food item in menu order.
	ListFoodItems(ctx context.Context) ([]model.FoodItem, error)

	// ReplaceMenu swaps the stored menu for the given one in a single
	// transaction.
	ReplaceMenu(ctx context.Context, categories []model.Category, foods []model.FoodItem) error
}
