package catalog

import (
	"context"
	"fmt"

	"table-together/internal/model"

	"github.com/rs/zerolog"
)

// Lister reads menu rows from a database.
type Lister interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListFoodItems(ctx context.Context) ([]model.FoodItem, error)
}

// repositorySource implements Source on top of a Lister.
type repositorySource struct {
	lister          Lister
	defaultCategory string
	offers          []model.Offer
	logger          zerolog.Logger
}

// NewRepositorySource creates a source backed by database rows. The database
// carries no offers, so the built-in ones are attached.
func NewRepositorySource(lister Lister, defaultCategory string, logger zerolog.Logger) Source {
	return &repositorySource{
		lister:          lister,
		defaultCategory: defaultCategory,
		offers:          DefaultDocument().Offers,
		logger:          logger.With().Str("component", "catalog-repository-source").Logger(),
	}
}

// Load reads categories and food items and builds the catalog.
func (s *repositorySource) Load(ctx context.Context) (*Catalog, error) {
	categories, err := s.lister.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	foods, err := s.lister.ListFoodItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}

	c, err := New(categories, foods, s.offers, s.defaultCategory)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("categories", len(categories)).
		Int("foods", len(foods)).
		Msg("catalog loaded from database")

	return c, nil
}
