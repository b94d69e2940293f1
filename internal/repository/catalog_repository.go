package repository

import (
	"context"
	"fmt"

	"table-together/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// catalogRepository implements CatalogRepository using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

// ListCategories returns every category in menu order.
func (r *catalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT name, image_path
		FROM categories
		ORDER BY position, name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.Name, &c.ImagePath); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// ListFoodItems returns every food item in menu order.
func (r *catalogRepository) ListFoodItems(ctx context.Context) ([]model.FoodItem, error) {
	query := `
		SELECT name, category, subtitle, price::text, image_path, description
		FROM food_items
		ORDER BY position, name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query food items")
		return nil, fmt.Errorf("failed to query food items: %w", err)
	}
	defer rows.Close()

	foods := make([]model.FoodItem, 0)
	for rows.Next() {
		var (
			f     model.FoodItem
			price string
		)
		if err := rows.Scan(&f.Name, &f.Category, &f.Subtitle, &price, &f.ImagePath, &f.Description); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan food item row")
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}

		f.Price, err = decimal.NewFromString(price)
		if err != nil {
			r.logger.Error().Err(err).Str("food", f.Name).Str("price", price).Msg("invalid stored price")
			return nil, fmt.Errorf("invalid price for %q: %w", f.Name, err)
		}
		foods = append(foods, f)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating food item rows")
		return nil, fmt.Errorf("error iterating food items: %w", err)
	}

	return foods, nil
}

// ReplaceMenu swaps the stored menu for the given one in a single transaction.
func (r *catalogRepository) ReplaceMenu(ctx context.Context, categories []model.Category, foods []model.FoodItem) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to replace menu: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM food_items`); err != nil {
		return fmt.Errorf("failed to clear food items: %w", err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	batch := &pgx.Batch{}
	for i, c := range categories {
		batch.Queue(
			`INSERT INTO categories (position, name, image_path) VALUES ($1, $2, $3)`,
			i, c.Name, c.ImagePath,
		)
	}
	for i, f := range foods {
		batch.Queue(
			`INSERT INTO food_items (position, name, category, subtitle, price, image_path, description)
			 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)`,
			i, f.Name, f.Category, f.Subtitle, f.Price.String(), f.ImagePath, f.Description,
		)
	}

	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error().
			Err(err).
			Int("categories", len(categories)).
			Int("foods", len(foods)).
			Msg("failed to insert menu")
		return fmt.Errorf("failed to insert menu: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to replace menu: %w", err)
	}

	r.logger.Info().
		Int("categories", len(categories)).
		Int("foods", len(foods)).
		Msg("menu replaced")

	return nil
}
