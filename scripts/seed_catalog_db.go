//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"table-together/internal/catalog"
	"table-together/internal/config"
	"table-together/internal/database"
	"table-together/internal/repository"
)

// Creates the menu tables and loads the built-in menu into them, using the
// same DB_* environment variables as the server.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	doc := catalog.DefaultDocument()
	repo := repository.NewCatalogRepository(pool, logger)
	if err := repo.ReplaceMenu(ctx, doc.Categories, doc.Foods); err != nil {
		return err
	}

	// Read it back through the same path the server uses.
	c, err := catalog.NewRepositorySource(repo, doc.DefaultCategory, logger).Load(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %s with %d categories and %d foods\n",
		cfg.Database.Database, len(c.Categories()), len(c.Foods()))
	return nil
}
