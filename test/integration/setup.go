package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"table-together/internal/auth"
	"table-together/internal/catalog"
	"table-together/internal/checkout"
	"table-together/internal/config"
	"table-together/internal/database"
	"table-together/internal/handler"
	"table-together/internal/metrics"
	"table-together/internal/repository"
	"table-together/internal/router"
	"table-together/internal/session"
	"table-together/internal/verification"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testAPIKey = "test-api-key"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB creates a PostgreSQL test container with the menu schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// SeedMenu writes the built-in menu into the database.
func SeedMenu(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	doc := catalog.DefaultDocument()
	repo := repository.NewCatalogRepository(pool, zerolog.Nop())
	if err := repo.ReplaceMenu(context.Background(), doc.Categories, doc.Foods); err != nil {
		t.Fatalf("failed to seed menu: %v", err)
	}
}

// CleanupDB removes all menu rows.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	for _, table := range []string{"food_items", "categories"} {
		if _, err := pool.Exec(context.Background(), fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// TestServer is a running API wired the same way as cmd/api.
type TestServer struct {
	URL      string
	Redis    *miniredis.Miniredis
	Sessions *session.Manager
}

// SetupTestServer starts the API over menu, keeping verification codes in
// an in-process Redis.
func SetupTestServer(t *testing.T, menu *catalog.Catalog) *TestServer {
	t.Helper()

	logger := zerolog.Nop()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := metrics.New()
	manager := session.NewManager(menu, logger, m)
	m.TrackSessions(manager.Count)

	verifier := verification.NewVerifier(verification.NewRedisCodeStore(rdb), verification.DefaultConfig(), logger)
	tokens := auth.NewTokenIssuer("integration-secret", time.Hour)

	handlers := router.Handlers{
		Session:  handler.NewSessionHandler(manager, tokens, verifier, logger),
		Catalog:  handler.NewCatalogHandler(menu, logger),
		Auth:     handler.NewAuthHandler(verifier, logger),
		Address:  handler.NewAddressHandler(logger),
		Cart:     handler.NewCartHandler(logger),
		Favorite: handler.NewFavoriteHandler(logger),
		Checkout: handler.NewCheckoutHandler(checkout.NewService(m, logger), logger),
		Metrics:  m.Handler(),
	}

	var h http.Handler = router.New(handlers, router.Options{
		APIKey:         testAPIKey,
		AllowedOrigins: []string{"*"},
		Tokens:         tokens,
		Sessions:       manager,
		Requests:       m,
	}, logger)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &TestServer{
		URL:      srv.URL,
		Redis:    mr,
		Sessions: manager,
	}
}
