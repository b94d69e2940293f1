package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
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

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// sessionSweepInterval is how often sessions older than the token TTL are removed.
const sessionSweepInterval = time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting table-together API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	menu, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Pending verification codes live in Redis when enabled, in memory otherwise
	var codes verification.CodeStore
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		codes = verification.NewRedisCodeStore(rdb)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis for verification codes")
	} else {
		codes = verification.NewMemoryCodeStore()
		logger.Info().Msg("using in-memory verification codes (redis disabled)")
	}

	// Initialize domain components
	m := metrics.New()
	manager := session.NewManager(menu, logger, m)
	m.TrackSessions(manager.Count)

	verifier := verification.NewVerifier(codes, verification.Config{
		CodeTTL:     cfg.Verification.CodeTTL,
		MaxAttempts: cfg.Verification.MaxAttempts,
	}, logger)
	tokens := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	checkoutService := checkout.NewService(m, logger)

	// Remove sessions whose tokens have expired
	go manager.RunExpiry(ctx, cfg.Auth.TokenTTL, sessionSweepInterval, func(id uuid.UUID) {
		if err := verifier.Cancel(ctx, id); err != nil {
			logger.Warn().Err(err).Str("session_id", id.String()).Msg("failed to cancel pending verification")
		}
	})

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Session:  handler.NewSessionHandler(manager, tokens, verifier, logger),
		Catalog:  handler.NewCatalogHandler(menu, logger),
		Auth:     handler.NewAuthHandler(verifier, logger),
		Address:  handler.NewAddressHandler(logger),
		Cart:     handler.NewCartHandler(logger),
		Favorite: handler.NewFavoriteHandler(logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
		Metrics:  m.Handler(),
	}

	// Initialize router
	mux := router.New(handlers, router.Options{
		APIKey:         cfg.Auth.APIKey,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Tokens:         tokens,
		Sessions:       manager,
		Requests:       m,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Int("active_sessions", manager.Count()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Stop the session sweeper
		cancel()

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadCatalog builds the menu from the configured source. Session state is
// never persisted, so the database pool is only held while the menu loads.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*catalog.Catalog, error) {
	builtin := catalog.NewDefaultSource()

	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return catalog.NewFileLoader(cfg.Catalog.FilePath, logger).Load(ctx)

	case config.CatalogSourceS3:
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.Catalog.S3Bucket, cfg.Catalog.S3Region, cfg.Catalog.S3Key, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 catalog loader, falling back to built-in menu")
			return builtin.Load(ctx)
		}
		return catalog.NewFallbackSource(s3Loader, builtin, logger).Load(ctx)

	case config.CatalogSourcePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		repo := repository.NewCatalogRepository(pool, logger)
		return catalog.NewRepositorySource(repo, "", logger).Load(ctx)

	default:
		logger.Info().Msg("using built-in menu")
		return builtin.Load(ctx)
	}
}
