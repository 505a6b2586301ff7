package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"victus-storefront/internal/backend"
	"victus-storefront/internal/cart"
	"victus-storefront/internal/config"
	"victus-storefront/internal/coupon"
	"victus-storefront/internal/database"
	"victus-storefront/internal/handler"
	"victus-storefront/internal/metrics"
	"victus-storefront/internal/repository"
	"victus-storefront/internal/router"
	"victus-storefront/internal/service"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Outside production a local .env fills in whatever the environment
	// does not already set.
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read .env: %w", err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting victus storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Checkout ledger: postgres when configured, process memory otherwise
	var ledger repository.CheckoutAttemptRepository
	if cfg.Database.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		ledger = repository.NewCheckoutAttemptRepository(pool, logger)
	} else {
		logger.Info().Msg("database disabled, keeping checkout attempts in memory")
		ledger = repository.NewMemoryAttemptRepository()
	}

	// Cart sessions and their janitor
	registry := cart.NewRegistry(cfg.Session.TTL, logger)
	if cfg.Session.TTL > 0 {
		go registry.Run(ctx, cfg.Session.SweepInterval)
	}
	if err := metrics.RegisterSessionGauge(prometheus.DefaultRegisterer, registry.Len); err != nil {
		return fmt.Errorf("failed to register session gauge: %w", err)
	}

	// Backend REST client
	client := backend.New(cfg.Backend, logger)
	logger.Info().
		Str("base_url", cfg.Backend.BaseURL).
		Bool("circuit_breaker", cfg.Backend.BreakerEnabled).
		Msg("backend client configured")

	validator := coupon.NewValidator(client, logger)

	// Initialize services
	cartService := service.NewCartService(registry, validator, logger)
	checkoutService := service.NewCheckoutService(registry, client, client, ledger, logger)
	catalogService := service.NewCatalogService(client, logger)
	orderService := service.NewOrderService(client, logger)
	adminService := service.NewAdminService(client, client, client, client, logger)

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Cart:     handler.NewCartHandler(cartService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
		Product:  handler.NewProductHandler(catalogService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Admin:    handler.NewAdminHandler(adminService, logger),
	}, cfg.Auth.APIKey, prometheus.DefaultGatherer, logger)

	// Create HTTP server. Checkout may chain several backend calls, so the
	// write timeout leaves room for them.
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 6*cfg.Backend.Timeout + 15*time.Second,
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
			Msg("shutdown signal received, starting graceful shutdown")

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
