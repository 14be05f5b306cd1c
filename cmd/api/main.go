package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mattress-shop/internal/carrier"
	"mattress-shop/internal/config"
	"mattress-shop/internal/database"
	"mattress-shop/internal/handler"
	"mattress-shop/internal/notify"
	"mattress-shop/internal/payment"
	"mattress-shop/internal/promo"
	"mattress-shop/internal/repository"
	"mattress-shop/internal/router"
	"mattress-shop/internal/service"

	"github.com/rs/zerolog"
)

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
	logger.Info().Msg("starting mattress-shop API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool and schema
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	promoRepo := repository.NewPromoCodeRepository(pool, logger)

	if cfg.PromoFile != "" {
		if err := importPromoCodes(ctx, cfg, promoRepo, logger); err != nil {
			return err
		}
	}

	// Initialize domain components
	validator := promo.NewValidator(promoRepo, logger)
	sender, err := notify.NewSender(cfg.Mail, logger)
	if err != nil {
		return err
	}
	reconciler := payment.NewReconciler(cfg.WayForPay, orderRepo, validator, sender, logger)
	initiator := payment.NewInitiator(cfg.WayForPay, orderRepo, logger)
	carrierClient := carrier.NewClient(cfg.NovaPoshta, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, validator, cfg.Shop.DeliveryPrice, logger)
	promoService := service.NewPromoService(promoRepo, validator, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Promo:    handler.NewPromoHandler(promoService, logger),
		Payment:  handler.NewPaymentHandler(reconciler, initiator, logger),
		Delivery: handler.NewDeliveryHandler(carrierClient, logger),
	}, cfg.Auth.APIKey, logger)

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
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// importPromoCodes upserts the configured promo code file, reading it from S3
// when enabled and from the local file system otherwise.
func importPromoCodes(ctx context.Context, cfg *config.Config, repo repository.PromoCodeRepository, logger zerolog.Logger) error {
	fileLoader := promo.NewFileLoader(logger)

	var s3Loader promo.Loader
	if cfg.S3.Enabled {
		l, err := promo.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for promo code files (S3 disabled)")
	}

	loader := promo.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	result, err := promo.Import(ctx, loader, cfg.PromoFile, repo, logger)
	if err != nil {
		return fmt.Errorf("failed to import promo codes: %w", err)
	}

	logger.Info().
		Str("file", cfg.PromoFile).
		Int("loaded", result.Loaded).
		Int("upserted", result.Upserted).
		Int("failed", result.Failed).
		Msg("promo codes imported")

	return nil
}
