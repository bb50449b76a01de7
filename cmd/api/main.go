package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garastore/internal/auth"
	"garastore/internal/config"
	"garastore/internal/database"
	"garastore/internal/events"
	"garastore/internal/handler"
	"garastore/internal/notify"
	"garastore/internal/repository"
	"garastore/internal/router"
	"garastore/internal/service"
	"garastore/internal/storage"
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
	logger.Info().Msg("starting garastore API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.SessionTokenTTL, cfg.Auth.ResetTokenTTL)

	// Initialize mail delivery
	var sender notify.Sender
	if cfg.Mail.Enabled {
		sender, err = notify.NewSMTPSender(cfg.Mail, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize mail sender: %w", err)
		}
	} else {
		sender = notify.NewLogSender(logger)
		logger.Info().Msg("mail disabled, messages will only be logged")
	}

	outbox := notify.NewOutbox(sender, notify.OutboxConfig{
		Workers:    cfg.Outbox.Workers,
		QueueSize:  cfg.Outbox.QueueSize,
		MaxRetries: cfg.Outbox.MaxRetries,
	}, logger)

	// Initialize image storage with S3 and local fallback
	fileUploader, err := storage.NewFileUploader(cfg.Upload.Dir, cfg.Upload.BaseURL, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize upload directory: %w", err)
	}

	var s3Uploader storage.Uploader
	if cfg.S3.Enabled {
		s3Uploader, err = storage.NewS3Uploader(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 uploader, falling back to local file system only")
			s3Uploader = nil
		}
	} else {
		logger.Info().Msg("using local file system for uploads (S3 disabled)")
	}
	uploader := storage.NewFallbackUploader(s3Uploader, fileUploader, cfg.S3.Enabled, logger)

	hub := events.NewHub(logger)

	// Initialize services
	userService := service.NewUserService(userRepo, tokens, outbox, cfg.Server.BaseURL, cfg.Auth.ResetTokenTTL, logger)
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, userRepo, outbox, hub, logger)
	reportService := service.NewReportService(reportRepo, userRepo, cfg.Store.LowStockThreshold, cfg.Store.RecentOrdersLimit, logger)
	seedService := service.NewSeedService(productRepo, userRepo, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		User:      handler.NewUserHandler(userService, logger),
		Product:   handler.NewProductHandler(productService, logger),
		Order:     handler.NewOrderHandler(orderService, reportService, logger),
		Upload:    handler.NewUploadHandler(uploader, logger),
		Store:     handler.NewStoreHandler(seedService, cfg.Store.PayPalClientID, cfg.Store.GoogleAPIKey, logger),
		OrderFeed: hub,
	}, tokens, router.Options{
		UploadDir:   cfg.Upload.Dir,
		SeedEnabled: cfg.Store.SeedEnabled,
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
		hub.Close()
		outbox.Close(context.Background())
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Websocket connections are hijacked and ignored by Shutdown.
		hub.Close()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		if err := outbox.Close(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("outbox did not drain before shutdown deadline")
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
