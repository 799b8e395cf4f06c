package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/bozor/daftar/internal/adapter/http"
	"github.com/bozor/daftar/internal/adapter/http/handler"
	postgresRepo "github.com/bozor/daftar/internal/adapter/repository/postgres"
	redisRepo "github.com/bozor/daftar/internal/adapter/repository/redis"
	"github.com/bozor/daftar/internal/infrastructure/auth"
	"github.com/bozor/daftar/internal/infrastructure/config"
	"github.com/bozor/daftar/internal/infrastructure/eventpublisher"
	"github.com/bozor/daftar/internal/infrastructure/logger"
	"github.com/bozor/daftar/internal/infrastructure/metrics"
	"github.com/bozor/daftar/internal/infrastructure/postgres"
	"github.com/bozor/daftar/internal/infrastructure/redis"
	"github.com/bozor/daftar/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	confirmationRepo := postgresRepo.NewConfirmationRepository(pool)
	marketRepo := postgresRepo.NewMarketRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	profileRepo := postgresRepo.NewProfileRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	confirmationUC := usecase.NewConfirmationUseCase(
		txManager, entryRepo, confirmationRepo, marketRepo, profileRepo,
		outboxRepo, idGen, retrier, appMetrics,
	)
	entryUC := usecase.NewEntryUseCase(txManager, entryRepo, confirmationUC, idGen, appMetrics)
	marketUC := usecase.NewMarketUseCase(txManager, marketRepo, outboxRepo, cache, idGen)
	productUC := usecase.NewProductUseCase(productRepo, idGen)
	profileUC := usecase.NewProfileUseCase(userRepo, profileRepo, idGen)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(profileUC, jwtManager)
	entryHandler := handler.NewEntryHandler(entryUC)
	confirmationHandler := handler.NewConfirmationHandler(confirmationUC)
	marketHandler := handler.NewMarketHandler(marketUC)
	productHandler := handler.NewProductHandler(productUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:         authHandler,
		EntryHandler:        entryHandler,
		ConfirmationHandler: confirmationHandler,
		MarketHandler:       marketHandler,
		ProductHandler:      productHandler,
		HealthHandler:       healthHandler,
		JWTManager:          jwtManager,
		IdempotencyStore:    idempotencyStore,
		Metrics:             appMetrics,
		Logger:              appLogger,
	})

	// Outbox publisher pushes change events to Redis pub/sub
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewRedisPublisher(redisClient, cfg.EventChannel),
		BatchSize:  cfg.PublisherBatch,
		Interval:   cfg.PublisherInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
