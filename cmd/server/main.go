package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/obi/gowallet/internal/adapter/http"
	"github.com/obi/gowallet/internal/adapter/http/handler"
	postgresRepo "github.com/obi/gowallet/internal/adapter/repository/postgres"
	redisRepo "github.com/obi/gowallet/internal/adapter/repository/redis"
	"github.com/obi/gowallet/internal/infrastructure/auth"
	"github.com/obi/gowallet/internal/infrastructure/blacklist"
	"github.com/obi/gowallet/internal/infrastructure/config"
	"github.com/obi/gowallet/internal/infrastructure/logger"
	"github.com/obi/gowallet/internal/infrastructure/metrics"
	"github.com/obi/gowallet/internal/infrastructure/postgres"
	"github.com/obi/gowallet/internal/infrastructure/redis"
	"github.com/obi/gowallet/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	limits, err := parseLimits(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid operation limits")
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

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool, cfg.LockTimeout)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	appMetrics := metrics.New()
	retrier := postgresRepo.NewRetrier(appMetrics)

	// Blacklist screening is disabled unless a URL is configured
	blacklistClient := blacklist.NewClient(
		cfg.BlacklistAPIURL, cfg.BlacklistAPIToken, cfg.BlacklistTimeout, cache, appLogger)

	// Initialize use cases
	walletUC := usecase.NewWalletUseCase(txManager, walletRepo, transactionRepo, idGen, retrier, appMetrics, limits)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo)
	userUC := usecase.NewUserUseCase(txManager, userRepo, walletRepo, blacklistClient, idGen, appMetrics)

	// Initialize handlers
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	walletHandler := handler.NewWalletHandler(walletUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:        authHandler,
		WalletHandler:      walletHandler,
		TransactionHandler: transactionHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		Logger:             appLogger,
	})

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

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func parseLimits(cfg *config.Config) (usecase.Limits, error) {
	minDeposit, err := decimal.NewFromString(cfg.MinDeposit)
	if err != nil {
		return usecase.Limits{}, fmt.Errorf("invalid MIN_DEPOSIT %q: %w", cfg.MinDeposit, err)
	}

	maxDeposit, err := decimal.NewFromString(cfg.MaxDeposit)
	if err != nil {
		return usecase.Limits{}, fmt.Errorf("invalid MAX_DEPOSIT %q: %w", cfg.MaxDeposit, err)
	}

	minWithdrawal, err := decimal.NewFromString(cfg.MinWithdrawal)
	if err != nil {
		return usecase.Limits{}, fmt.Errorf("invalid MIN_WITHDRAWAL %q: %w", cfg.MinWithdrawal, err)
	}

	if maxDeposit.LessThan(minDeposit) {
		return usecase.Limits{}, fmt.Errorf("MAX_DEPOSIT %s is below MIN_DEPOSIT %s", maxDeposit, minDeposit)
	}

	return usecase.Limits{
		MinDeposit:    minDeposit,
		MaxDeposit:    maxDeposit,
		MinWithdrawal: minWithdrawal,
	}, nil
}
