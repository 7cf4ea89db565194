package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	adaptershttp "github.com/obi/gowallet/internal/adapter/http"
	"github.com/obi/gowallet/internal/adapter/http/handler"
	"github.com/obi/gowallet/internal/adapter/repository/postgres"
	redisrepo "github.com/obi/gowallet/internal/adapter/repository/redis"
	"github.com/obi/gowallet/internal/domain"
	"github.com/obi/gowallet/internal/infrastructure/auth"
	infraredis "github.com/obi/gowallet/internal/infrastructure/redis"
	"github.com/obi/gowallet/internal/usecase"
)

type testEnv struct {
	router     http.Handler
	jwtManager *auth.JWTManager
	walletRepo *postgres.WalletRepository
	txnRepo    *postgres.TransactionRepository
	walletUC   *usecase.WalletUseCase
}

func newTestEnv(t *testing.T, pool *pgxpool.Pool) *testEnv {
	t.Helper()

	ctx := context.Background()

	walletRepo := postgres.NewWalletRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txManager := postgres.NewTxManager(pool, 3*time.Second)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(nil)

	walletUC := usecase.NewWalletUseCase(
		txManager, walletRepo, transactionRepo, idGen, retrier, nil, usecase.DefaultLimits())
	transactionUC := usecase.NewTransactionUseCase(transactionRepo)
	userUC := usecase.NewUserUseCase(txManager, userRepo, walletRepo, alwaysClean{}, idGen, nil)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	jwtManager := auth.NewJWTManager("integration-secret", time.Hour)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AuthHandler:        handler.NewAuthHandler(userUC, jwtManager),
		WalletHandler:      handler.NewWalletHandler(walletUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
		Logger:             zerolog.Nop(),
	})

	return &testEnv{
		router:     router,
		jwtManager: jwtManager,
		walletRepo: walletRepo,
		txnRepo:    transactionRepo,
		walletUC:   walletUC,
	}
}

func (e *testEnv) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()

	token, err := e.jwtManager.Generate(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

type alwaysClean struct{}

func (alwaysClean) IsBlacklisted(ctx context.Context, identity string) (bool, error) {
	return false, nil
}
