package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/obi/gowallet/internal/adapter/http/handler"
	"github.com/obi/gowallet/internal/adapter/http/middleware"
	"github.com/obi/gowallet/internal/infrastructure/auth"
	"github.com/obi/gowallet/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	WalletHandler      *handler.WalletHandler
	TransactionHandler *handler.TransactionHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Auth, rate limited per IP
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.NewRateLimiter(5, 10).Limit)
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		// Everything below requires a verified token
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", cfg.WalletHandler.Get)
				r.Post("/fund", cfg.WalletHandler.Fund)
				r.Post("/withdraw", cfg.WalletHandler.Withdraw)
				r.Post("/transfer", cfg.WalletHandler.Transfer)
				r.Get("/transactions", cfg.TransactionHandler.ListByUser)
			})

			r.Get("/transactions/{reference}", cfg.TransactionHandler.GetByReference)
		})
	})

	return r
}
