package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/maxempolk/bank-card-interface/internal/adapter/http/handler"
	"github.com/maxempolk/bank-card-interface/internal/adapter/http/middleware"
	"github.com/maxempolk/bank-card-interface/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler        *handler.UserHandler
	TransactionHandler *handler.TransactionHandler
	BankHandler        *handler.BankHandler
	RefreshHandler     *handler.RefreshHandler
	HealthHandler      *handler.HealthHandler
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Upstream proxies
		r.Post("/balance", cfg.BankHandler.Balance)

		// Stored transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/fetch", cfg.BankHandler.Transactions)
			r.Post("/save", cfg.TransactionHandler.Save)
			r.Get("/{telegram_user_id}", cfg.TransactionHandler.List)
		})

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", cfg.UserHandler.Register)
			r.Get("/{telegram_user_id}", cfg.UserHandler.Get)
		})

		// Refresh cycle
		r.Post("/refresh", cfg.RefreshHandler.Refresh)
	})

	return r
}
