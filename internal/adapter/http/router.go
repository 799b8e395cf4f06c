package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bozor/daftar/internal/adapter/http/handler"
	"github.com/bozor/daftar/internal/adapter/http/middleware"
	"github.com/bozor/daftar/internal/infrastructure/auth"
	"github.com/bozor/daftar/internal/infrastructure/metrics"
	"github.com/bozor/daftar/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	EntryHandler        *handler.EntryHandler
	ConfirmationHandler *handler.ConfirmationHandler
	MarketHandler       *handler.MarketHandler
	ProductHandler      *handler.ProductHandler
	HealthHandler       *handler.HealthHandler
	JWTManager          *auth.JWTManager
	IdempotencyStore    usecase.IdempotencyStore
	Metrics             *metrics.Metrics
	Logger              zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.With(middleware.AuthMiddleware(cfg.JWTManager)).Get("/me", cfg.AuthHandler.Me)
		})

		// Everything below requires a valid token
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Route("/entries", func(r chi.Router) {
				r.With(middleware.RequireRecorder).Post("/", cfg.EntryHandler.Create)
				r.Get("/", cfg.EntryHandler.List)
				r.Get("/{id}", cfg.EntryHandler.Get)
				r.With(middleware.RequireRecorder).Patch("/{id}", cfg.EntryHandler.Update)
				r.With(middleware.RequireRecorder).Delete("/{id}", cfg.EntryHandler.Delete)
				r.With(middleware.RequireRecorder).Post("/{id}/confirmations", cfg.ConfirmationHandler.Request)
			})

			r.Route("/confirmations", func(r chi.Router) {
				r.With(middleware.RequireReviewer).Get("/", cfg.ConfirmationHandler.Queue)
				r.Get("/{id}", cfg.ConfirmationHandler.Get)
				r.With(middleware.RequireReviewer).Post("/{id}/approve", cfg.ConfirmationHandler.Approve)
				r.With(middleware.RequireReviewer).Post("/{id}/reject", cfg.ConfirmationHandler.Reject)
			})

			r.Route("/markets", func(r chi.Router) {
				r.Post("/", cfg.MarketHandler.Create)
				r.Get("/", cfg.MarketHandler.List)
				r.Get("/{id}", cfg.MarketHandler.Get)
				r.Delete("/{id}", cfg.MarketHandler.Delete)
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", cfg.ProductHandler.Create)
				r.Get("/", cfg.ProductHandler.List)
				r.Delete("/{id}", cfg.ProductHandler.Delete)
			})
		})
	})

	return r
}
