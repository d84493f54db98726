package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/scriptforge/internal/api/handler"
	mw "github.com/iconidentify/scriptforge/internal/api/middleware"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Action  *handler.ActionHandler
	History *handler.HistoryHandler
	Brand   *handler.BrandHandler
	Health  *handler.HealthHandler
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// Options configures the router middleware.
type Options struct {
	APIKey         string
	RequestTimeout time.Duration
	// HTTPObserver receives per-request metrics when set.
	HTTPObserver mw.HTTPObserver
}

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(h Handlers, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	// CORS first so preflights never reach auth and errors still carry the headers
	r.Use(mw.CORS)
	r.Use(mw.Logger)
	if opts.HTTPObserver != nil {
		r.Use(mw.Metrics(opts.HTTPObserver))
	}
	r.Use(mw.Recovery)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// Health endpoints (no auth)
	r.Get("/health", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	auth := mw.APIKeyAuth(opts.APIKey)

	// Path the hosted browser client calls
	r.With(auth).Post("/functions/v1/gemini-api", h.Action.Handle)

	// API v1 (authenticated)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth)

		r.Post("/actions", h.Action.Handle)
		r.Get("/catalog", handler.Catalog)
		r.Get("/stats", h.Health.Stats)

		// Generation history
		r.Get("/history", h.History.List)
		r.Patch("/history/{id}", h.History.SetUsed)
		r.Post("/history/{id}/toggle", h.History.Toggle)

		// Brands and knowledge base
		r.Get("/brands", h.Brand.List)
		r.Post("/brands", h.Brand.Create)
		r.Get("/brands/{id}/knowledge", h.Brand.ListKnowledge)
		r.Post("/brands/{id}/knowledge", h.Brand.AddKnowledge)
		r.Delete("/knowledge/{id}", h.Brand.DeleteKnowledge)
	})

	return r
}
