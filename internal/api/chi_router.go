// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/folio/internal/middleware"
)

// RouterConfig selects optional routes.
type RouterConfig struct {
	// MetricsEnabled mounts the Prometheus handler at /metrics.
	MetricsEnabled bool

	// Middleware configures CORS and rate limiting. Nil uses the defaults.
	Middleware *ChiMiddlewareConfig
}

// NewRouter builds the chi router for handler.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	chiMw := NewChiMiddleware(cfg.Middleware)

	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.PrometheusMetrics) // outside Recoverer so panics are counted as 500
	r.Use(chimiddleware.Recoverer)
	r.Use(chiMw.CORS())
	r.Use(APISecurityHeaders())
	r.Use(middleware.Compression)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).MethodNotAllowed()
	})

	// ========================
	// HTML Page
	// ========================
	r.With(chiMw.RateLimit("/")).Get("/", handler.Index)

	// ========================
	// Health Endpoints
	// ========================
	// Not rate limited so probes never see 429.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", handler.HealthLive)
		r.Get("/ready", handler.HealthReady)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMw.RateLimit("/api/v1"))

		r.Get("/books", handler.Books)
		r.Get("/recommendations", handler.Recommendations)
		r.Get("/theme", handler.Theme)
	})

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}
