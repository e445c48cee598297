// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package api provides the HTTP surface of Folio: the recommender page and the
JSON API, routed with chi.

# Routes

	GET /                           HTML page (?title=, ?theme=dark|light)
	GET /api/v1/books               catalog listing (?q=, ?limit=, ?offset=)
	GET /api/v1/recommendations     recommendations for ?title=
	GET /api/v1/theme               theme record (?name= or ?dark=)
	GET /api/v1/health/live         liveness probe
	GET /api/v1/health/ready        readiness probe with engine stats
	GET /metrics                    Prometheus (when enabled)

# Response Format

JSON endpoints share one envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 1}
	}

Errors set success to false and fill error with a code: VALIDATION_ERROR
(400), NOT_FOUND (404), TOO_MANY_REQUESTS (429), INTERNAL_ERROR (500),
SERVICE_UNAVAILABLE (503) or TIMEOUT (504).

# Middleware

Every route gets request IDs, real IP extraction, panic recovery, Prometheus
instrumentation, CORS (go-chi/cors), security headers and gzip. The page and
the /api/v1 routes other than health are rate limited per client IP with
go-chi/httprate.

# Usage

	handler, err := api.NewHandler(engine, api.HandlerConfig{DefaultTheme: "light"})
	if err != nil {
	    return err
	}
	router := api.NewRouter(handler, api.RouterConfig{
	    MetricsEnabled: cfg.Metrics.Enabled,
	    Middleware:     api.ChiMiddlewareConfigFrom(cfg.Security),
	})
*/
package api
