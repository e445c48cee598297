// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package middleware provides HTTP middleware components for the application.

All middleware use the func(http.Handler) http.Handler shape and are mounted
on the chi router in internal/api.

Key Components:

  - RequestID: UUID request IDs propagated to the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
    labelled by chi route pattern
  - Compression: gzip responses for clients that accept it

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

Thread Safety:

All middleware are safe for concurrent use. Compression pools its gzip
writers with sync.Pool.
*/
package middleware
