// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed by the API router at /metrics:

	curl http://localhost:8501/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)
  - api_rate_limit_hits_total: Requests rejected by the rate limiter (counter)
    Labels: endpoint

Recommendation Metrics:
  - recommendation_requests_total: Lookups by outcome (counter)
    Labels: outcome (ok, not_found, configuration, canceled, error)
  - recommendation_duration_seconds: End-to-end lookup latency (histogram)
  - neighbor_query_duration_seconds: Nearest-neighbor scan latency (histogram)
    Labels: metric

Artifact Metrics:
  - artifact_load_duration_seconds: Time to load a full bundle (histogram)
    Labels: backend
  - artifact_entries: Rows per loaded artifact (gauge)
    Labels: artifact
  - duckdb_query_duration_seconds: DuckDB artifact query time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed DuckDB artifact queries (counter)
    Labels: operation, table, error_type

System Metrics:
  - app_info: Version and Go runtime (gauge)
    Labels: version, go_version
  - app_uptime_seconds: Process uptime (gauge)

# Usage

	start := time.Now()
	neighbors, err := index.Query(ctx, vector, k)
	metrics.RecordNeighborQuery("euclidean", time.Since(start))

# Thread Safety

All functions are safe for concurrent use.
*/
package metrics
