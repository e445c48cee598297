// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package main is the entry point for the Folio server application.

Folio serves book recommendations from a precomputed item-based
collaborative filtering model. At startup it loads four artifacts (the fitted
neighbor model, the book title list, the rating table with cover URLs and the
title x user pivot matrix), builds an in-memory neighbor index and serves the
recommender page and JSON API.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("folio")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Stats Service (uptime gauge, periodic engine summary)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Artifacts: loaded from the configured backend (file, badger or duckdb)
 4. Recommendation engine: brute-force neighbor index over the pivot rows
 5. HTTP router: chi with request IDs, metrics, CORS, rate limits and gzip
 6. Supervisor tree: started until SIGINT or SIGTERM

Artifact load failures are fatal. The process exits before binding the port.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
  - Environment variables
  - Config file (config.yaml, or the path in CONFIG_PATH)
  - Built-in defaults

Common environment variables:

	HTTP_HOST           listen host (default 0.0.0.0)
	HTTP_PORT           listen port (default 8501)
	ARTIFACTS_BACKEND   file, badger or duckdb (default file)
	ARTIFACTS_PATH      artifact directory (default artifacts)
	THEME_DEFAULT       dark or light (default light)
	CORS_ORIGINS        comma-separated origins
	DISABLE_RATE_LIMIT  true to disable per-IP rate limits
	LOG_LEVEL           trace, debug, info, warn, error
	LOG_FORMAT          json or console
	METRICS_ENABLED     expose /metrics (default true)

# Example Usage

Serve the artifacts exported next to the binary:

	export ARTIFACTS_PATH=./artifacts
	./folio

Serve from a Badger store built with the artifacts tool:

	./folio-artifacts import -src ./artifacts -dst ./data/artifacts.badger
	export ARTIFACTS_BACKEND=badger
	export ARTIFACTS_PATH=./data/artifacts.badger
	./folio

# Graceful Shutdown

On SIGINT or SIGTERM the supervisor stops the HTTP server, waiting up to the
configured shutdown timeout for in-flight requests.

# Port 8501

The default port matches the port the recommender page has always been
served on, so existing bookmarks keep working.
*/
package main
