// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package config provides centralized configuration management for Folio.

# Configuration Sources

Configuration is loaded with Koanf v2 in three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/folio/config.yaml, /etc/folio/config.yml (first found wins)
 3. Environment variables

# Environment Variables

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8501)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown timeout (default: 10s)

Artifacts:
  - ARTIFACTS_BACKEND: file, badger or duckdb (default: file)
  - ARTIFACTS_PATH: Artifact directory (default: artifacts)

Recommendations:
  - RECOMMEND_NEIGHBORS: Neighbors queried per lookup (default: 6)
  - RECOMMEND_RESULTS: Recommendations returned (default: 5)
  - RECOMMEND_EXCLUDE_SELF_BY_IDENTITY: Drop the query book by row instead of position 0 (default: false)
  - RECOMMEND_TIMEOUT: Per-lookup timeout (default: 5s)

Theme:
  - THEME_DEFAULT: dark or light (default: light)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Disable rate limiting (default: false)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

Metrics:
  - METRICS_ENABLED: Serve /metrics (default: true)

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Validation errors name the environment variable to fix and are fatal at
startup.
*/
package config
