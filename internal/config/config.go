// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	Theme     ThemeConfig     `koanf:"theme"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ArtifactsConfig selects where the precomputed artifacts are loaded from
type ArtifactsConfig struct {
	// Backend is one of file, badger, duckdb.
	Backend string `koanf:"backend"`

	// Path is the artifact directory (file, duckdb) or database directory (badger).
	Path string `koanf:"path"`
}

// RecommendConfig holds recommendation lookup settings
type RecommendConfig struct {
	Neighbors             int           `koanf:"neighbors"`
	Results               int           `koanf:"results"`
	ExcludeSelfByIdentity bool          `koanf:"exclude_self_by_identity"`
	Timeout               time.Duration `koanf:"timeout"`
}

// ThemeConfig holds presentation defaults
type ThemeConfig struct {
	// Default is the theme used when the request does not choose one.
	Default string `koanf:"default"`
}

// SecurityConfig holds CORS and rate limit settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}
