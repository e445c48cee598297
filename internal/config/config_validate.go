// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateArtifacts(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateTheme(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validArtifactBackends defines the supported artifact backends
var validArtifactBackends = map[string]bool{
	"file":   true,
	"badger": true,
	"duckdb": true,
}

// validateArtifacts validates the artifact source
func (c *Config) validateArtifacts() error {
	if !validArtifactBackends[c.Artifacts.Backend] {
		return fmt.Errorf("ARTIFACTS_BACKEND must be one of: file, badger, duckdb")
	}
	if c.Artifacts.Path == "" {
		return fmt.Errorf("ARTIFACTS_PATH is required")
	}
	return nil
}

// validateRecommend validates lookup settings
func (c *Config) validateRecommend() error {
	if c.Recommend.Neighbors < 2 {
		return fmt.Errorf("RECOMMEND_NEIGHBORS must be at least 2")
	}
	if c.Recommend.Results < 1 || c.Recommend.Results > c.Recommend.Neighbors-1 {
		return fmt.Errorf("RECOMMEND_RESULTS must be between 1 and RECOMMEND_NEIGHBORS-1 (%d)", c.Recommend.Neighbors-1)
	}
	if c.Recommend.Timeout < 0 {
		return fmt.Errorf("RECOMMEND_TIMEOUT must not be negative")
	}
	return nil
}

// validateTheme validates the default theme
func (c *Config) validateTheme() error {
	if c.Theme.Default != "dark" && c.Theme.Default != "light" {
		return fmt.Errorf("THEME_DEFAULT must be one of: dark, light")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %s and %s", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
