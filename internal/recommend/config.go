// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"time"
)

// Defaults for the lookup.
const (
	DefaultNeighbors = 6
	DefaultResults   = 5
	DefaultTimeout   = 5 * time.Second
)

// Config contains the configuration for the recommendation engine.
type Config struct {
	// Neighbors is the number of rows requested from the neighbor index,
	// including the query row itself.
	Neighbors int `json:"neighbors"`

	// Results is the number of recommendations returned.
	Results int `json:"results"`

	// ExcludeSelfByIdentity drops the query row by row index instead of
	// unconditionally dropping position 0.
	ExcludeSelfByIdentity bool `json:"exclude_self_by_identity"`

	// Timeout bounds a single lookup. Zero disables the timeout.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the configuration matching the fitted model:
// six neighbors, five results, positional self-exclusion.
func DefaultConfig() *Config {
	return &Config{
		Neighbors: DefaultNeighbors,
		Results:   DefaultResults,
		Timeout:   DefaultTimeout,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Neighbors < 2 {
		return fmt.Errorf("neighbors must be at least 2, got %d", c.Neighbors)
	}
	if c.Results < 1 {
		return fmt.Errorf("results must be positive, got %d", c.Results)
	}
	if c.Results > c.Neighbors-1 {
		return fmt.Errorf("results must be at most neighbors-1 (%d), got %d", c.Neighbors-1, c.Results)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", c.Timeout)
	}
	return nil
}
