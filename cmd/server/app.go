// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tomtom215/folio/internal/api"
	"github.com/tomtom215/folio/internal/artifacts"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
)

// recommendConfig maps the recommend section of the application config.
func recommendConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Neighbors:             cfg.Recommend.Neighbors,
		Results:               cfg.Recommend.Results,
		ExcludeSelfByIdentity: cfg.Recommend.ExcludeSelfByIdentity,
		Timeout:               cfg.Recommend.Timeout,
	}
}

// loadEngine opens the configured artifact backend, loads every artifact and
// builds the engine. The source is closed once the bundle is in memory.
func loadEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, error) {
	src, err := artifacts.Open(ctx, cfg.Artifacts.Backend, cfg.Artifacts.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s artifacts at %s: %w", cfg.Artifacts.Backend, cfg.Artifacts.Path, err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("backend", src.Backend()).Msg("Error closing artifact source")
		}
	}()

	engine, err := recommend.Load(ctx, src, recommendConfig(cfg), logging.WithComponent("recommend"))
	if err != nil {
		return nil, err
	}

	stats := engine.Stats()
	logging.Info().
		Int("titles", stats.Titles).
		Int("pivot_rows", stats.PivotRows).
		Int("neighbors", stats.Neighbors).
		Int("results", stats.Results).
		Msg("Recommendation engine ready")

	return engine, nil
}

// newHTTPServer builds the router over engine and wraps it in an
// http.Server with the configured timeouts.
func newHTTPServer(cfg *config.Config, engine api.Recommender) (*http.Server, error) {
	handler, err := api.NewHandler(engine, api.HandlerConfig{
		DefaultTheme: cfg.Theme.Default,
		Version:      version,
	})
	if err != nil {
		return nil, err
	}

	router := api.NewRouter(handler, api.RouterConfig{
		MetricsEnabled: cfg.Metrics.Enabled,
		Middleware:     api.ChiMiddlewareConfigFrom(cfg.Security),
	})

	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}, nil
}
