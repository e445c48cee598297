// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/tomtom215/folio/internal/artifacts"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/theme"
)

// Recommender is the lookup surface the handlers need.
// *recommend.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, title string) (*recommend.Result, error)
	Catalog() *artifacts.Catalog
	Stats() recommend.Stats
}

// HandlerConfig holds the presentation settings for Handler.
type HandlerConfig struct {
	// DefaultTheme is used when neither the query nor the cookie names a theme.
	DefaultTheme string

	// Version is reported by the liveness probe.
	Version string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_page.go: HTML page
//   - handlers_books.go: catalog listing
//   - handlers_recommend.go: recommendation lookup
//   - handlers_theme.go: theme records
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	engine    Recommender
	config    HandlerConfig
	page      *template.Template
	startTime time.Time
}

// NewHandler creates a handler serving lookups from engine.
func NewHandler(engine Recommender, cfg HandlerConfig) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("api: nil recommender")
	}
	if cfg.DefaultTheme == "" {
		cfg.DefaultTheme = theme.NameLight
	}
	if !theme.Valid(cfg.DefaultTheme) {
		return nil, fmt.Errorf("api: unknown default theme %q", cfg.DefaultTheme)
	}

	page, err := parsePageTemplate()
	if err != nil {
		return nil, err
	}

	return &Handler{
		engine:    engine,
		config:    cfg,
		page:      page,
		startTime: time.Now(),
	}, nil
}
