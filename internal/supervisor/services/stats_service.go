// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

// DefaultStatsInterval is used when StatsServiceConfig.Interval is not positive.
const DefaultStatsInterval = time.Minute

// StatsSource reports recommendation engine statistics.
// *recommend.Engine satisfies it.
type StatsSource interface {
	Stats() recommend.Stats
}

// StatsServiceConfig holds configuration for the stats service.
type StatsServiceConfig struct {
	// Interval between reports.
	Interval time.Duration

	// Started is the process start time used for the uptime gauge.
	Started time.Time
}

// StatsService periodically refreshes the uptime gauge and logs engine
// request counters.
type StatsService struct {
	source StatsSource
	config StatsServiceConfig
	logger zerolog.Logger
	name   string
}

// NewStatsService creates a new stats service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStatsService(source StatsSource, cfg StatsServiceConfig, logger zerolog.Logger) *StatsService {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultStatsInterval
	}
	if cfg.Started.IsZero() {
		cfg.Started = time.Now()
	}
	return &StatsService{
		source: source,
		config: cfg,
		logger: logger.With().Str("service", "stats").Logger(),
		name:   "stats-service",
	}
}

// Serve implements suture.Service. It reports once immediately and then on
// every tick until ctx is canceled.
func (s *StatsService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.config.Interval).Msg("stats service starting")

	s.report()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.report()
		}
	}
}

func (s *StatsService) report() {
	metrics.UpdateUptime(s.config.Started)

	stats := s.source.Stats()
	s.logger.Info().
		Int64("requests", stats.RequestCount).
		Int64("errors", stats.ErrorCount).
		Int64("not_found", stats.NotFoundCount).
		Float64("avg_latency_ms", stats.AverageLatencyMS).
		Int("titles", stats.Titles).
		Int("pivot_rows", stats.PivotRows).
		Msg("recommendation engine stats")
}

// String returns the service name for logging.
func (s *StatsService) String() string {
	return s.name
}
