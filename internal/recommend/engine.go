// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/artifacts"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/neighbors"
)

// Engine answers recommendation lookups from a loaded artifact bundle.
// It is safe for concurrent use.
type Engine struct {
	config Config
	bundle *artifacts.Bundle
	index  neighbors.Index
	metric string
	logger zerolog.Logger

	loadedAt time.Time

	requestCount   atomic.Int64
	errorCount     atomic.Int64
	notFoundCount  atomic.Int64
	totalLatencyNs atomic.Int64
}

// Load reads every artifact from src and builds an engine over them.
// Loader failures are returned as *ConfigurationError.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Load(ctx context.Context, src artifacts.Source, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	bundle, err := artifacts.Load(ctx, src)
	if err != nil {
		return nil, &ConfigurationError{Op: "load artifacts", Err: err}
	}
	return NewEngine(bundle, cfg, logger)
}

// NewEngine builds a brute-force neighbor index from the bundle's model spec
// and pivot matrix.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(bundle *artifacts.Bundle, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if bundle == nil || bundle.Pivot == nil || bundle.Ratings == nil || bundle.Catalog == nil {
		return nil, &ConfigurationError{Op: "new engine", Err: errors.New("incomplete artifact bundle")}
	}

	index, err := IndexFor(bundle.Model, bundle.Pivot)
	if err != nil {
		return nil, err
	}
	return NewEngineWithIndex(bundle, index, cfg, logger)
}

// NewEngineWithIndex builds an engine around a caller-supplied index. The
// index rows must be the pivot matrix rows in order.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngineWithIndex(bundle *artifacts.Bundle, index neighbors.Index, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Op: "validate config", Err: err}
	}
	if bundle == nil || bundle.Pivot == nil || bundle.Ratings == nil || bundle.Catalog == nil {
		return nil, &ConfigurationError{Op: "new engine", Err: errors.New("incomplete artifact bundle")}
	}
	if index.Len() != bundle.Pivot.Len() {
		return nil, &ConfigurationError{
			Op:  "new engine",
			Err: fmt.Errorf("index has %d rows, pivot matrix has %d", index.Len(), bundle.Pivot.Len()),
		}
	}
	if index.Len() < cfg.Neighbors {
		return nil, &ConfigurationError{
			Op:  "new engine",
			Err: fmt.Errorf("%w: %d rows for %d neighbors", neighbors.ErrTooFewSamples, index.Len(), cfg.Neighbors),
		}
	}

	metric := bundle.Model.Metric
	if bf, ok := index.(*neighbors.BruteForce); ok {
		metric = string(bf.Metric().Name())
	}

	e := &Engine{
		config:   *cfg,
		bundle:   bundle,
		index:    index,
		metric:   metric,
		logger:   logger.With().Str("component", "recommend").Logger(),
		loadedAt: time.Now(),
	}

	e.logger.Info().
		Int("rows", index.Len()).
		Int("titles", bundle.Catalog.Len()).
		Str("metric", metric).
		Int("neighbors", cfg.Neighbors).
		Bool("exclude_self_by_identity", cfg.ExcludeSelfByIdentity).
		Msg("recommendation engine ready")

	return e, nil
}

// IndexFor builds the neighbor index described by spec over the pivot rows.
func IndexFor(spec artifacts.ModelSpec, pivot *artifacts.PivotMatrix) (*neighbors.BruteForce, error) {
	switch spec.Algorithm {
	case "", "brute", "auto", "kd_tree", "ball_tree":
	default:
		return nil, &ConfigurationError{Op: "build index", Err: fmt.Errorf("unsupported algorithm %q", spec.Algorithm)}
	}
	if spec.NSamplesFit != 0 && spec.NSamplesFit != pivot.Len() {
		return nil, &ConfigurationError{
			Op:  "build index",
			Err: fmt.Errorf("model was fitted on %d samples, pivot matrix has %d rows", spec.NSamplesFit, pivot.Len()),
		}
	}

	metric, err := neighbors.NewMetric(spec.Metric, spec.P)
	if err != nil {
		return nil, &ConfigurationError{Op: "build index", Err: err}
	}
	index, err := neighbors.NewBruteForce(pivot.Rows(), metric)
	if err != nil {
		return nil, &ConfigurationError{Op: "build index", Err: err}
	}
	return index, nil
}

// Recommend returns the books nearest to title, excluding the book itself.
func (e *Engine) Recommend(ctx context.Context, title string) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	result, err := e.recommend(ctx, title)
	duration := time.Since(start)
	e.totalLatencyNs.Add(duration.Nanoseconds())
	metrics.RecordRecommendation(outcome(err), duration)

	logger := logging.Ctx(ctx).With().Str("component", "recommend").Str("title", title).Logger()
	if err != nil {
		e.errorCount.Add(1)
		if errors.Is(err, ErrNotFound) {
			e.notFoundCount.Add(1)
			logger.Debug().Err(err).Msg("recommendation lookup failed")
		} else {
			logger.Error().Err(err).Msg("recommendation lookup failed")
		}
		return nil, err
	}

	logger.Debug().
		Strs("results", result.Titles()).
		Dur("duration", duration).
		Msg("recommendation complete")

	return result, nil
}

func (e *Engine) recommend(ctx context.Context, title string) (*Result, error) {
	pivot := e.bundle.Pivot

	row, ok := pivot.RowIndex(title)
	if !ok {
		return nil, &NotFoundError{Kind: KindMatrixRow, Title: title}
	}

	queryStart := time.Now()
	found, err := e.index.Query(ctx, pivot.Row(row), e.config.Neighbors)
	metrics.RecordNeighborQuery(e.metric, time.Since(queryStart))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("query neighbors: %w", err)
		}
		return nil, &ConfigurationError{Op: "query neighbors", Err: err}
	}
	if err := e.checkNeighbors(found); err != nil {
		return nil, &ConfigurationError{Op: "query neighbors", Err: err}
	}
	found = preferQueryRow(found, row)

	// Every returned neighbor needs metadata, including the one dropped below.
	candidates := make([]Recommendation, len(found))
	for i, n := range found {
		t := pivot.Title(n.Row)
		poster, ok := e.bundle.Ratings.PosterURL(t)
		if !ok {
			return nil, &NotFoundError{Kind: KindMetadataRow, Title: t}
		}
		candidates[i] = Recommendation{Title: t, PosterURL: poster, Distance: n.Distance}
	}

	return &Result{
		Query:           title,
		Recommendations: e.selectResults(row, found, candidates),
	}, nil
}

// checkNeighbors rejects index output the engine cannot map back to titles.
func (e *Engine) checkNeighbors(found []neighbors.Neighbor) error {
	if len(found) != e.config.Neighbors {
		return fmt.Errorf("index returned %d neighbors, want %d", len(found), e.config.Neighbors)
	}
	rows := e.bundle.Pivot.Len()
	for i, n := range found {
		if n.Row < 0 || n.Row >= rows {
			return fmt.Errorf("neighbor %d has row %d outside [0, %d)", i, n.Row, rows)
		}
	}
	return nil
}

// preferQueryRow moves the query row to position 0 when it ties the nearest
// distance. Rows with a vector identical to the query's would otherwise take
// position 0 by row order and leave the query title in the results.
func preferQueryRow(found []neighbors.Neighbor, row int) []neighbors.Neighbor {
	if len(found) == 0 || found[0].Row == row {
		return found
	}
	nearest := found[0].Distance
	for i := 1; i < len(found) && found[i].Distance == nearest; i++ {
		if found[i].Row != row {
			continue
		}
		out := make([]neighbors.Neighbor, 0, len(found))
		out = append(out, found[i])
		out = append(out, found[:i]...)
		return append(out, found[i+1:]...)
	}
	return found
}

// selectResults removes the query book from the neighbor list and truncates
// to the configured result count.
func (e *Engine) selectResults(row int, found []neighbors.Neighbor, candidates []Recommendation) []Recommendation {
	if !e.config.ExcludeSelfByIdentity {
		return clip(candidates[1:], e.config.Results)
	}

	out := make([]Recommendation, 0, e.config.Results)
	for i, n := range found {
		if n.Row == row {
			continue
		}
		out = append(out, candidates[i])
	}
	return clip(out, e.config.Results)
}

func clip(recs []Recommendation, n int) []Recommendation {
	if len(recs) > n {
		recs = recs[:n]
	}
	out := make([]Recommendation, len(recs))
	copy(out, recs)
	return out
}

// Catalog returns the selectable titles.
func (e *Engine) Catalog() *artifacts.Catalog {
	return e.bundle.Catalog
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Stats returns artifact sizes and request counters.
func (e *Engine) Stats() Stats {
	requests := e.requestCount.Load()
	var avg float64
	if requests > 0 {
		avg = float64(e.totalLatencyNs.Load()) / float64(requests) / float64(time.Millisecond)
	}

	return Stats{
		Stats:                 e.bundle.Stats(),
		Neighbors:             e.config.Neighbors,
		Results:               e.config.Results,
		ExcludeSelfByIdentity: e.config.ExcludeSelfByIdentity,
		RequestCount:          requests,
		ErrorCount:            e.errorCount.Load(),
		NotFoundCount:         e.notFoundCount.Load(),
		AverageLatencyMS:      avg,
		LoadedAt:              e.loadedAt,
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrConfiguration):
		return metrics.OutcomeConfiguration
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeError
	}
}
