// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package artifacts

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
)

// Supported backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendDuckDB = "duckdb"
)

// Source loads artifacts from one backend.
type Source interface {
	LoadModel(ctx context.Context) (ModelSpec, error)
	LoadCatalog(ctx context.Context) (*Catalog, error)
	LoadRatings(ctx context.Context) (*RatingTable, error)
	LoadPivot(ctx context.Context) (*PivotMatrix, error)

	// Backend returns the backend name.
	Backend() string

	Close() error
}

// Open returns the Source for backend rooted at path.
func Open(ctx context.Context, backend, path string) (Source, error) {
	switch backend {
	case BackendFile, "":
		return NewFileSource(path), nil
	case BackendBadger:
		return OpenBadgerSource(path)
	case BackendDuckDB:
		return OpenDuckDBSource(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Load reads every artifact from src into a Bundle. It fails on the first
// artifact that cannot be loaded.
func Load(ctx context.Context, src Source) (*Bundle, error) {
	start := time.Now()
	logger := logging.Ctx(ctx).With().
		Str("component", "artifacts").
		Str("backend", src.Backend()).
		Logger()

	model, err := src.LoadModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ArtifactModel, err)
	}
	catalog, err := src.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ArtifactBookNames, err)
	}
	ratings, err := src.LoadRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ArtifactFinalRating, err)
	}
	pivot, err := src.LoadPivot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ArtifactBookPivot, err)
	}

	bundle := &Bundle{
		Model:   model,
		Catalog: catalog,
		Ratings: ratings,
		Pivot:   pivot,
	}

	stats := bundle.Stats()
	metrics.RecordArtifactLoad(src.Backend(), time.Since(start), map[string]int{
		ArtifactBookNames:   stats.Titles,
		ArtifactFinalRating: stats.RatingRecords,
		ArtifactBookPivot:   stats.PivotRows,
	})
	logger.Info().
		Int("titles", stats.Titles).
		Int("pivot_rows", stats.PivotRows).
		Int("pivot_columns", stats.PivotColumns).
		Int("rating_records", stats.RatingRecords).
		Dur("duration", time.Since(start)).
		Msg("Artifacts loaded")

	return bundle, nil
}
