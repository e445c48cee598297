// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package neighbors

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrTooFewSamples is returned when k exceeds the number of fitted rows.
	ErrTooFewSamples = errors.New("neighbors: k exceeds number of fitted samples")

	// ErrInvalidK is returned for k <= 0.
	ErrInvalidK = errors.New("neighbors: k must be positive")

	// ErrDimensionMismatch is returned when a query vector does not match the
	// width of the fitted rows.
	ErrDimensionMismatch = errors.New("neighbors: query vector dimension mismatch")

	// ErrUnknownMetric is returned for unsupported metric names.
	ErrUnknownMetric = errors.New("neighbors: unknown metric")

	// ErrRaggedRows is returned when fitted rows differ in length.
	ErrRaggedRows = errors.New("neighbors: rows have inconsistent lengths")
)

// cancelCheckInterval is how many rows are scanned between context checks.
const cancelCheckInterval = 1024

// Neighbor is a fitted row with its distance to the query vector.
type Neighbor struct {
	Row      int     `json:"row"`
	Distance float64 `json:"distance"`
}

// Index is a fitted nearest-neighbor index over matrix rows.
type Index interface {
	// Query returns the k rows nearest to vector, nearest-first.
	Query(ctx context.Context, vector []float64, k int) ([]Neighbor, error)

	// Len returns the number of fitted rows.
	Len() int

	// Dim returns the width of each fitted row.
	Dim() int
}

// BruteForce scans every fitted row on each query.
type BruteForce struct {
	rows   [][]float64
	dim    int
	metric Metric
}

// NewBruteForce fits a brute-force index over rows. The rows slice is
// retained, not copied; callers must not mutate it afterwards.
func NewBruteForce(rows [][]float64, metric Metric) (*BruteForce, error) {
	dim := 0
	if len(rows) > 0 {
		dim = len(rows[0])
	}
	for i, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedRows, i, len(r), dim)
		}
	}
	if metric.fn == nil {
		metric, _ = NewMetric(string(MetricEuclidean), 2)
	}
	return &BruteForce{rows: rows, dim: dim, metric: metric}, nil
}

// Len returns the number of fitted rows.
func (b *BruteForce) Len() int {
	return len(b.rows)
}

// Dim returns the width of each fitted row.
func (b *BruteForce) Dim() int {
	return b.dim
}

// Metric returns the distance metric in use.
func (b *BruteForce) Metric() Metric {
	return b.metric
}

// Query implements Index.
func (b *BruteForce) Query(ctx context.Context, vector []float64, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if k > len(b.rows) {
		return nil, fmt.Errorf("%w: k=%d, samples=%d", ErrTooFewSamples, k, len(b.rows))
	}
	if len(vector) != b.dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), b.dim)
	}

	all := make([]Neighbor, len(b.rows))
	for i, row := range b.rows {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		all[i] = Neighbor{Row: i, Distance: b.metric.Distance(vector, row)}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Distance != all[j].Distance {
			return all[i].Distance < all[j].Distance
		}
		return all[i].Row < all[j].Row
	})

	out := make([]Neighbor, k)
	copy(out, all[:k])
	return out, nil
}

// Ensure BruteForce implements Index.
var _ Index = (*BruteForce)(nil)
