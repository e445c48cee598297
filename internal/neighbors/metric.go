// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package neighbors

import (
	"fmt"
	"math"
	"strings"
)

// MetricName identifies a distance function.
type MetricName string

const (
	MetricEuclidean MetricName = "euclidean"
	MetricManhattan MetricName = "manhattan"
	MetricMinkowski MetricName = "minkowski"
	MetricCosine    MetricName = "cosine"
)

// Metric computes the distance between two equal-length vectors.
type Metric struct {
	name MetricName
	p    float64
	fn   func(a, b []float64) float64
}

// Name returns the metric identifier.
func (m Metric) Name() MetricName {
	return m.name
}

// P returns the Minkowski exponent (2 for euclidean, 1 for manhattan).
func (m Metric) P() float64 {
	return m.p
}

// Distance returns the distance between a and b.
// Callers must ensure len(a) == len(b).
func (m Metric) Distance(a, b []float64) float64 {
	return m.fn(a, b)
}

// NewMetric resolves a metric by name. p is only used by minkowski and must
// be >= 1 there; minkowski with p=1 or p=2 is normalized to manhattan or
// euclidean.
func NewMetric(name string, p float64) (Metric, error) {
	switch MetricName(strings.ToLower(strings.TrimSpace(name))) {
	case MetricEuclidean, "l2", "":
		return Metric{name: MetricEuclidean, p: 2, fn: euclidean}, nil
	case MetricManhattan, "l1", "cityblock":
		return Metric{name: MetricManhattan, p: 1, fn: manhattan}, nil
	case MetricMinkowski:
		switch {
		case p == 0 || p == 2:
			return Metric{name: MetricEuclidean, p: 2, fn: euclidean}, nil
		case p == 1:
			return Metric{name: MetricManhattan, p: 1, fn: manhattan}, nil
		case p < 1 || math.IsNaN(p) || math.IsInf(p, 0):
			return Metric{}, fmt.Errorf("%w: minkowski p must be >= 1, got %v", ErrUnknownMetric, p)
		}
		return Metric{name: MetricMinkowski, p: p, fn: minkowski(p)}, nil
	case MetricCosine:
		return Metric{name: MetricCosine, p: 0, fn: cosineDistance}, nil
	default:
		return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func manhattan(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

func minkowski(p float64) func(a, b []float64) float64 {
	return func(a, b []float64) float64 {
		var sum float64
		for i := range a {
			sum += math.Pow(math.Abs(a[i]-b[i]), p)
		}
		return math.Pow(sum, 1/p)
	}
}

// cosineDistance returns 1 - cos(a, b). Zero vectors have no direction and
// are treated as orthogonal to everything.
func cosineDistance(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	sim := dot / math.Sqrt(normA*normB)
	// Clamp rounding noise so a row is never farther from itself than 0.
	if sim > 1 {
		sim = 1
	}
	return 1 - sim
}
