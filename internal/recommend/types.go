// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"time"

	"github.com/tomtom215/folio/internal/artifacts"
)

// Recommendation is one recommended book.
type Recommendation struct {
	// Title is the book title as it appears in the matrix.
	Title string `json:"title"`

	// PosterURL is the cover image URL from the rating metadata.
	PosterURL string `json:"poster_url"`

	// Distance from the query book under the model metric.
	Distance float64 `json:"distance"`
}

// Result holds the recommendations for one query title, nearest first.
type Result struct {
	// Query is the title that was looked up.
	Query string `json:"query"`

	// Recommendations are ordered by ascending distance.
	Recommendations []Recommendation `json:"recommendations"`
}

// Titles returns the recommended titles in order.
func (r *Result) Titles() []string {
	out := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		out[i] = rec.Title
	}
	return out
}

// Posters returns the poster URLs in the same order as Titles.
func (r *Result) Posters() []string {
	out := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		out[i] = rec.PosterURL
	}
	return out
}

// Stats describes the engine for health checks.
type Stats struct {
	artifacts.Stats

	Neighbors             int       `json:"neighbors"`
	Results               int       `json:"results"`
	ExcludeSelfByIdentity bool      `json:"exclude_self_by_identity"`
	RequestCount          int64     `json:"request_count"`
	ErrorCount            int64     `json:"error_count"`
	NotFoundCount         int64     `json:"not_found_count"`
	AverageLatencyMS      float64   `json:"average_latency_ms"`
	LoadedAt              time.Time `json:"loaded_at"`
}
