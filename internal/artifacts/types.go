// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package artifacts

import (
	"errors"
	"fmt"
)

// Artifact names, used for file names and storage keys.
const (
	ArtifactModel       = "model"
	ArtifactBookNames   = "book_names"
	ArtifactFinalRating = "final_rating"
	ArtifactBookPivot   = "book_pivot"
)

// Names lists every artifact in load order.
var Names = []string{ArtifactModel, ArtifactBookNames, ArtifactFinalRating, ArtifactBookPivot}

var (
	// ErrShapeMismatch is returned when a pivot matrix's data does not match
	// its index and columns.
	ErrShapeMismatch = errors.New("artifacts: pivot shape mismatch")

	// ErrMissingArtifact is returned when a source has no data for an artifact.
	ErrMissingArtifact = errors.New("artifacts: artifact not found")

	// ErrUnknownBackend is returned by Open for unsupported backends.
	ErrUnknownBackend = errors.New("artifacts: unknown backend")
)

// ModelSpec describes the fitted nearest-neighbor model. The model itself is
// the pivot matrix rows; this spec carries the fit parameters.
type ModelSpec struct {
	// Algorithm is the search algorithm the model was fitted with
	// (brute, auto, kd_tree, ball_tree).
	Algorithm string `json:"algorithm"`

	// Metric is the distance metric (euclidean, manhattan, minkowski, cosine).
	Metric string `json:"metric"`

	// P is the Minkowski exponent. Only used when Metric is minkowski.
	P float64 `json:"p,omitempty"`

	// NNeighbors is the neighbor count the model was fitted with.
	NNeighbors int `json:"n_neighbors,omitempty"`

	// NSamplesFit is the number of rows the model was fitted on.
	// Zero means unknown and skips the row-count check.
	NSamplesFit int `json:"n_samples_fit,omitempty"`
}

// Catalog is the ordered list of selectable titles.
type Catalog struct {
	titles []string
}

// NewCatalog wraps titles in a Catalog. The slice is retained.
func NewCatalog(titles []string) *Catalog {
	return &Catalog{titles: titles}
}

// Len returns the number of titles.
func (c *Catalog) Len() int {
	return len(c.titles)
}

// Titles returns a copy of the titles in catalog order.
func (c *Catalog) Titles() []string {
	out := make([]string, len(c.titles))
	copy(out, c.titles)
	return out
}

// At returns the title at position i.
func (c *Catalog) At(i int) string {
	return c.titles[i]
}

// PivotMatrix is the book x user rating matrix. Row order defines the row
// indices used by the neighbor model.
type PivotMatrix struct {
	index      []string
	columns    []string
	data       [][]float64
	rowByTitle map[string]int
}

// NewPivotMatrix validates and wraps a pivot matrix. data must have one row
// per index entry and one column per columns entry. When a title appears on
// more than one row, lookups resolve to the first.
func NewPivotMatrix(index, columns []string, data [][]float64) (*PivotMatrix, error) {
	if len(data) != len(index) {
		return nil, fmt.Errorf("%w: %d rows for %d index entries", ErrShapeMismatch, len(data), len(index))
	}
	for i, row := range data {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d columns", ErrShapeMismatch, i, len(row), len(columns))
		}
	}

	rowByTitle := make(map[string]int, len(index))
	for i, title := range index {
		if _, seen := rowByTitle[title]; !seen {
			rowByTitle[title] = i
		}
	}

	return &PivotMatrix{
		index:      index,
		columns:    columns,
		data:       data,
		rowByTitle: rowByTitle,
	}, nil
}

// Len returns the number of rows.
func (m *PivotMatrix) Len() int {
	return len(m.index)
}

// Width returns the number of user columns.
func (m *PivotMatrix) Width() int {
	return len(m.columns)
}

// RowIndex returns the row of title by exact match.
func (m *PivotMatrix) RowIndex(title string) (int, bool) {
	i, ok := m.rowByTitle[title]
	return i, ok
}

// Title returns the title of row i.
func (m *PivotMatrix) Title(i int) string {
	return m.index[i]
}

// Row returns the rating vector of row i. The slice is shared and must not
// be modified.
func (m *PivotMatrix) Row(i int) []float64 {
	return m.data[i]
}

// Rows returns all rating vectors. The slices are shared and must not be
// modified.
func (m *PivotMatrix) Rows() [][]float64 {
	return m.data
}

// Columns returns a copy of the user column labels.
func (m *PivotMatrix) Columns() []string {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

// RatingRecord is one row of the rating metadata table.
type RatingRecord struct {
	Title       string     `json:"title"`
	ImageURL    string     `json:"img_url"`
	UserID      FlexString `json:"user_id,omitempty"`
	ISBN        string     `json:"isbn,omitempty"`
	Rating      float64    `json:"rating,omitempty"`
	Author      string     `json:"author,omitempty"`
	Year        FlexString `json:"year,omitempty"`
	Publisher   string     `json:"publisher,omitempty"`
	NumOfRating int        `json:"num_of_rating,omitempty"`
}

// RatingTable is the ordered rating metadata table.
type RatingTable struct {
	records      []RatingRecord
	firstByTitle map[string]int
}

// NewRatingTable wraps records, indexing the first record of each title.
func NewRatingTable(records []RatingRecord) *RatingTable {
	first := make(map[string]int)
	for i := range records {
		if _, seen := first[records[i].Title]; !seen {
			first[records[i].Title] = i
		}
	}
	return &RatingTable{records: records, firstByTitle: first}
}

// Len returns the number of records.
func (t *RatingTable) Len() int {
	return len(t.records)
}

// First returns the first record whose title equals title.
func (t *RatingTable) First(title string) (RatingRecord, bool) {
	i, ok := t.firstByTitle[title]
	if !ok {
		return RatingRecord{}, false
	}
	return t.records[i], true
}

// PosterURL returns the image URL of the first record for title.
func (t *RatingTable) PosterURL(title string) (string, bool) {
	rec, ok := t.First(title)
	if !ok {
		return "", false
	}
	return rec.ImageURL, true
}

// Bundle holds every loaded artifact.
type Bundle struct {
	Model   ModelSpec
	Catalog *Catalog
	Ratings *RatingTable
	Pivot   *PivotMatrix
}

// Stats summarizes a bundle for logs and health checks.
type Stats struct {
	Titles        int    `json:"titles"`
	PivotRows     int    `json:"pivot_rows"`
	PivotColumns  int    `json:"pivot_columns"`
	RatingRecords int    `json:"rating_records"`
	Metric        string `json:"metric"`
	Algorithm     string `json:"algorithm"`
}

// Stats returns artifact counts.
func (b *Bundle) Stats() Stats {
	return Stats{
		Titles:        b.Catalog.Len(),
		PivotRows:     b.Pivot.Len(),
		PivotColumns:  b.Pivot.Width(),
		RatingRecords: b.Ratings.Len(),
		Metric:        b.Model.Metric,
		Algorithm:     b.Model.Algorithm,
	}
}
