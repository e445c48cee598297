// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/folio/internal/metrics"
)

// DuckDBSource reads tabular artifacts from CSV or Parquet files through an
// in-memory DuckDB connection. The model and title catalog are JSON.
type DuckDBSource struct {
	files *FileSource
	db    *sql.DB
}

// OpenDuckDBSource opens an in-memory DuckDB connection for the artifacts in dir.
func OpenDuckDBSource(ctx context.Context, dir string) (*DuckDBSource, error) {
	db, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	return &DuckDBSource{files: NewFileSource(dir), db: db}, nil
}

// Backend implements Source.
func (s *DuckDBSource) Backend() string { return BackendDuckDB }

// Close implements Source.
func (s *DuckDBSource) Close() error {
	return s.db.Close()
}

// LoadModel implements Source.
func (s *DuckDBSource) LoadModel(ctx context.Context) (ModelSpec, error) {
	return s.files.LoadModel(ctx)
}

// LoadCatalog implements Source.
func (s *DuckDBSource) LoadCatalog(ctx context.Context) (*Catalog, error) {
	return s.files.LoadCatalog(ctx)
}

// LoadRatings implements Source. Columns are mapped by name and unknown
// columns are ignored. Row order follows the file.
func (s *DuckDBSource) LoadRatings(ctx context.Context) (*RatingTable, error) {
	scan, err := s.tableScan(ArtifactFinalRating)
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx, "select", ArtifactFinalRating, "SELECT * FROM "+scan)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", ArtifactFinalRating, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", ArtifactFinalRating, err)
	}
	if !hasColumns(cols, "title", "img_url") {
		return nil, fmt.Errorf("%s: title and img_url columns are required, got %v", ArtifactFinalRating, cols)
	}

	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	var records []RatingRecord
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", ArtifactFinalRating, err)
		}
		var rec RatingRecord
		for i, col := range cols {
			if values[i] == nil {
				continue
			}
			setRatingField(&rec, strings.ToLower(col), fmt.Sprint(values[i]))
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", ArtifactFinalRating, err)
	}

	return NewRatingTable(records), nil
}

// LoadPivot implements Source. The long-form (title, user_id, rating) table
// is pivoted with rows sorted by title and columns sorted by numeric user ID.
// Missing cells are 0 and duplicate (title, user_id) pairs are averaged.
func (s *DuckDBSource) LoadPivot(ctx context.Context) (*PivotMatrix, error) {
	scan, err := s.tableScan(ArtifactBookPivot)
	if err != nil {
		return nil, err
	}

	src := `WITH src AS (
		SELECT CAST(title AS VARCHAR) AS title,
		       CAST(user_id AS VARCHAR) AS user_id,
		       TRY_CAST(rating AS DOUBLE) AS rating
		FROM ` + scan + `
	) `

	titles, err := s.queryStrings(ctx, "titles", src+`SELECT DISTINCT title FROM src WHERE title IS NOT NULL ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("query %s titles: %w", ArtifactBookPivot, err)
	}
	users, err := s.queryStrings(ctx, "users", src+`SELECT user_id FROM src WHERE user_id IS NOT NULL
		GROUP BY user_id ORDER BY TRY_CAST(user_id AS BIGINT) NULLS LAST, user_id`)
	if err != nil {
		return nil, fmt.Errorf("query %s users: %w", ArtifactBookPivot, err)
	}

	rowOf := indexOf(titles)
	colOf := indexOf(users)
	data := make([][]float64, len(titles))
	for i := range data {
		data[i] = make([]float64, len(users))
	}

	rows, err := s.query(ctx, "pivot", ArtifactBookPivot, src+`SELECT title, user_id, AVG(rating) FROM src
		WHERE title IS NOT NULL AND user_id IS NOT NULL
		GROUP BY title, user_id`)
	if err != nil {
		return nil, fmt.Errorf("query %s cells: %w", ArtifactBookPivot, err)
	}
	defer rows.Close()

	for rows.Next() {
		var title, user string
		var rating sql.NullFloat64
		if err := rows.Scan(&title, &user, &rating); err != nil {
			return nil, fmt.Errorf("scan %s: %w", ArtifactBookPivot, err)
		}
		if rating.Valid {
			data[rowOf[title]][colOf[user]] = rating.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", ArtifactBookPivot, err)
	}

	return NewPivotMatrix(titles, users, data)
}

// tableScan returns the DuckDB table function reading the named artifact,
// preferring Parquet over CSV.
func (s *DuckDBSource) tableScan(name string) (string, error) {
	for _, ext := range []string{".parquet", ".csv"} {
		path := filepath.Join(s.files.Dir(), name+ext)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
		literal := "'" + strings.ReplaceAll(path, "'", "''") + "'"
		if ext == ".parquet" {
			return "read_parquet(" + literal + ")", nil
		}
		return "read_csv_auto(" + literal + ", header=true, all_varchar=true)", nil
	}
	return "", fmt.Errorf("%w: %s.parquet or %s.csv in %s", ErrMissingArtifact, name, name, s.files.Dir())
}

// query runs a DuckDB query and records its latency.
func (s *DuckDBSource) query(ctx context.Context, operation, table, query string) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query)
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
	return rows, err
}

func (s *DuckDBSource) queryStrings(ctx context.Context, operation, query string) ([]string, error) {
	rows, err := s.query(ctx, operation, ArtifactBookPivot, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func setRatingField(rec *RatingRecord, col, value string) {
	switch col {
	case "title":
		rec.Title = value
	case "img_url":
		rec.ImageURL = value
	case "user_id":
		rec.UserID = FlexString(strings.TrimSuffix(value, ".0"))
	case "isbn":
		rec.ISBN = value
	case "rating":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			rec.Rating = f
		}
	case "author":
		rec.Author = value
	case "year":
		rec.Year = FlexString(value)
	case "publisher":
		rec.Publisher = value
	case "num_of_rating":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			rec.NumOfRating = int(f)
		}
	}
}

func hasColumns(cols []string, want ...string) bool {
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		seen[strings.ToLower(c)] = true
	}
	for _, w := range want {
		if !seen[w] {
			return false
		}
	}
	return true
}

func indexOf(values []string) map[string]int {
	m := make(map[string]int, len(values))
	for i, v := range values {
		m[v] = i
	}
	return m
}

var _ Source = (*DuckDBSource)(nil)
