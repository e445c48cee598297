// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package artifacts loads the four precomputed, read-only data objects that
// the recommender serves from.
//
// # Artifacts
//
//   - model:        the fitted nearest-neighbor model description (ModelSpec)
//   - book_names:   the Title Catalog shown in the selection input (Catalog)
//   - final_rating: the Rating Metadata Table mapping titles to posters (RatingTable)
//   - book_pivot:   the book x user Pivoted Rating Matrix (PivotMatrix)
//
// The artifacts are produced by an offline pipeline and loaded exactly once at
// startup into a Bundle. Nothing in this package mutates a loaded artifact,
// so a Bundle can be shared by concurrent readers without locking.
//
// # Backends
//
// A Source abstracts where the artifacts come from:
//
//   - file:   JSON files in a directory (model.json, book_names.json,
//     final_rating.json, book_pivot.json). The pivot uses the pandas
//     "split" orientation: {"index": [...], "columns": [...], "data": [[...]]}.
//   - badger: the same JSON documents stored under "artifact:<name>" keys in a
//     BadgerDB directory, populated with `artifacts import`.
//   - duckdb: model and catalog from JSON, rating metadata and a long-form
//     (title, user_id, rating) pivot from CSV or Parquet files read through
//     DuckDB. The pivot is rebuilt with rows ordered by title and columns by
//     user ID, matching the ordering of pandas pivot_table.
//
// # Usage
//
//	src, err := artifacts.Open(ctx, artifacts.BackendFile, "artifacts")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	bundle, err := artifacts.Load(ctx, src)
package artifacts
