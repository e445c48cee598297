// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package recommend implements item-to-item book recommendations over a
// pre-fitted nearest-neighbor model.
//
// # Lookup
//
// Given a title, the engine:
//
//  1. Locates the title's row in the pivoted rating matrix by exact match.
//  2. Queries the neighbor index with that row's vector for k=6 rows.
//  3. Maps each returned row back to its title by matrix order.
//  4. Resolves each title's poster from the first rating metadata row with
//     the same title.
//  5. Drops position 0 and returns the remaining five in neighbor order.
//
// Position 0 is assumed to be the query book itself. Setting
// Config.ExcludeSelfByIdentity drops the query row wherever it appears
// instead; when it is absent the last neighbor is dropped so the result size
// stays fixed.
//
// # Errors
//
// Lookups fail with *NotFoundError (matched by ErrNotFound) when the title is
// absent from the matrix or a neighbor has no metadata row, and with
// *ConfigurationError (matched by ErrConfiguration) when the artifacts cannot
// serve a query, for example a matrix with fewer rows than neighbors.
// There are no partial results and no retries.
//
// # Usage
//
//	engine, err := recommend.Load(ctx, src, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	result, err := engine.Recommend(ctx, "Dune")
//	if errors.Is(err, recommend.ErrNotFound) {
//	    // unknown title
//	}
//	titles, posters := result.Titles(), result.Posters()
//
// # Thread Safety
//
// An Engine is immutable after construction and safe for concurrent use.
package recommend
