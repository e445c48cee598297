// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package neighbors implements the nearest-neighbor index that backs
// book-to-book similarity lookups.
//
// The index is fitted once over the rows of the pivoted rating matrix and is
// read-only afterwards. It supports a single query operation: given a vector
// and a neighbor count k, return the k nearest rows ordered nearest-first.
//
// # Ordering Contract
//
//   - Results are sorted by ascending distance.
//   - Ties are broken by the lower row index, so repeated queries are stable.
//   - A row queried with its own vector is at distance 0 and, unless another
//     row is identical and has a lower index, comes back at position 0.
//
// # Metrics
//
// The distance metric comes from the model artifact:
//
//   - euclidean: L2 distance (the default for a fitted NearestNeighbors model)
//   - manhattan: L1 distance
//   - minkowski: Lp distance with the artifact's p
//   - cosine: 1 - cosine similarity; all-zero rows are at distance 1
//
// # Thread Safety
//
// An Index is immutable after construction and safe for concurrent queries.
package neighbors
