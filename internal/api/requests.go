// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

// Request structs carry query parameters through go-playground/validator.
// Field errors are reported by the query tag name.

// Catalog paging limits.
const (
	DefaultBooksLimit = 100
	MaxBooksLimit     = 1000
)

// BooksRequest holds the query parameters for GET /api/v1/books.
type BooksRequest struct {
	Query  string `query:"q" validate:"max=200"`
	Limit  int    `query:"limit" validate:"min=1,max=1000"`
	Offset int    `query:"offset" validate:"min=0"`
}

// RecommendationsRequest holds the query parameters for
// GET /api/v1/recommendations and the HTML page.
type RecommendationsRequest struct {
	Title string `query:"title" validate:"booktitle"`
}

// ThemeRequest holds the query parameters for GET /api/v1/theme.
// Name takes precedence over Dark when both are given.
type ThemeRequest struct {
	Name string `query:"name" validate:"omitempty,themename"`
	Dark string `query:"dark" validate:"max=16"`
}
