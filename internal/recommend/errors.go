// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("recommend: not found")

	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("recommend: configuration error")
)

// NotFoundKind identifies which lookup failed.
type NotFoundKind string

const (
	// KindMatrixRow means the title has no row in the pivoted rating matrix.
	KindMatrixRow NotFoundKind = "matrix_row"

	// KindMetadataRow means a neighbor title has no rating metadata row.
	KindMetadataRow NotFoundKind = "metadata_row"
)

// NotFoundError is returned when a title cannot be resolved.
type NotFoundError struct {
	Kind  NotFoundKind
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("recommend: no %s for title %q", e.Kind, e.Title)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConfigurationError is returned when the loaded artifacts or settings cannot
// serve lookups.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("recommend: %s: %v", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
