// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/validation"
)

// sanitizeLogValue escapes control characters so user input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *validation.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	return validationErr.ToAPIError()
}

// getIntParam extracts an integer query parameter with a default value.
// Present but malformed values are returned as an error.
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return intValue, nil
}

// lookupStatus maps a recommendation error to an HTTP status and a
// user-facing message.
func lookupStatus(err error, title string) (int, string) {
	var nf *recommend.NotFoundError
	switch {
	case errors.As(err, &nf) && nf.Kind == recommend.KindMatrixRow:
		return http.StatusNotFound, fmt.Sprintf("No rating data for %q, so no recommendations are available", title)
	case errors.As(err, &nf):
		return http.StatusNotFound, fmt.Sprintf("No cover metadata for %q", nf.Title)
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Recommendation lookup timed out"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "Recommendation lookup canceled"
	case errors.Is(err, recommend.ErrConfiguration):
		return http.StatusInternalServerError, "Recommendation model is misconfigured"
	default:
		return http.StatusInternalServerError, "Failed to generate recommendations"
	}
}

// logLookupFailure logs lookup errors that are not the caller's fault.
func logLookupFailure(r *http.Request, status int, err error, title string) {
	if status < http.StatusInternalServerError {
		return
	}
	logging.Ctx(r.Context()).Error().
		Err(err).
		Str("title", sanitizeLogValue(title)).
		Msg("Recommendation lookup failed")
}

// writeLookupError writes the JSON error for a failed recommendation lookup.
// Not-found errors carry the failing kind and title as details.
func writeLookupError(rw *ResponseWriter, err error, title string) {
	status, message := lookupStatus(err, title)
	logLookupFailure(rw.r, status, err, title)
	switch status {
	case http.StatusNotFound:
		var details map[string]interface{}
		var nf *recommend.NotFoundError
		if errors.As(err, &nf) {
			details = map[string]interface{}{
				"kind":  string(nf.Kind),
				"title": nf.Title,
			}
		}
		rw.NotFoundWithDetails(message, details)
	case http.StatusGatewayTimeout:
		rw.GatewayTimeout(message)
	case http.StatusServiceUnavailable:
		rw.ServiceUnavailable(message)
	default:
		rw.InternalError(message)
	}
}
