// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by all handlers. Field errors are
// reported under the field's query or json tag name and translated into
// messages suitable for the VALIDATION_ERROR API response.
//
// # Custom Tags
//
//   - booktitle: non-blank, valid UTF-8
//   - themename: "dark" or "light"
//
// # Usage
//
//	type RecommendationQuery struct {
//	    Title string `query:"title" validate:"booktitle"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
