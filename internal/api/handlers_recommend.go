// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import "net/http"

// Recommendations handles GET /api/v1/recommendations?title=
//
// The title must match a catalog entry exactly. The response lists the
// nearest books, nearest first, each with its cover URL.
//
// @Summary Recommend similar books
// @Tags Books
// @Produce json
// @Param title query string true "Exact book title"
// @Success 200 {object} APIResponse{data=recommend.Result}
// @Failure 400 {object} APIResponse "Missing or malformed title"
// @Failure 404 {object} APIResponse "Title has no rating row or a neighbor has no metadata"
// @Failure 500 {object} APIResponse
// @Failure 503 {object} APIResponse "Lookup canceled"
// @Failure 504 {object} APIResponse "Lookup timed out"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := RecommendationsRequest{Title: r.URL.Query().Get("title")}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	result, err := h.engine.Recommend(r.Context(), req.Title)
	if err != nil {
		writeLookupError(rw, err, req.Title)
		return
	}

	rw.Success(result)
}
