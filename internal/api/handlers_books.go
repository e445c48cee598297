// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"strings"
)

// Books lists catalog titles in catalog order.
//
// @Summary List selectable book titles
// @Description Returns the title catalog, optionally filtered by a case-insensitive substring, with offset pagination.
// @Tags Books
// @Produce json
// @Param q query string false "Substring filter"
// @Param limit query int false "Page size (1-1000)" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} APIResponse{data=[]string}
// @Failure 400 {object} APIResponse
// @Router /books [get]
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, err := getIntParam(r, "limit", DefaultBooksLimit)
	if err != nil {
		rw.ValidationError(err.Error(), map[string]interface{}{"field": "limit"})
		return
	}
	offset, err := getIntParam(r, "offset", 0)
	if err != nil {
		rw.ValidationError(err.Error(), map[string]interface{}{"field": "offset"})
		return
	}

	req := BooksRequest{
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	titles := filterTitles(h.engine.Catalog().Titles(), req.Query)
	page, pagination := paginate(titles, req.Offset, req.Limit)

	rw.SuccessWithPagination(page, pagination)
}

// filterTitles keeps titles containing query, ignoring case. An empty or
// blank query keeps everything.
func filterTitles(titles []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return titles
	}
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if strings.Contains(strings.ToLower(t), query) {
			out = append(out, t)
		}
	}
	return out
}

func paginate(items []string, offset, limit int) ([]string, *PaginationMeta) {
	total := len(items)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := items[offset:end]
	return page, &PaginationMeta{
		Total:   total,
		Count:   len(page),
		Offset:  offset,
		Limit:   limit,
		HasMore: end < total,
	}
}
