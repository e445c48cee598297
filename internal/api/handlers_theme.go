// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"

	"github.com/tomtom215/folio/internal/theme"
)

// Theme returns a theme record.
//
// @Summary Get a presentation theme
// @Tags Theme
// @Produce json
// @Param name query string false "dark or light"
// @Param dark query string false "true/1/on/yes/dark select the dark theme"
// @Success 200 {object} APIResponse{data=theme.Theme}
// @Failure 400 {object} APIResponse
// @Router /theme [get]
func (h *Handler) Theme(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := r.URL.Query()
	req := ThemeRequest{Name: q.Get("name"), Dark: q.Get("dark")}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	var dark bool
	switch {
	case req.Name != "":
		dark = req.Name == theme.NameDark
	case req.Dark != "":
		dark = theme.Parse(req.Dark)
	default:
		dark = h.config.DefaultTheme == theme.NameDark
	}

	rw.Success(theme.Select(dark))
}
