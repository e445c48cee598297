// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/theme"
)

// ThemeCookieName persists the selected theme between page loads.
const ThemeCookieName = "folio_theme"

const themeCookieMaxAge = 365 * 24 * time.Hour

//go:embed templates/index.html.tmpl
var templateFS embed.FS

func parsePageTemplate() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return tmpl, nil
}

// pageTheme carries theme values into the <style> block. The values are
// compile-time constants from the theme package.
type pageTheme struct {
	Name            string
	Background      template.CSS
	Primary         template.CSS
	Text            template.CSS
	Card            template.CSS
	BackgroundImage template.CSS
}

func newPageTheme(t theme.Theme) pageTheme {
	//nolint:gosec // trusted constants, not user input
	return pageTheme{
		Name:            t.Name,
		Background:      template.CSS(t.Background),
		Primary:         template.CSS(t.Primary),
		Text:            template.CSS(t.Text),
		Card:            template.CSS(t.Card),
		BackgroundImage: template.CSS(t.BackgroundImage),
	}
}

type pageData struct {
	Theme           pageTheme
	ToggleURL       string
	Titles          []string
	Selected        string
	Recommendations []recommend.Recommendation
	Error           string
}

// Index renders the recommender page.
//
// Query parameters:
//   - theme: dark or light; persisted in the folio_theme cookie
//   - title: when present, the recommendation grid for that title is shown
//
// Lookup failures render an error banner with status 404 (unknown title or
// missing metadata) or 500.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	selectedTheme := h.resolveTheme(w, r)

	data := pageData{
		Theme:  newPageTheme(selectedTheme),
		Titles: h.engine.Catalog().Titles(),
	}
	status := http.StatusOK

	if title, ok := r.URL.Query()["title"]; ok {
		data.Selected = title[0]
		status, data.Error, data.Recommendations = h.pageRecommendations(r, data.Selected)
	}
	data.ToggleURL = toggleURL(selectedTheme, data.Selected)

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to execute index template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write index page")
	}
}

// pageRecommendations runs the lookup for the page and returns the status,
// banner text and grid entries.
func (h *Handler) pageRecommendations(r *http.Request, title string) (int, string, []recommend.Recommendation) {
	req := RecommendationsRequest{Title: title}
	if apiErr := validateRequest(&req); apiErr != nil {
		return http.StatusBadRequest, "Please select a book from the list.", nil
	}

	result, err := h.engine.Recommend(r.Context(), req.Title)
	if err != nil {
		status, message := lookupStatus(err, req.Title)
		logLookupFailure(r, status, err, req.Title)
		return status, message, nil
	}
	return http.StatusOK, "", result.Recommendations
}

// resolveTheme picks the theme from the query, then the cookie, then the
// configured default. A valid query value is written back to the cookie.
func (h *Handler) resolveTheme(w http.ResponseWriter, r *http.Request) theme.Theme {
	if name := r.URL.Query().Get("theme"); theme.Valid(name) {
		http.SetCookie(w, &http.Cookie{
			Name:     ThemeCookieName,
			Value:    name,
			Path:     "/",
			MaxAge:   int(themeCookieMaxAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return theme.Select(name == theme.NameDark)
	}

	if c, err := r.Cookie(ThemeCookieName); err == nil && theme.Valid(c.Value) {
		return theme.Select(c.Value == theme.NameDark)
	}

	return theme.Select(h.config.DefaultTheme == theme.NameDark)
}

// toggleURL links to the page with the other theme, keeping the selection.
func toggleURL(current theme.Theme, selected string) string {
	q := url.Values{}
	q.Set("theme", current.Toggle())
	if selected != "" {
		q.Set("title", selected)
	}
	return "/?" + q.Encode()
}
