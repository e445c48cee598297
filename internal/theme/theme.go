// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package theme holds the two fixed color schemes of the web page.
package theme

import "strings"

// Theme names.
const (
	NameDark  = "dark"
	NameLight = "light"
)

// Theme is a named set of presentation values.
type Theme struct {
	Name            string `json:"name"`
	Background      string `json:"background"`
	Primary         string `json:"primary"`
	Text            string `json:"text"`
	Card            string `json:"card"`
	BackgroundImage string `json:"background_image"`
}

var (
	darkScheme = Theme{
		Name:            NameDark,
		Background:      "#1e1e1e",
		Primary:         "#00adb5",
		Text:            "#eeeeee",
		Card:            "#2e2e2e",
		BackgroundImage: "url('https://www.transparenttextures.com/patterns/black-linen.png')",
	}

	lightScheme = Theme{
		Name:            NameLight,
		Background:      "#f9f9f9",
		Primary:         "#4B8BBE",
		Text:            "#333333",
		Card:            "#ffffff",
		BackgroundImage: "url('https://www.transparenttextures.com/patterns/pw-maze-white.png')",
	}
)

// Select returns the dark theme when dark is true and the light theme otherwise.
func Select(dark bool) Theme {
	if dark {
		return darkScheme
	}
	return lightScheme
}

// Parse reports whether s asks for the dark theme. Recognized values are
// "dark", "true", "1", "on" and "yes"; everything else selects light.
func Parse(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case NameDark, "true", "1", "on", "yes":
		return true
	default:
		return false
	}
}

// Valid reports whether s names a theme.
func Valid(s string) bool {
	return s == NameDark || s == NameLight
}

// Toggle returns the name of the other theme.
func (t Theme) Toggle() string {
	if t.Name == NameDark {
		return NameLight
	}
	return NameDark
}
