// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package logging provides the process-wide zerolog logger for Folio.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Info().Str("title", title).Msg("Recommendation served")
//
// # Configuration
//
// Environment Variables (read by the config package):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller info (default: false)
//
// # Request Context
//
// The request ID middleware stores an ID in the request context with
// ContextWithRequestID. Ctx(ctx) returns a logger carrying that ID, so every
// log line written while serving a request can be correlated.
//
// # slog Bridge
//
// NewSlogLogger returns a *slog.Logger that writes through zerolog. The
// supervisor tree uses it for sutureslog event hooks.
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
