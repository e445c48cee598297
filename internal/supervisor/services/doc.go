// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package services provides suture.Service wrappers for Folio components.

Each wrapper implements the suture v4 interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Stats Reporter (StatsService):
  - Refreshes the app_uptime_seconds gauge
  - Logs recommendation request counters on an interval

# Error Handling

Serve returns ctx.Err() on a requested shutdown. Any other error is a
failure, and the supervisor restarts the service subject to its backoff
settings.
*/
package services
