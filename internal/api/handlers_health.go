// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK while the process is serving HTTP.
//
// @Summary Kubernetes liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":   true,
		"version": h.config.Version,
		"uptime":  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Artifacts are loaded before the router is built, so a handler that exists
// is ready unless its catalog or matrix is empty.
//
// @Summary Kubernetes readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=recommend.Stats} "Service is ready"
// @Failure 503 {object} APIResponse "Artifacts are empty"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	stats := h.engine.Stats()
	if stats.Titles == 0 || stats.PivotRows == 0 {
		rw.ServiceUnavailable("Artifacts loaded but empty")
		return
	}

	rw.Success(stats)
}
