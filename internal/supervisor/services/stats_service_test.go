// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/folio/internal/artifacts"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

// mockStatsSource counts Stats calls.
type mockStatsSource struct {
	calls atomic.Int32
}

func (m *mockStatsSource) Stats() recommend.Stats {
	m.calls.Add(1)
	return recommend.Stats{
		Stats:        artifacts.Stats{Titles: 8, PivotRows: 7},
		RequestCount: 3,
		ErrorCount:   1,
	}
}

func TestStatsService_Interface(t *testing.T) {
	var _ suture.Service = (*StatsService)(nil)
	var _ StatsSource = (*recommend.Engine)(nil)
}

func TestNewStatsService_Defaults(t *testing.T) {
	svc := NewStatsService(&mockStatsSource{}, StatsServiceConfig{}, zerolog.Nop())

	if svc.config.Interval != DefaultStatsInterval {
		t.Errorf("Interval = %v, want %v", svc.config.Interval, DefaultStatsInterval)
	}
	if svc.config.Started.IsZero() {
		t.Error("Started should default to now")
	}
	if svc.String() != "stats-service" {
		t.Errorf("String() = %q, want stats-service", svc.String())
	}
}

func TestStatsService_ReportsOnStartAndTick(t *testing.T) {
	source := &mockStatsSource{}
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	svc := NewStatsService(source, StatsServiceConfig{
		Interval: 20 * time.Millisecond,
		Started:  time.Now().Add(-time.Hour),
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}

	if got := source.calls.Load(); got < 2 {
		t.Errorf("Stats() called %d times, want at least 2", got)
	}
	if uptime := testutil.ToFloat64(metrics.AppUptime); uptime < 3600 {
		t.Errorf("uptime gauge = %v, want >= 3600", uptime)
	}
	if !strings.Contains(buf.String(), `"requests":3`) {
		t.Errorf("expected request count in log output, got %s", buf.String())
	}
}

func TestStatsService_StopsOnCancel(t *testing.T) {
	svc := NewStatsService(&mockStatsSource{}, StatsServiceConfig{Interval: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
