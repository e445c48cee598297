// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount returns the sample count of a histogram.
func histogramCount(t *testing.T, h prometheus.Metric) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
	}{
		{name: "page", method: "GET", endpoint: "/", statusCode: "200"},
		{name: "recommendations", method: "GET", endpoint: "/api/v1/recommendations", statusCode: "200"},
		{name: "not found", method: "GET", endpoint: "/api/v1/recommendations", statusCode: "404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, 5*time.Millisecond)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("api_requests_total = %v, want %v", after, before+1)
			}
		})
	}
}

// TestTrackActiveRequest tests the in-flight gauge
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	outcomes := []string{OutcomeOK, OutcomeNotFound, OutcomeConfiguration, OutcomeCanceled, OutcomeError}

	for _, outcome := range outcomes {
		t.Run(outcome, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendationRequests.WithLabelValues(outcome))
			RecordRecommendation(outcome, time.Millisecond)
			after := testutil.ToFloat64(RecommendationRequests.WithLabelValues(outcome))
			if after != before+1 {
				t.Errorf("recommendation_requests_total{outcome=%q} = %v, want %v", outcome, after, before+1)
			}
		})
	}
}

func TestRecordRecommendation_Histogram(t *testing.T) {
	before := histogramCount(t, RecommendationDuration)
	RecordRecommendation(OutcomeOK, 3*time.Millisecond)
	RecordRecommendation(OutcomeNotFound, time.Millisecond)
	if got := histogramCount(t, RecommendationDuration); got != before+2 {
		t.Errorf("recommendation_duration_seconds count = %d, want %d", got, before+2)
	}
}

func TestRecordNeighborQuery(t *testing.T) {
	observer, ok := NeighborQueryDuration.WithLabelValues("cosine").(prometheus.Metric)
	if !ok {
		t.Fatal("histogram observer does not implement prometheus.Metric")
	}

	before := histogramCount(t, observer)
	RecordNeighborQuery("cosine", 200*time.Microsecond)
	if got := histogramCount(t, observer); got != before+1 {
		t.Errorf("neighbor_query_duration_seconds{metric=cosine} count = %d, want %d", got, before+1)
	}
}

func TestRecordArtifactLoad(t *testing.T) {
	RecordArtifactLoad("file", 20*time.Millisecond, map[string]int{
		"book_names": 742,
		"book_pivot": 742,
	})

	if got := testutil.ToFloat64(ArtifactEntries.WithLabelValues("book_names")); got != 742 {
		t.Errorf("artifact_entries{artifact=book_names} = %v, want 742", got)
	}
	if n := testutil.CollectAndCount(ArtifactLoadDuration); n == 0 {
		t.Error("artifact_load_duration_seconds has no series")
	}
}

// TestRecordDBQuery_ErrorTruncation tests that long error messages are truncated
func TestRecordDBQuery_ErrorTruncation(t *testing.T) {
	long := errors.New(strings.Repeat("x", 120))
	RecordDBQuery("select", "final_rating", time.Millisecond, long)

	label := strings.Repeat("x", 50)
	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "final_rating", label)); got < 1 {
		t.Errorf("duckdb_query_errors_total with truncated label = %v, want >= 1", got)
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	before := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("/api/v1/books"))
	RecordRateLimitHit("/api/v1/books")
	if got := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("/api/v1/books")); got != before+1 {
		t.Errorf("api_rate_limit_hits_total = %v, want %v", got, before+1)
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.0.0", "go1.24")
	if got := testutil.ToFloat64(AppInfo.WithLabelValues("1.0.0", "go1.24")); got != 1 {
		t.Errorf("app_info = %v, want 1", got)
	}

	UpdateUptime(time.Now().Add(-time.Minute))
	if got := testutil.ToFloat64(AppUptime); got < 60 {
		t.Errorf("app_uptime_seconds = %v, want >= 60", got)
	}
}

// TestConcurrentMetricRecording tests thread-safety of metric recording
func TestConcurrentMetricRecording(t *testing.T) {
	const goroutines = 20
	before := testutil.ToFloat64(RecommendationRequests.WithLabelValues(OutcomeOK))

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordRecommendation(OutcomeOK, time.Microsecond)
			RecordNeighborQuery("euclidean", time.Microsecond)
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(RecommendationRequests.WithLabelValues(OutcomeOK)); got != before+goroutines {
		t.Errorf("recommendation_requests_total{outcome=ok} = %v, want %v", got, before+goroutines)
	}
}
