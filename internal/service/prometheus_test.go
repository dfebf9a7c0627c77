package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusMetricsRecorderCountsResults(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	ctx := context.Background()

	rec.Observe(ctx, "log_ride", true, 12*time.Millisecond)
	rec.Observe(ctx, "log_ride", true, 8*time.Millisecond)
	rec.Observe(ctx, "log_ride", false, time.Millisecond)
	rec.Observe(ctx, "", true, time.Second) // ignored

	if got := testutil.ToFloat64(rec.results.WithLabelValues("log_ride", "success")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(rec.results.WithLabelValues("log_ride", "error")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
	if count := testutil.CollectAndCount(rec.durations); count == 0 {
		t.Fatalf("expected duration samples to be collected")
	}
}

func TestPrometheusMetricsRecorderDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusMetricsRecorder(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}
