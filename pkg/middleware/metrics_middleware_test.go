package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func resetGlobalMetricsForTest() {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()
}

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusMiddleware_RecordsSuccessAndError(t *testing.T) {
	t.Run("success increments success counter and duration", func(t *testing.T) {
		resetGlobalMetricsForTest()
		reg := prometheus.NewRegistry()

		mw := Prometheus(WithRegistry(reg))
		res := resolveTest(t, "/projects/42")

		err := mw.Handle(context.Background(), res, func() error { return nil })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		m := GetMetrics()
		if m == nil {
			t.Fatal("expected GetMetrics to return metrics after initialization")
		}

		if got := metricCounterValue(t, m.navigationsTotal.WithLabelValues("/projects/:id", "success")); got != 1 {
			t.Fatalf("navigations_total(success)=%v, want 1", got)
		}
		if got := metricCounterValue(t, m.navigationsTotal.WithLabelValues("/projects/:id", "error")); got != 0 {
			t.Fatalf("navigations_total(error)=%v, want 0", got)
		}
		if got := metricHistogramCount(t, m.navigationDuration.WithLabelValues("/projects/:id")); got == 0 {
			t.Fatal("expected navigation_duration_seconds histogram to have sample count > 0")
		}
	})

	t.Run("error increments error counters", func(t *testing.T) {
		resetGlobalMetricsForTest()
		reg := prometheus.NewRegistry()

		mw := Prometheus(WithRegistry(reg))
		res := resolveTest(t, "/projects/42")

		wantErr := errors.New("page load failed")
		err := mw.Handle(context.Background(), res, func() error { return wantErr })
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected error %v, got %v", wantErr, err)
		}

		m := GetMetrics()
		if m == nil {
			t.Fatal("expected GetMetrics to return metrics after initialization")
		}

		if got := metricCounterValue(t, m.navigationsTotal.WithLabelValues("/projects/:id", "error")); got != 1 {
			t.Fatalf("navigations_total(error)=%v, want 1", got)
		}
		if got := metricCounterValue(t, m.handlerErrors.WithLabelValues("/projects/:id")); got != 1 {
			t.Fatalf("handler_errors_total=%v, want 1", got)
		}
	})
}

func TestPrometheusMiddleware_PatternLabelNotConcretePath(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()

	mw := Prometheus(WithRegistry(reg))

	for _, path := range []string{"/files/a", "/files/a/b/c", "/files/other"} {
		res := resolveTest(t, path)
		if err := mw.Handle(context.Background(), res, func() error { return nil }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	m := GetMetrics()
	if got := metricCounterValue(t, m.navigationsTotal.WithLabelValues("/files/*path", "success")); got != 3 {
		t.Fatalf("navigations_total(/files/*path)=%v, want 3", got)
	}
}

func TestRecordNotFound(t *testing.T) {
	resetGlobalMetricsForTest()

	// Before initialization RecordNotFound must be a no-op.
	RecordNotFound()

	reg := prometheus.NewRegistry()
	_ = Prometheus(WithRegistry(reg))

	RecordNotFound()
	RecordNotFound()

	m := GetMetrics()
	if m == nil {
		t.Fatal("expected GetMetrics to return metrics after initialization")
	}
	if got := metricCounterValue(t, m.notFoundTotal); got != 2 {
		t.Fatalf("not_found_total=%v, want 2", got)
	}
}

func TestPrometheusMiddleware_SharedAcrossInstances(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()

	_ = Prometheus(WithRegistry(reg))
	first := GetMetrics()

	// A second registration would panic on a duplicate collector; the
	// second call must reuse the first instance instead.
	_ = Prometheus(WithRegistry(prometheus.NewRegistry()))
	if GetMetrics() != first {
		t.Fatal("expected second Prometheus() call to reuse initialized metrics")
	}
}
