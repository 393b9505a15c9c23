package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/metrics"
)

// readMetric writes a collector's current value into a dto.Metric.
func readMetric(t *testing.T, m prometheus.Metric) *dto.Metric {
	t.Helper()

	out := &dto.Metric{}
	if err := m.Write(out); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return out
}

// TestNewBackend constructs backends with different inputs and validates
// field initialization and defaults.
func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{name: "missing gateway URL returns error", jobName: "retail", wantErr: true},
		{name: "empty job name uses default", gatewayURL: "http://pushgateway:9091", wantJobName: "retailetl"},
		{name: "explicit job name is preserved", jobName: "nightly", gatewayURL: "http://pushgateway:9091", wantJobName: "nightly"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.jobName, tt.gatewayURL)
			if tt.wantErr {
				if err == nil || b != nil {
					t.Fatalf("NewBackend(%q, %q) = (%v, %v), want error", tt.jobName, tt.gatewayURL, b, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend(%q, %q) error = %v", tt.jobName, tt.gatewayURL, err)
			}
			if b.jobName != tt.wantJobName {
				t.Fatalf("backend.jobName = %q, want %q", b.jobName, tt.wantJobName)
			}
		})
	}
}

// TestIncCounter checks each known counter lands on its collector with the
// expected labels and unknown names are ignored.
func TestIncCounter(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("retail", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "load", "status": "success"})
	b.IncCounter(metrics.RowsTotal, 7, metrics.Labels{"table": "orders", "kind": metrics.KindDropped})
	b.IncCounter(metrics.RowsTotal, 3, metrics.Labels{"table": "orders", "kind": metrics.KindDropped})
	b.IncCounter(metrics.BatchesTotal, 2, metrics.Labels{"table": "orders"})
	b.IncCounter("unknown_metric", 99, nil)

	if got := readMetric(t, b.stepCounter.WithLabelValues("load", "success")).GetCounter().GetValue(); got != 1 {
		t.Fatalf("step counter = %v, want 1", got)
	}
	if got := readMetric(t, b.rowCounter.WithLabelValues("orders", metrics.KindDropped)).GetCounter().GetValue(); got != 10 {
		t.Fatalf("row counter = %v, want 10", got)
	}
	if got := readMetric(t, b.batchCounter.WithLabelValues("orders")).GetCounter().GetValue(); got != 2 {
		t.Fatalf("batch counter = %v, want 2", got)
	}
}

func TestObserveAndGauge(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("retail", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.ObserveHistogram(metrics.StepDurationSeconds, 1.5, metrics.Labels{"step": "transform", "status": "success"})
	b.ObserveHistogram(metrics.StepDurationSeconds, 0.5, metrics.Labels{"step": "transform", "status": "success"})
	b.ObserveHistogram("other", 10, nil)
	b.SetGauge(metrics.QualityScore, 85.71, nil)

	obs, ok := b.stepDuration.WithLabelValues("transform", "success").(prometheus.Metric)
	if !ok {
		t.Fatalf("summary observer does not implement prometheus.Metric")
	}
	s := readMetric(t, obs).GetSummary()
	if s.GetSampleCount() != 2 || s.GetSampleSum() != 2.0 {
		t.Fatalf("summary count=%d sum=%v, want 2 and 2.0", s.GetSampleCount(), s.GetSampleSum())
	}
	if got := readMetric(t, b.quality).GetGauge().GetValue(); got != 85.71 {
		t.Fatalf("quality gauge = %v, want 85.71", got)
	}
}

// TestIncCounterNilMetrics ensures a zero Backend ignores calls.
func TestIncCounterNilMetrics(t *testing.T) {
	t.Parallel()

	var b Backend
	b.IncCounter(metrics.StepTotal, 1, nil)
	b.IncCounter(metrics.RowsTotal, 1, nil)
	b.IncCounter(metrics.BatchesTotal, 1, nil)
	b.ObserveHistogram(metrics.StepDurationSeconds, 1, nil)
	b.SetGauge(metrics.QualityScore, 1, nil)
}

// TestFlush verifies that Flush pushes the registry to the configured
// Pushgateway URL.
func TestFlush(t *testing.T) {
	t.Parallel()

	type pushRequestInfo struct {
		method  string
		path    string
		bodyLen int
	}
	reqCh := make(chan pushRequestInfo, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)
		reqCh <- pushRequestInfo{method: r.Method, path: r.URL.Path, bodyLen: len(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("retail", server.URL)
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "check", "status": "success"})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got pushRequestInfo
	select {
	case got = <-reqCh:
	default:
		t.Fatalf("Flush() did not result in any HTTP request to the Pushgateway")
	}
	if got.method != http.MethodPut {
		t.Fatalf("push method = %q, want PUT", got.method)
	}
	if got.path != "/metrics/job/retail" {
		t.Fatalf("push path = %q, want /metrics/job/retail", got.path)
	}
	if got.bodyLen == 0 {
		t.Fatalf("Push request body length = 0, want > 0")
	}
}
