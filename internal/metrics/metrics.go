// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from the retail pipeline.
//
//   - Backend is a narrow interface for counters, gauges and timings.
//   - A global, pluggable backend defaults to a no-op implementation, so
//     metrics are always safe to call even when none is configured.
//   - Concrete systems (Prometheus Pushgateway, Datadog) live in subpackages,
//     mirroring the storage backend layout.
package metrics

import (
	"sync"
	"time"
)

// Metric names emitted by the pipeline.
const (
	StepTotal           = "retailetl_step_total"
	StepDurationSeconds = "retailetl_step_duration_seconds"
	RowsTotal           = "retailetl_rows_total"
	BatchesTotal        = "retailetl_batches_total"
	QualityScore        = "retailetl_quality_score"
)

// Row kinds recorded under RowsTotal.
const (
	KindRead     = "read"
	KindDropped  = "dropped"
	KindFixed    = "fixed"
	KindWritten  = "written"
	KindInserted = "inserted"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// SetGauge sets a point-in-time value.
	SetGauge(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) SetGauge(string, float64, Labels)         {}
func (nopBackend) Flush() error                             { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	mu.Lock()
	backend = b
	mu.Unlock()
}

func current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Flush delegates to the current backend.
func Flush() error {
	return current().Flush()
}

// RecordStep counts one execution of a pipeline step and its duration,
// labelled success or failure.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "step": step, "status": status}

	b := current()
	b.IncCounter(StepTotal, 1, lbls)
	b.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordRows increments the row counter for a table and kind (read, dropped,
// fixed, written, inserted). Non-positive deltas are ignored.
func RecordRows(job, table, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(RowsTotal, float64(delta), Labels{"job": job, "table": table, "kind": kind})
}

// RecordBatches increments the flushed-batch counter for a table.
func RecordBatches(job, table string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(BatchesTotal, float64(delta), Labels{"job": job, "table": table})
}

// RecordQuality sets the overall quality score of the last check.
func RecordQuality(job string, score float64) {
	current().SetGauge(QualityScore, score, Labels{"job": job})
}
