package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeBackend is a simple in-memory Backend implementation for tests.
type fakeBackend struct {
	mu sync.Mutex

	callsCounters   []call
	callsHistograms []call
	callsGauges     []call
	flushCount      int
}

type call struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callsCounters = append(f.callsCounters, call{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callsHistograms = append(f.callsHistograms, call{name, value, labels})
}

func (f *fakeBackend) SetGauge(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callsGauges = append(f.callsGauges, call{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushCount++
	return nil
}

// install swaps the global backend for the duration of a test.
func install(t *testing.T) *fakeBackend {
	t.Helper()
	orig := current()
	t.Cleanup(func() { SetBackend(orig) })
	fb := &fakeBackend{}
	SetBackend(fb)
	return fb
}

func TestRecordStep_SuccessAndFailure(t *testing.T) {
	fb := install(t)

	RecordStep("retail", "check", nil, 2*time.Second)
	RecordStep("retail", "load", errors.New("boom"), 1500*time.Millisecond)

	if len(fb.callsCounters) != 2 || len(fb.callsHistograms) != 2 {
		t.Fatalf("calls: counters=%d histograms=%d, want 2 and 2", len(fb.callsCounters), len(fb.callsHistograms))
	}

	c0 := fb.callsCounters[0]
	if c0.name != StepTotal || c0.value != 1 {
		t.Fatalf("counter[0] = %#v; want name=%s, delta=1", c0, StepTotal)
	}
	if c0.labels["job"] != "retail" || c0.labels["step"] != "check" || c0.labels["status"] != "success" {
		t.Fatalf("counter[0] labels = %v", c0.labels)
	}
	if h0 := fb.callsHistograms[0]; h0.name != StepDurationSeconds || h0.value < 1.999 || h0.value > 2.001 {
		t.Fatalf("hist[0] = %#v; want ~2s on %s", h0, StepDurationSeconds)
	}

	if got := fb.callsCounters[1].labels["status"]; got != "failure" {
		t.Fatalf("counter[1].labels[status]=%q; want failure", got)
	}
	if h1 := fb.callsHistograms[1]; h1.value < 1.499 || h1.value > 1.501 {
		t.Fatalf("hist[1].value=%v; want ~1.5", h1.value)
	}
}

func TestRecordRowsBatchesAndQuality(t *testing.T) {
	fb := install(t)

	RecordRows("retail", "orders", KindRead, 3)
	RecordRows("retail", "orders", KindDropped, 0) // ignored
	RecordRows("retail", "orders", KindInserted, 5)
	RecordBatches("retail", "orders", 2)
	RecordBatches("retail", "orders", -1) // ignored
	RecordQuality("retail", 85.71)

	if len(fb.callsCounters) != 3 {
		t.Fatalf("expected 3 counter calls, got %d", len(fb.callsCounters))
	}
	c0 := fb.callsCounters[0]
	if c0.name != RowsTotal || c0.value != 3 || c0.labels["table"] != "orders" || c0.labels["kind"] != KindRead {
		t.Fatalf("counter[0] = %#v", c0)
	}
	if c1 := fb.callsCounters[1]; c1.labels["kind"] != KindInserted || c1.value != 5 {
		t.Fatalf("counter[1] = %#v", c1)
	}
	if c2 := fb.callsCounters[2]; c2.name != BatchesTotal || c2.value != 2 || c2.labels["table"] != "orders" {
		t.Fatalf("counter[2] = %#v", c2)
	}
	if len(fb.callsGauges) != 1 || fb.callsGauges[0].name != QualityScore || fb.callsGauges[0].value != 85.71 {
		t.Fatalf("gauges = %#v", fb.callsGauges)
	}
}

func TestSetBackendAndFlush(t *testing.T) {
	fb := install(t)

	if err := Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if fb.flushCount != 1 {
		t.Fatalf("expected flushCount=1, got %d", fb.flushCount)
	}

	SetBackend(nil)
	if current() != Backend(fb) {
		t.Fatal("SetBackend(nil) should not change backend")
	}
}

func TestNopBackendIsSafe(t *testing.T) {
	var b Backend = nopBackend{}
	b.IncCounter(StepTotal, 1, nil)
	b.ObserveHistogram(StepDurationSeconds, 1, nil)
	b.SetGauge(QualityScore, 1, nil)
	if err := b.Flush(); err != nil {
		t.Fatalf("nop Flush error: %v", err)
	}
}
