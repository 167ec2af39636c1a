package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeBackend is an in-memory Backend for tests.
type fakeBackend struct {
	mu sync.Mutex

	counters   []call
	histograms []call
	flushes    int
}

type call struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters = append(f.counters, call{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histograms = append(f.histograms, call{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
	return nil
}

func install(t *testing.T) *fakeBackend {
	t.Helper()
	orig := current()
	fb := &fakeBackend{}
	SetBackend(fb)
	t.Cleanup(func() { SetBackend(orig) })
	return fb
}

func TestRecordStep(t *testing.T) {
	fb := install(t)

	RecordStep("players", "sentinel", nil, 2*time.Second)
	RecordStep("players", "load", errors.New("boom"), 1500*time.Millisecond)

	if len(fb.counters) != 2 || len(fb.histograms) != 2 {
		t.Fatalf("calls: counters=%d histograms=%d, want 2/2", len(fb.counters), len(fb.histograms))
	}

	c0 := fb.counters[0]
	if c0.name != StepTotal || c0.value != 1 {
		t.Fatalf("counter[0] = %#v", c0)
	}
	if c0.labels["step"] != "sentinel" || c0.labels["status"] != "success" || c0.labels["job"] != "players" {
		t.Fatalf("counter[0] labels = %v", c0.labels)
	}
	if h := fb.histograms[0]; h.name != StepDurationSeconds || h.value < 1.999 || h.value > 2.001 {
		t.Fatalf("histogram[0] = %#v, want ~2s", h)
	}
	if got := fb.counters[1].labels["status"]; got != "failure" {
		t.Fatalf("counter[1] status = %q, want failure", got)
	}
}

func TestRecordRowAndBatches(t *testing.T) {
	fb := install(t)

	RecordRow("players", KindExtracted, 3)
	RecordRow("players", KindExtracted, 0)
	RecordRow("players", KindLoaded, 2)
	RecordBatches("players", 1)
	RecordBatches("players", -1)

	if len(fb.counters) != 3 {
		t.Fatalf("counter calls = %d, want 3", len(fb.counters))
	}
	if c := fb.counters[0]; c.name != RecordsTotal || c.value != 3 || c.labels["kind"] != KindExtracted {
		t.Fatalf("counter[0] = %#v", c)
	}
	if c := fb.counters[1]; c.labels["kind"] != KindLoaded || c.value != 2 {
		t.Fatalf("counter[1] = %#v", c)
	}
	if c := fb.counters[2]; c.name != BatchesTotal || c.labels["job"] != "players" {
		t.Fatalf("counter[2] = %#v", c)
	}
}

func TestSetBackendAndFlush(t *testing.T) {
	fb := install(t)

	if err := Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if fb.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", fb.flushes)
	}

	SetBackend(nil)
	if current() != Backend(fb) {
		t.Fatal("SetBackend(nil) replaced the backend")
	}
}
