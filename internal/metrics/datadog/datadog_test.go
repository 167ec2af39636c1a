package datadog

import (
	"reflect"
	"testing"

	"playeretl/internal/metrics"
)

type recorded struct {
	name  string
	value float64
	tags  []string
}

type fakeClient struct {
	counts []recorded
	hists  []recorded
	closed bool
}

func (f *fakeClient) Count(name string, value int64, tags []string, _ float64) error {
	f.counts = append(f.counts, recorded{name, float64(value), tags})
	return nil
}

func (f *fakeClient) Histogram(name string, value float64, tags []string, _ float64) error {
	f.hists = append(f.hists, recorded{name, value, tags})
	return nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestNewBackendRequiresAddr(t *testing.T) {
	if _, err := NewBackend(Config{}); err == nil {
		t.Fatalf("expected error for empty Addr")
	}
}

func TestBackendForwardsWithSortedTags(t *testing.T) {
	fc := &fakeClient{}
	b := &Backend{client: fc}

	b.IncCounter(metrics.RecordsTotal, 7, metrics.Labels{"kind": "loaded", "job": "players"})
	b.ObserveHistogram(metrics.StepDurationSeconds, 0.5, metrics.Labels{"step": "group"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(fc.counts) != 1 || fc.counts[0].value != 7 {
		t.Fatalf("counts = %#v", fc.counts)
	}
	if want := []string{"job:players", "kind:loaded"}; !reflect.DeepEqual(fc.counts[0].tags, want) {
		t.Fatalf("tags = %v, want %v", fc.counts[0].tags, want)
	}
	if len(fc.hists) != 1 || fc.hists[0].name != metrics.StepDurationSeconds {
		t.Fatalf("hists = %#v", fc.hists)
	}
	if !fc.closed {
		t.Fatalf("Flush did not close the client")
	}
}

func TestNilClientIsSafe(t *testing.T) {
	b := &Backend{}
	b.IncCounter("x", 1, nil)
	b.ObserveHistogram("x", 1, nil)
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}
