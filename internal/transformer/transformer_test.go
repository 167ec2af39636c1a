package transformer

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"playeretl/internal/frame"
	"playeretl/internal/metrics"
	"playeretl/internal/value"
)

type stepFunc struct {
	name string
	fn   func(f *frame.Frame) *frame.Frame
}

func (s stepFunc) Name() string                      { return s.name }
func (s stepFunc) Apply(f *frame.Frame) *frame.Frame { return s.fn(f) }

/*
appendColumn adds a constant column; used to verify that each step sees the
output of the previous one.
*/
func appendColumn(name string) Transformer {
	return stepFunc{name: "add_" + name, fn: func(f *frame.Frame) *frame.Frame {
		cells := make([]value.Value, f.Len())
		for i := range cells {
			cells[i] = value.Str(name)
		}
		f.Set(name, cells)
		return f
	}}
}

type stepRecorder struct {
	mu    sync.Mutex
	steps []string
}

func (r *stepRecorder) IncCounter(name string, _ float64, l metrics.Labels) {
	if name != metrics.StepTotal {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, l["job"]+"/"+l["step"])
}
func (r *stepRecorder) ObserveHistogram(string, float64, metrics.Labels) {}
func (r *stepRecorder) Flush() error                                     { return nil }

func TestChainAppliesInOrderAndRecordsSteps(t *testing.T) {
	rec := &stepRecorder{}
	metrics.SetBackend(rec)

	in := frame.New("id")
	in.Append(value.Int64(1))

	c := Chain{appendColumn("a"), appendColumn("b")}
	out := c.Apply("players", in)

	if want := []string{"id", "a", "b"}; !reflect.DeepEqual(out.Columns, want) {
		t.Fatalf("columns = %v, want %v", out.Columns, want)
	}
	if want := []string{"players/add_a", "players/add_b"}; !reflect.DeepEqual(rec.steps, want) {
		t.Fatalf("recorded steps = %v, want %v", rec.steps, want)
	}
}

func TestEmptyChainIsIdentity(t *testing.T) {
	in := frame.New("x")
	if out := (Chain{}).Apply("j", in); out != in {
		t.Fatalf("empty chain returned a different frame")
	}
}

func TestChainUsesReturnedFrame(t *testing.T) {
	replacement := frame.New("other")
	step := stepFunc{name: "swap", fn: func(*frame.Frame) *frame.Frame {
		time.Sleep(time.Millisecond)
		return replacement
	}}
	if got := (Chain{step}).Apply("j", frame.New("x")); got != replacement {
		t.Fatalf("chain did not return the replacement frame")
	}
	if got := (Chain{step}).Names(); !reflect.DeepEqual(got, []string{"swap"}) {
		t.Fatalf("Names = %v", got)
	}
}
