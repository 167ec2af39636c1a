// Package transformer defines the step abstraction of the player transform:
// a Transformer rewrites a frame.Frame, and a Chain runs several of them in
// order, timing each step.
package transformer

import (
	"time"

	"playeretl/internal/frame"
	"playeretl/internal/metrics"
)

// Transformer is a single, total transform step. Apply may modify f in place
// and returns the frame the next step should see.
type Transformer interface {
	Name() string
	Apply(f *frame.Frame) *frame.Frame
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs every step in order. Each step's duration is reported through
// metrics.RecordStep under the given job name.
func (c Chain) Apply(job string, in *frame.Frame) *frame.Frame {
	out := in
	for _, t := range c {
		start := time.Now()
		out = t.Apply(out)
		metrics.RecordStep(job, t.Name(), nil, time.Since(start))
	}
	return out
}

// Names lists the step names in order.
func (c Chain) Names() []string {
	out := make([]string, len(c))
	for i, t := range c {
		out[i] = t.Name()
	}
	return out
}
