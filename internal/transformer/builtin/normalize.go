// Package builtin contains the transform steps of the player pipeline:
// sentinel normalization, typed-field coercion, column pruning and
// de-duplication.
package builtin

import (
	"playeretl/internal/frame"
	"playeretl/internal/value"
)

// SentinelMarker is the placeholder the exporter writes into empty cells.
const SentinelMarker = "-"

// Blank maps a sentinel cell to Missing and returns every other cell
// unchanged. Only the exact string "-" is a sentinel; " -" is data.
func Blank(v value.Value) value.Value {
	if s, ok := v.Text(); ok && s == SentinelMarker {
		return value.Null()
	}
	return v
}

// Sentinel replaces every sentinel cell in every column with Missing.
// Applying it twice is the same as applying it once.
type Sentinel struct{}

func (Sentinel) Name() string { return "sentinel" }

func (Sentinel) Apply(f *frame.Frame) *frame.Frame {
	f.MapAll(Blank)
	return f
}

// StripHeader trims whitespace around column names.
type StripHeader struct{}

func (StripHeader) Name() string { return "strip_header" }

func (StripHeader) Apply(f *frame.Frame) *frame.Frame {
	f.StripColumnNames()
	return f
}
