package builtin

import "playeretl/internal/frame"

// PrunedColumns lists the export columns that never reach the output: the
// exporter's row index, the record indicator, the date helper and the raw
// transfer value superseded by its clean counterpart.
var PrunedColumns = []string{"Unnamed: 0", "Rec", "Date", ColumnTransferValue}

// Prune drops Columns (PrunedColumns when nil) from the frame. Absent names
// are ignored.
type Prune struct {
	Columns []string
}

func (Prune) Name() string { return "prune" }

func (p Prune) Apply(f *frame.Frame) *frame.Frame {
	cols := p.Columns
	if cols == nil {
		cols = PrunedColumns
	}
	f.Drop(cols...)
	return f
}
