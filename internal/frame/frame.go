// Package frame holds the in-memory table the pipeline operates on: an
// ordered list of column names plus rows of value.Value aligned to them.
//
// A Frame is deliberately minimal. It supports the handful of column
// operations the player transform needs (lookup, set, drop, rename,
// per-column apply) and leaves everything else to the transform steps.
package frame

import (
	"strconv"
	"strings"

	"playeretl/internal/value"
)

// Frame is an ordered-column table. Every row has len(Columns) cells.
type Frame struct {
	Columns []string
	Rows    [][]value.Value
}

// New returns an empty Frame with the given columns.
func New(columns ...string) *Frame {
	return &Frame{Columns: append([]string(nil), columns...)}
}

// Append adds a row. Short rows are padded with Missing and long rows are
// truncated to the column count.
func (f *Frame) Append(cells ...value.Value) {
	row := make([]value.Value, len(f.Columns))
	copy(row, cells)
	f.Rows = append(f.Rows, row)
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Rows) }

// Clone returns a deep copy of the frame's structure. Values are immutable so
// only the slices are copied.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		Columns: append([]string(nil), f.Columns...),
		Rows:    make([][]value.Value, len(f.Rows)),
	}
	for i, r := range f.Rows {
		out.Rows[i] = append([]value.Value(nil), r...)
	}
	return out
}

// Index returns the position of the first column named name, or -1.
func (f *Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether a column named name exists.
func (f *Frame) Has(name string) bool { return f.Index(name) >= 0 }

// Column returns a copy of the named column's cells, or nil if absent.
func (f *Frame) Column(name string) []value.Value {
	i := f.Index(name)
	if i < 0 {
		return nil
	}
	out := make([]value.Value, len(f.Rows))
	for r, row := range f.Rows {
		out[r] = row[i]
	}
	return out
}

// ColumnKind returns the common kind of the non-missing cells in the named
// column. It returns value.Missing when the column is absent or has no
// non-missing cell, and value.String when the cells disagree.
func (f *Frame) ColumnKind(name string) value.Kind {
	i := f.Index(name)
	if i < 0 {
		return value.Missing
	}
	kind := value.Missing
	for _, row := range f.Rows {
		k := row[i].Kind()
		if k == value.Missing {
			continue
		}
		if kind == value.Missing {
			kind = k
			continue
		}
		if k != kind {
			return value.String
		}
	}
	return kind
}

// Map replaces every cell of the named column with fn(cell). It is a no-op
// when the column is absent.
func (f *Frame) Map(name string, fn func(value.Value) value.Value) {
	i := f.Index(name)
	if i < 0 {
		return
	}
	for _, row := range f.Rows {
		row[i] = fn(row[i])
	}
}

// MapAll replaces every cell of every column with fn(cell).
func (f *Frame) MapAll(fn func(value.Value) value.Value) {
	for _, row := range f.Rows {
		for i := range row {
			row[i] = fn(row[i])
		}
	}
}

// Set writes cells into the named column, appending the column when it does
// not exist yet. len(cells) must equal Len().
func (f *Frame) Set(name string, cells []value.Value) {
	i := f.Index(name)
	if i < 0 {
		f.Columns = append(f.Columns, name)
		for r := range f.Rows {
			f.Rows[r] = append(f.Rows[r], value.Null())
		}
		i = len(f.Columns) - 1
	}
	for r, row := range f.Rows {
		if r < len(cells) {
			row[i] = cells[r]
		} else {
			row[i] = value.Null()
		}
	}
}

// Derive fills the named column with fn applied to the cells of src,
// creating the destination column if needed. It is a no-op when src is
// absent.
func (f *Frame) Derive(dst, src string, fn func(value.Value) value.Value) {
	if !f.Has(src) {
		return
	}
	in := f.Column(src)
	out := make([]value.Value, len(in))
	for r, v := range in {
		out[r] = fn(v)
	}
	f.Set(dst, out)
}

// Drop removes every column whose name is in names. Unknown names are
// ignored.
func (f *Frame) Drop(names ...string) {
	if len(names) == 0 {
		return
	}
	unwanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		unwanted[n] = struct{}{}
	}
	keep := make([]int, 0, len(f.Columns))
	for i, c := range f.Columns {
		if _, ok := unwanted[c]; !ok {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(f.Columns) {
		return
	}
	f.Select(keep)
}

// Select reorders and filters the columns to the given positions.
func (f *Frame) Select(positions []int) {
	cols := make([]string, len(positions))
	for j, i := range positions {
		cols[j] = f.Columns[i]
	}
	for r, row := range f.Rows {
		out := make([]value.Value, len(positions))
		for j, i := range positions {
			out[j] = row[i]
		}
		f.Rows[r] = out
	}
	f.Columns = cols
}

// StripColumnNames trims surrounding whitespace from every column name. If
// trimming makes two names collide, later ones get a ".N" suffix so lookups
// stay unambiguous.
func (f *Frame) StripColumnNames() {
	seen := make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		f.Columns[i] = strings.TrimSpace(c)
	}
	for i, c := range f.Columns {
		f.Columns[i] = Dedupe(c, seen)
	}
}

// Dedupe returns name, or name with the first free ".N" suffix if name was
// already seen, and records the result in seen.
func Dedupe(name string, seen map[string]int) string {
	n, dup := seen[name]
	if !dup {
		seen[name] = 0
		return name
	}
	for {
		n++
		cand := name + "." + strconv.Itoa(n)
		if _, taken := seen[cand]; !taken {
			seen[name] = n
			seen[cand] = 0
			return cand
		}
	}
}
