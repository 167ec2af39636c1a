// Package schema holds the static category layout of player attributes and
// groups a flat frame into the two-level (category, field) output table.
package schema

import (
	"fmt"

	"playeretl/internal/frame"
	"playeretl/internal/value"
)

// Category is a named, ordered group of fields.
type Category struct {
	Name   string
	Fields []string
}

// Categorized is an ordered list of categories. A field should belong to at
// most one category; see Validate.
type Categorized []Category

// Validate reports the first field listed in more than one category (or
// twice in the same one).
func (c Categorized) Validate() error {
	owner := make(map[string]string)
	for _, cat := range c {
		for _, f := range cat.Fields {
			if prev, dup := owner[f]; dup {
				return fmt.Errorf("schema: field %q in both %q and %q", f, prev, cat.Name)
			}
			owner[f] = cat.Name
		}
	}
	return nil
}

// Columns flattens the schema in category-then-field order. Repeated fields
// keep their first position only.
func (c Categorized) Columns() []Column {
	seen := make(map[string]struct{})
	var out []Column
	for _, cat := range c {
		for _, f := range cat.Fields {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, Column{Category: cat.Name, Field: f})
		}
	}
	return out
}

// CategoryOf returns the category a field belongs to.
func (c Categorized) CategoryOf(field string) (string, bool) {
	for _, cat := range c {
		for _, f := range cat.Fields {
			if f == field {
				return cat.Name, true
			}
		}
	}
	return "", false
}

// Column addresses one output column.
type Column struct {
	Category string
	Field    string
}

func (c Column) String() string { return c.Category + "/" + c.Field }

// Table is the grouped output: columns tagged with their category and rows
// aligned to them.
type Table struct {
	Columns []Column
	Rows    [][]value.Value
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Fields returns the flat field names in column order.
func (t *Table) Fields() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Field
	}
	return out
}

// Flatten drops the category level and returns a frame addressed by field
// name. The result shares no slices with t.
func (t *Table) Flatten() *frame.Frame {
	f := frame.New(t.Fields()...)
	for _, r := range t.Rows {
		f.Append(r...)
	}
	return f
}

// Group keeps the schema fields present in f, in schema order, and tags each
// with its category. Columns unknown to the schema are dropped and schema
// fields missing from f are skipped; neither is an error.
func Group(f *frame.Frame, c Categorized) *Table {
	var (
		cols []Column
		pos  []int
	)
	for _, col := range c.Columns() {
		if i := f.Index(col.Field); i >= 0 {
			cols = append(cols, col)
			pos = append(pos, i)
		}
	}

	t := &Table{Columns: cols, Rows: make([][]value.Value, len(f.Rows))}
	for r, row := range f.Rows {
		out := make([]value.Value, len(pos))
		for j, i := range pos {
			out[j] = row[i]
		}
		t.Rows[r] = out
	}
	return t
}
