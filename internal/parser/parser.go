// Package parser holds the header and cell rules shared by the format
// readers in its subpackages (csv, xlsx). Readers hand back a *frame.Frame
// whose header and cells follow the same conventions regardless of format.
package parser

import (
	"slices"
	"strconv"
	"strings"

	"playeretl/internal/frame"
	"playeretl/internal/value"
)

// Headers names the columns of a raw header row. An empty name at position
// i becomes "Unnamed: i" and repeated names get ".1", ".2", ... suffixes, so
// the second "Nat" column is addressable as "Nat.1".
func Headers(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		out[i] = frame.Dedupe(h, seen)
	}
	return out
}

// NAMarkers are the texts read_csv treats as missing by default.
var NAMarkers = []string{
	"#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

var naSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(NAMarkers))
	for _, s := range NAMarkers {
		m[s] = struct{}{}
	}
	return m
}()

// CellRules says how one raw field becomes a value.
type CellRules struct {
	// TrimSpace trims surrounding whitespace first.
	TrimSpace bool

	// NAMarkers turns the NAMarkers texts into Missing.
	NAMarkers bool
}

// Cell converts one raw field. Empty fields are Missing, and so are the
// NAMarkers texts when r.NAMarkers is set; everything else is a String.
func (r CellRules) Cell(s string) value.Value {
	if r.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return value.Null()
	}
	if r.NAMarkers {
		if _, ok := naSet[s]; ok {
			return value.Null()
		}
	}
	return value.Str(s)
}

// InferKinds converts whole columns of numeric text: a column whose
// non-missing cells all parse as integers becomes Int, one whose cells all
// parse as decimals becomes Float, and any other column is left as text.
// Cells are never converted one by one, so "15" in a column that also holds
// "-" stays a string. Columns named in keepText are never converted.
func InferKinds(f *frame.Frame, keepText ...string) {
	for _, name := range f.Columns {
		if slices.Contains(keepText, name) {
			continue
		}
		inferColumn(f, name)
	}
}

func inferColumn(f *frame.Frame, name string) {
	ints, floats, seen := true, true, false
	for _, c := range f.Column(name) {
		if c.IsMissing() {
			continue
		}
		s, ok := c.Text()
		if !ok {
			return
		}
		seen = true
		if ints {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				ints = false
			}
		}
		if !ints && !isDecimal(s) {
			floats = false
			break
		}
	}
	if !seen || (!ints && !floats) {
		return
	}
	f.Map(name, func(v value.Value) value.Value {
		s, ok := v.Text()
		if !ok {
			return v
		}
		if ints {
			n, _ := strconv.ParseInt(s, 10, 64)
			return value.Int64(n)
		}
		x, _ := strconv.ParseFloat(s, 64)
		return value.Float64(x)
	})
}

// isDecimal accepts what strconv.ParseFloat accepts, minus hexadecimal
// literals and the special words inf, infinity and nan.
func isDecimal(s string) bool {
	t := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "inf") || t == "nan" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
