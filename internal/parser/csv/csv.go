// Package csv reads a delimited player export into a frame.
//
// The first record is the header (see parser.Headers for naming rules). Body
// rows may be ragged: short rows are padded with Missing and long rows are
// cut to the header width. A UTF-8 byte order mark is stripped from the
// first header cell, and non-UTF-8 inputs are decoded when Charset is set.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"playeretl/internal/frame"
	"playeretl/internal/parser"
	"playeretl/internal/value"
)

// ErrNoHeader is returned for an input without a header record.
var ErrNoHeader = errors.New("csv: input has no header")

// Options configures Read. The zero value reads comma-separated UTF-8 with
// untrimmed cells and no type inference.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// Charset names the input encoding: "", "utf-8", "windows-1252" or
	// "iso-8859-1" (plus the aliases accepted by Decode).
	Charset string

	// TrimSpace trims surrounding whitespace from every body cell.
	TrimSpace bool

	// LazyQuotes tolerates stray quotes inside unquoted fields.
	LazyQuotes bool

	// NAMarkers reads parser.NAMarkers texts ("N/A", "null", ...) as Missing.
	NAMarkers bool

	// InferTypes converts numeric columns with parser.InferKinds.
	InferTypes bool

	// KeepText names columns InferTypes must leave as text.
	KeepText []string
}

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Read parses the whole of r into a frame.
func Read(r io.Reader, opt Options) (*frame.Frame, error) {
	dr, err := Decode(r, opt.Charset)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(dr)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = opt.LazyQuotes
	cr.ReuseRecord = true

	h, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	f := frame.New(parser.Headers(StripHeaderBOM(h))...)
	rules := parser.CellRules{TrimSpace: opt.TrimSpace, NAMarkers: opt.NAMarkers}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		cells := make([]value.Value, min(len(rec), len(f.Columns)))
		for i := range cells {
			cells[i] = rules.Cell(rec[i])
		}
		f.Append(cells...)
	}

	if opt.InferTypes {
		parser.InferKinds(f, opt.KeepText...)
	}
	return f, nil
}

// StripHeaderBOM removes a UTF-8 BOM from the first header cell if present.
// The slice is copied; the reader may reuse the original.
func StripHeaderBOM(headers []string) []string {
	out := append([]string(nil), headers...)
	if len(out) > 0 {
		out[0] = strings.TrimPrefix(out[0], utf8BOM)
	}
	return out
}
