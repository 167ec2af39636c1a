// Package xlsx reads one worksheet of an Excel player export into a frame,
// applying the same header and cell rules as the CSV reader.
//
// Cells are read raw, without number formats applied, except that a numeric
// cell styled with a date format becomes a value.Date.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"playeretl/internal/frame"
	"playeretl/internal/parser"
	"playeretl/internal/value"
)

// ErrNoHeader is returned when the chosen sheet is empty.
var ErrNoHeader = errors.New("xlsx: sheet has no header row")

// Options configures Read.
type Options struct {
	// Sheet names the worksheet. Empty means the first sheet.
	Sheet string

	// TrimSpace trims surrounding whitespace from every body cell.
	TrimSpace bool

	// NAMarkers reads parser.NAMarkers texts as Missing.
	NAMarkers bool

	// InferTypes converts numeric columns with parser.InferKinds.
	InferTypes bool

	// KeepText names columns InferTypes must leave as text.
	KeepText []string
}

// Read parses the chosen sheet of the workbook in r.
func Read(r io.Reader, opt Options) (*frame.Frame, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open: %w", err)
	}
	defer wb.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	dates := newDateCells(wb, sheet)
	rules := parser.CellRules{TrimSpace: opt.TrimSpace, NAMarkers: opt.NAMarkers}
	f := frame.New(parser.Headers(rows[0])...)
	for r, rec := range rows[1:] {
		cells := make([]value.Value, min(len(rec), len(f.Columns)))
		for i := range cells {
			// Sheet rows are 1-based and row 1 is the header.
			if d, ok := dates.value(i+1, r+2, rec[i]); ok {
				cells[i] = d
				continue
			}
			cells[i] = rules.Cell(rec[i])
		}
		f.Append(cells...)
	}

	if opt.InferTypes {
		parser.InferKinds(f, opt.KeepText...)
	}
	return f, nil
}

// dateCells recognizes date-styled serial numbers. Style lookups are cached
// per style index.
type dateCells struct {
	wb       *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(wb *excelize.File, sheet string) *dateCells {
	d := &dateCells{wb: wb, sheet: sheet, styles: map[int]bool{}}
	if props, err := wb.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateCells) value(col, row int, raw string) (value.Value, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return value.Value{}, false
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return value.Value{}, false
	}
	idx, err := d.wb.GetCellStyle(d.sheet, ref)
	if err != nil {
		return value.Value{}, false
	}
	isDate, seen := d.styles[idx]
	if !seen {
		isDate = d.isDateStyle(idx)
		d.styles[idx] = isDate
	}
	if !isDate {
		return value.Value{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return value.Value{}, false
	}
	return value.DateOf(t), true
}

func (d *dateCells) isDateStyle(idx int) bool {
	if idx == 0 {
		return false
	}
	st, err := d.wb.GetStyle(idx)
	if err != nil || st == nil {
		return false
	}
	if st.CustomNumFmt != nil {
		return isDateFormat(*st.CustomNumFmt)
	}
	return isDateNumFmt(st.NumFmt)
}

// isDateNumFmt reports built-in number formats that carry a calendar date.
// Time-only formats (18-21, 45-47) are excluded.
func isDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormat reports whether a custom format code has a day or year
// token outside quoted literals and [..] sections.
func isDateFormat(code string) bool {
	var (
		inQuote   bool
		inBracket bool
	)
	for _, r := range strings.ToLower(code) {
		switch {
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case r == 'y' || r == 'd':
			return true
		}
	}
	return false
}
