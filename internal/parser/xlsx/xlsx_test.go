package xlsx

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"playeretl/internal/value"
)

// workbook builds an in-memory workbook with rows written from A1.
func workbook(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "" {
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			t.Fatalf("SetSheetName: %v", err)
		}
	} else {
		sheet = f.GetSheetName(0)
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return &buf
}

func TestRead_FirstSheet(t *testing.T) {
	t.Parallel()
	buf := workbook(t, "", [][]any{
		{"UID", "Nat", "Height", "Nat"},
		{"1", "ENG", "5'6", "15"},
		{"2", "", "6'", "-"},
	})

	f, err := Read(buf, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want := []string{"UID", "Nat", "Height", "Nat.1"}; !reflect.DeepEqual(f.Columns, want) {
		t.Fatalf("columns = %v, want %v", f.Columns, want)
	}
	if f.Len() != 2 || !f.Rows[1][1].IsMissing() || !f.Rows[0][2].Equal(value.Str("5'6")) {
		t.Fatalf("rows = %v", f.Rows)
	}
}

func TestRead_NamedSheetWithInference(t *testing.T) {
	t.Parallel()
	buf := workbook(t, "Players", [][]any{
		{"UID", "Name"},
		{"7", "A"},
	})
	f, err := Read(buf, Options{Sheet: "Players", InferTypes: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !f.Rows[0][0].Equal(value.Int64(7)) {
		t.Fatalf("UID = %v (%v), want int 7", f.Rows[0][0], f.Rows[0][0].Kind())
	}
}

func TestRead_DateCells(t *testing.T) {
	t.Parallel()
	dob := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)
	buf := workbook(t, "", [][]any{
		{"UID", "DOB", "Height", "Weight"},
		{1001, dob, 180, 70.5},
		{1002, "15/06/2000 (21)", 175, "N/A"},
	})

	f, err := Read(buf, Options{InferTypes: true, NAMarkers: true, KeepText: []string{"Height"}})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := f.Rows[0][1]; !got.Equal(value.DateOf(dob)) {
		t.Fatalf("DOB[0] = %v (%v), want date 2000-06-15", got, got.Kind())
	}
	if got := f.Rows[1][1]; !got.Equal(value.Str("15/06/2000 (21)")) {
		t.Fatalf("DOB[1] = %v, want the text untouched", got)
	}
	if got := f.ColumnKind("UID"); got != value.Int {
		t.Fatalf("UID kind = %v, want int", got)
	}
	if got := f.Rows[0][2]; !got.Equal(value.Str("180")) {
		t.Fatalf("Height[0] = %v (%v), want text 180", got, got.Kind())
	}
	if got := f.Rows[0][3]; !got.Equal(value.Float64(70.5)) {
		t.Fatalf("Weight[0] = %v (%v), want 70.5", got, got.Kind())
	}
	if !f.Rows[1][3].IsMissing() {
		t.Fatalf("Weight[1] = %v, want Missing", f.Rows[1][3])
	}
}

func TestIsDateFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]bool{
		"dd/mm/yyyy":         true,
		"[$-409]d-mmm-yy":    true,
		"General":            false,
		"0.00":               false,
		`"day "0`:            false,
		"[Red]#,##0;[Blue]0": false,
		"hh:mm":              false,
	}
	for code, want := range tests {
		if got := isDateFormat(code); got != want {
			t.Errorf("isDateFormat(%q) = %v, want %v", code, got, want)
		}
	}
	for id, want := range map[int]bool{0: false, 2: false, 14: true, 20: false, 22: true, 31: true, 46: false} {
		if got := isDateNumFmt(id); got != want {
			t.Errorf("isDateNumFmt(%d) = %v, want %v", id, got, want)
		}
	}
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()
	if _, err := Read(workbook(t, "", nil), Options{}); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("empty sheet err = %v, want ErrNoHeader", err)
	}
	if _, err := Read(workbook(t, "", [][]any{{"a"}}), Options{Sheet: "nope"}); err == nil {
		t.Fatalf("expected error for unknown sheet")
	}
	if _, err := Read(bytes.NewBufferString("not a zip"), Options{}); err == nil {
		t.Fatalf("expected error for non-xlsx input")
	}
}
