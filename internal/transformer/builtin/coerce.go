package builtin

import (
	"time"

	"playeretl/internal/frame"
	"playeretl/internal/value"
)

// Columns the typed-field steps read and write.
const (
	ColumnDOB                = "DOB"
	ColumnAge                = "Age"
	ColumnTransferValue      = "Transfer Value"
	ColumnTransferValueClean = "Transfer Value Clean"
	ColumnWeight             = "Weight"
	ColumnHeight             = "Height"
)

// TextColumns must reach the transform as text. ParseHeight reads
// feet-and-inches notation only, and a numeric Height is taken to be the
// centimetres of an earlier run, so extractors must not type raw heights.
var TextColumns = []string{ColumnHeight}

// Coerce runs Parse over every cell of Source and writes the result to
// Target, creating Target when needed. An empty Target overwrites Source in
// place. The step is skipped when Source is absent.
type Coerce struct {
	Step   string
	Source string
	Target string
	Parse  func(value.Value) value.Value
}

func (c Coerce) Name() string { return c.Step }

func (c Coerce) Apply(f *frame.Frame) *frame.Frame {
	if c.Target == "" || c.Target == c.Source {
		f.Map(c.Source, c.Parse)
		return f
	}
	f.Derive(c.Target, c.Source, c.Parse)
	return f
}

// TransferValue derives the numeric "Transfer Value Clean" column.
func TransferValue() Coerce {
	return Coerce{Step: "transfer_value", Source: ColumnTransferValue, Target: ColumnTransferValueClean, Parse: ParseCurrency}
}

// Weight overwrites "Weight" with kilograms.
func Weight() Coerce {
	return Coerce{Step: "weight", Source: ColumnWeight, Parse: ParseWeight}
}

// Height overwrites "Height" with centimetres.
func Height() Coerce {
	return Coerce{Step: "height", Source: ColumnHeight, Parse: ParseHeight}
}

// DOB parses the birth date column unless it already holds dates.
type DOB struct{}

func (DOB) Name() string { return "dob" }

func (DOB) Apply(f *frame.Frame) *frame.Frame {
	if f.ColumnKind(ColumnDOB) == value.Date {
		return f
	}
	f.Map(ColumnDOB, ParseDOB)
	return f
}

// Age recomputes the "Age" column from "DOB" whenever DOB exists. Rows whose
// DOB is not a date get a Missing age. A zero Ref means ReferenceDate.
type Age struct {
	Ref time.Time
}

func (Age) Name() string { return "age" }

func (a Age) Apply(f *frame.Frame) *frame.Frame {
	ref := a.Ref
	if ref.IsZero() {
		ref = ReferenceDate
	}
	f.Derive(ColumnAge, ColumnDOB, func(v value.Value) value.Value { return AgeAt(v, ref) })
	return f
}
