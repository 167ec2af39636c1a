// Package value defines the cell type carried through the player pipeline.
//
// A Value is a small tagged union: it is either Missing or holds exactly one of
// a string, an integer, a float or a calendar date. Parsers in the transform
// stage return Values instead of errors, which keeps the "never fails on bad
// data" contract explicit at the type level.
package value

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies which payload a Value carries.
type Kind uint8

const (
	Missing Kind = iota
	String
	Int
	Float
	Date
)

// String returns the lower-case name of the kind ("missing", "string", ...).
func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Date:
		return "date"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// DateLayout is the canonical textual form of a Date value.
const DateLayout = "2006-01-02"

// Value is an immutable cell. The zero Value is Missing.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	t    time.Time
}

// Null returns the Missing value.
func Null() Value { return Value{} }

// Str wraps a string.
func Str(s string) Value { return Value{kind: String, s: s} }

// Int64 wraps an integer.
func Int64(i int64) Value { return Value{kind: Int, i: i} }

// Float64 wraps a float. NaN is normalized to Missing.
func Float64(f float64) Value {
	if math.IsNaN(f) {
		return Null()
	}
	return Value{kind: Float, f: f}
}

// DateOf wraps the calendar date of t (time of day and zone are dropped).
func DateOf(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: Date, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Kind reports the payload kind.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is Missing.
func (v Value) IsMissing() bool { return v.kind == Missing }

// Text returns the string payload.
func (v Value) Text() (string, bool) { return v.s, v.kind == String }

// Integer returns the integer payload.
func (v Value) Integer() (int64, bool) { return v.i, v.kind == Int }

// Number returns the numeric payload of an Int or Float value as float64.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case Float:
		return v.f, true
	case Int:
		return float64(v.i), true
	}
	return 0, false
}

// Time returns the date payload (midnight UTC).
func (v Value) Time() (time.Time, bool) { return v.t, v.kind == Date }

// String renders the value the way it would be read back from text:
// Missing renders as "", floats use the shortest round-trip form, and dates
// use DateLayout.
func (v Value) String() string {
	switch v.kind {
	case String:
		return v.s
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Date:
		return v.t.Format(DateLayout)
	default:
		return ""
	}
}

// Any converts v into a database/sql friendly argument: nil, string, int64,
// float64 or time.Time.
func (v Value) Any() any {
	switch v.kind {
	case String:
		return v.s
	case Int:
		return v.i
	case Float:
		return v.f
	case Date:
		return v.t
	default:
		return nil
	}
}

// Equal reports kind and payload equality. Two Missing values are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case String:
		return v.s == o.s
	case Int:
		return v.i == o.i
	case Float:
		return v.f == o.f
	case Date:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// AppendKey appends an unambiguous binary encoding of v to b. Equal values
// produce equal encodings; it is used to hash rows.
func (v Value) AppendKey(b []byte) []byte {
	b = append(b, byte(v.kind))
	switch v.kind {
	case String:
		b = strconv.AppendInt(b, int64(len(v.s)), 10)
		b = append(b, ':')
		b = append(b, v.s...)
	case Int:
		b = strconv.AppendInt(b, v.i, 10)
	case Float:
		f := v.f
		if f == 0 {
			f = 0 // fold -0 into +0
		}
		b = strconv.AppendUint(b, math.Float64bits(f), 16)
	case Date:
		b = strconv.AppendInt(b, v.t.Unix(), 10)
	}
	return append(b, 0x1f)
}

// FromAny converts a driver value (as returned by database/sql or pgx) into a
// Value. Unknown types are rendered with fmt.Sprint.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return Str(t)
	case []byte:
		return Str(string(t))
	case int:
		return Int64(int64(t))
	case int32:
		return Int64(int64(t))
	case int64:
		return Int64(t)
	case float32:
		return Float64(float64(t))
	case float64:
		return Float64(t)
	case bool:
		if t {
			return Int64(1)
		}
		return Int64(0)
	case time.Time:
		return DateOf(t)
	default:
		return Str(fmt.Sprint(t))
	}
}
