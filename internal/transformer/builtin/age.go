package builtin

import (
	"time"

	"playeretl/internal/value"
)

// ReferenceDate is the fixed "today" ages are computed against.
var ReferenceDate = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

const secondsPerDay = 24 * 60 * 60

// AgeAt returns the age in whole 365-day years between a DOB cell and ref:
// floor(days(ref - dob) / 365). Both divisions floor, so birth dates after
// ref give negative ages. A non-date DOB yields Missing.
func AgeAt(dob value.Value, ref time.Time) value.Value {
	t, ok := dob.Time()
	if !ok {
		return value.Null()
	}
	days := civilDay(ref) - civilDay(t)
	return value.Int64(floorDiv(days, 365))
}

// civilDay counts days since the Unix epoch for the calendar date of t.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	u := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
	return floorDiv(u, secondsPerDay)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
