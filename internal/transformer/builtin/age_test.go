package builtin

import (
	"testing"
	"time"

	"playeretl/internal/value"
)

func TestAgeAt(t *testing.T) {
	t.Parallel()
	day := func(y int, m time.Month, d int) value.Value {
		return value.DateOf(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	}
	tests := []struct {
		name string
		dob  value.Value
		want value.Value
	}{
		{"parsed_dob", ParseDOB(value.Str("15/06/2000 comment")), value.Int64(21)},
		{"exactly_365_days", day(2021, time.January, 1), value.Int64(1)},
		{"one_day_short", day(2021, time.January, 2), value.Int64(0)},
		{"leap_year_span", day(2020, time.January, 1), value.Int64(2)},
		{"same_day", day(2022, time.January, 1), value.Int64(0)},
		{"one_day_after_ref", day(2022, time.January, 2), value.Int64(-1)},
		{"366_days_after_ref", day(2023, time.January, 2), value.Int64(-2)},
		{"missing", value.Null(), value.Null()},
		{"unparsed_text", value.Str("15/06/2000"), value.Null()},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := AgeAt(tt.dob, ReferenceDate); !got.Equal(tt.want) {
				t.Fatalf("AgeAt(%v) = %v (%v), want %v", tt.dob, got, got.Kind(), tt.want)
			}
		})
	}
}

func TestAgeAtIgnoresTimeOfDay(t *testing.T) {
	ref := time.Date(2022, time.January, 1, 23, 59, 0, 0, time.FixedZone("x", 5*3600))
	dob := value.DateOf(time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC))
	if got := AgeAt(dob, ref); !got.Equal(value.Int64(1)) {
		t.Fatalf("AgeAt = %v, want 1", got)
	}
}
