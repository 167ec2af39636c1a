package ddl

import "testing"

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"int":    "BIGINT",
		" INT ":  "BIGINT",
		"float":  "DOUBLE PRECISION",
		"date":   "DATE",
		"text":   "TEXT",
		"":       "TEXT",
		"string": "TEXT",
	}
	for in, want := range tests {
		if got := MapType(in); got != want {
			t.Errorf("MapType(%q) = %q, want %q", in, got, want)
		}
	}
}
