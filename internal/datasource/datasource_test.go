package datasource

import "testing"

func TestNew(t *testing.T) {
	t.Parallel()
	for _, kind := range []string{"", "file"} {
		src, err := New(kind, "data/raw/x.csv")
		if err != nil {
			t.Fatalf("New(%q): %v", kind, err)
		}
		if src.Name() != "data/raw/x.csv" {
			t.Fatalf("Name() = %q", src.Name())
		}
	}
	if _, err := New("s3", "bucket/key"); err == nil {
		t.Fatalf("expected error for unsupported kind")
	}
}
