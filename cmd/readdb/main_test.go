package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"playeretl/internal/schema"
	"playeretl/internal/storage"
	"playeretl/internal/value"
)

func TestRunPrintsHead(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "football.db")
	t.Setenv("ETL_DB_DSN", dsn)

	ctx := context.Background()
	repo, err := storage.New(ctx, storage.Config{Kind: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	if err := repo.Exec(ctx, `CREATE TABLE "players_2023" ("UID" INTEGER, "Name" TEXT)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	rows := [][]any{{int64(1), "A"}, {int64(2), nil}, {int64(3), "C"}}
	if _, err := repo.CopyFrom(ctx, "players_2023", []string{"UID", "Name"}, rows); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	repo.Close()

	var stdout, stderr bytes.Buffer
	if code := run(ctx, []string{"-n", "2"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr.String())
	}
	// No catalog table: categories come from the built-in player layout.
	wantLines(t, stdout.String(), "General  General", "UID      Name", "1        A", "2        NaN")
}

func TestRunReadsCatalog(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "football.db")
	t.Setenv("ETL_DB_DSN", dsn)

	ctx := context.Background()
	repo, err := storage.New(ctx, storage.Config{Kind: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	tbl := &schema.Table{
		Columns: []schema.Column{{Category: "General", Field: "UID"}, {Category: "Custom", Field: "Height"}, {Category: "Physical", Field: "Extra"}},
		Rows:    [][]value.Value{{value.Int64(1), value.Float64(167.6), value.Null()}},
	}
	if _, err := storage.Replace(ctx, repo, "players_2023", tbl, storage.LoadOptions{BatchSize: 10}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	repo.Close()

	var stdout, stderr bytes.Buffer
	if code := run(ctx, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr.String())
	}
	wantLines(t, stdout.String(), "General  Custom  Physical", "UID      Height  Extra", "1        167.6   NaN")
}

func wantLines(t *testing.T, out string, want ...string) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("output =\n%s", out)
	}
	for i := range want {
		if strings.TrimRight(lines[i], " ") != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRunErrors(t *testing.T) {
	t.Setenv("ETL_DB_DSN", filepath.Join(t.TempDir(), "empty.db"))

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"missing table", []string{"-table", "nope"}, 1, "nope"},
		{"non-positive n", []string{"-n", "0"}, 2, "-n must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), tt.args, &stdout, &stderr); code != tt.code {
				t.Fatalf("exit code = %d, want %d", code, tt.code)
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Fatalf("stderr = %q, want substring %q", stderr.String(), tt.want)
			}
		})
	}
}
