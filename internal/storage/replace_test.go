package storage

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"playeretl/internal/ddl"
	"playeretl/internal/schema"
	"playeretl/internal/value"
)

func init() {
	RegisterDialect(Dialect{
		Name:    "fake",
		MapType: strings.ToUpper,
		CreateTable: func(t ddl.TableDef) (string, error) {
			return ddl.BuildCreateTableSQL(t, func(s string) string { return "<" + s + ">" })
		},
		DropTable: func(fqn string) string { return "DROP " + fqn },
		Arg: func(v value.Value) any {
			if t, ok := v.Time(); ok {
				return t.Format(value.DateLayout)
			}
			return v.Any()
		},
	})
}

func playersTable() *schema.Table {
	dob := value.DateOf(time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC))
	return &schema.Table{
		Columns: []schema.Column{
			{Category: "General", Field: "Name"},
			{Category: "General", Field: "DOB"},
			{Category: "General", Field: "Age"},
			{Category: "Physical", Field: "Weight"},
		},
		Rows: [][]value.Value{
			{value.Str("A"), dob, value.Int64(21), value.Float64(70)},
			{value.Str("B"), value.Null(), value.Null(), value.Float64(80.5)},
			{value.Str("C"), dob, value.Int64(21), value.Null()},
		},
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo("fake")
	n, err := Replace(context.Background(), repo, "players_2023", playersTable(), LoadOptions{BatchSize: 2})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if n != 3 {
		t.Fatalf("loaded %d rows, want 3", n)
	}

	wantExecs := []string{
		"DROP players_2023",
		"DROP players_2023_columns",
		"CREATE TABLE <players_2023> (\n  <Name> TEXT,\n  <DOB> DATE,\n  <Age> INT,\n  <Weight> FLOAT\n);",
		"CREATE TABLE <players_2023_columns> (\n  <position> INT NOT NULL,\n  <category> TEXT NOT NULL,\n  <field> TEXT NOT NULL,\n  PRIMARY KEY (<position>)\n);",
	}
	if !reflect.DeepEqual(repo.execs, wantExecs) {
		t.Fatalf("execs =\n%q\nwant\n%q", repo.execs, wantExecs)
	}

	wantRows := [][]any{
		{"A", "2000-06-15", int64(21), float64(70)},
		{"B", nil, nil, 80.5},
		{"C", "2000-06-15", int64(21), nil},
	}
	if got := repo.copies["players_2023"]; !reflect.DeepEqual(got, wantRows) {
		t.Fatalf("rows = %#v, want %#v", got, wantRows)
	}

	wantCatalog := [][]any{
		{int64(0), "General", "Name"},
		{int64(1), "General", "DOB"},
		{int64(2), "General", "Age"},
		{int64(3), "Physical", "Weight"},
	}
	if got := repo.copies["players_2023_columns"]; !reflect.DeepEqual(got, wantCatalog) {
		t.Fatalf("catalog = %#v, want %#v", got, wantCatalog)
	}
}

func TestReplace_EmptyTableStillCreates(t *testing.T) {
	t.Parallel()

	tbl := playersTable()
	tbl.Rows = nil
	repo := newFakeRepo("fake")
	n, err := Replace(context.Background(), repo, "p", tbl, LoadOptions{BatchSize: 10})
	if err != nil || n != 0 {
		t.Fatalf("Replace = %d, %v; want 0, nil", n, err)
	}
	if len(repo.execs) != 4 {
		t.Fatalf("execs = %d, want drop, drop, create, create", len(repo.execs))
	}
	if _, ok := repo.copies["p"]; ok {
		t.Fatal("no rows should be copied into an empty table")
	}
}

func TestReplace_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, err := Replace(ctx, newFakeRepo("fake"), "p", &schema.Table{}, LoadOptions{BatchSize: 1}); !errors.Is(err, ErrNoColumns) {
		t.Fatalf("no columns: err = %v, want ErrNoColumns", err)
	}
	if _, err := Replace(ctx, newFakeRepo("unknown-dialect"), "p", playersTable(), LoadOptions{BatchSize: 1}); err == nil {
		t.Fatal("unknown dialect: expected error")
	}

	repo := newFakeRepo("fake")
	repo.failOn = "p"
	if _, err := Replace(ctx, repo, "p", playersTable(), LoadOptions{BatchSize: 1}); err == nil || !strings.Contains(err.Error(), "load p") {
		t.Fatalf("copy failure: err = %v, want load error", err)
	}
	if _, ok := repo.copies["p"+CatalogSuffix]; ok {
		t.Fatal("catalog must not be written after a failed load")
	}
}
