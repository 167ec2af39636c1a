package ddl

import (
	"strings"
	"testing"

	gddl "playeretl/internal/ddl"
)

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		def     gddl.TableDef
		want    string
		wantErr string
	}{
		{
			name: "schema qualified",
			def: gddl.TableDef{FQN: "public.players_2023", Columns: []gddl.ColumnDef{
				{Name: "Name", SQLType: "TEXT", Nullable: true},
				{Name: "Transfer Value Clean", SQLType: "DOUBLE PRECISION", Nullable: true},
			}},
			want: "CREATE TABLE IF NOT EXISTS \"public\".\"players_2023\" (\n  \"Name\" TEXT,\n  \"Transfer Value Clean\" DOUBLE PRECISION\n);",
		},
		{
			name: "catalog with primary key",
			def: gddl.TableDef{FQN: "players_2023_columns", Columns: []gddl.ColumnDef{
				{Name: "position", SQLType: "BIGINT", PrimaryKey: true},
				{Name: "field", SQLType: "TEXT"},
			}},
			want: "CREATE TABLE IF NOT EXISTS \"players_2023_columns\" (\n  \"position\" BIGINT NOT NULL,\n  \"field\" TEXT NOT NULL,\n  PRIMARY KEY (\"position\")\n);",
		},
		{
			name:    "no columns",
			def:     gddl.TableDef{FQN: "t"},
			wantErr: "postgres ddl: at least one column is required",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := BuildCreateTableSQL(tt.def)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestDropTableSQL(t *testing.T) {
	t.Parallel()
	if got, want := DropTableSQL("public.players"), `DROP TABLE IF EXISTS "public"."players";`; got != want {
		t.Fatalf("DropTableSQL = %q, want %q", got, want)
	}
}
