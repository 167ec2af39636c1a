// Package ddl defines a small, backend-agnostic model for SQL DDL: table and
// column definitions, inference of column types from cell kinds, and helpers
// that render the column list of a CREATE TABLE statement.
//
// Backend packages (internal/storage/*/ddl) supply identifier quoting and the
// surrounding statement for their dialect.
package ddl

import (
	"fmt"
	"strings"
)

// Quoter quotes a single identifier segment.
type Quoter func(string) string

// QuoteFQN quotes each dot-separated segment of fqn with q. Empty segments
// are skipped.
func QuoteFQN(fqn string, q Quoter) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, q(p))
	}
	return strings.Join(out, ".")
}

// RenderColumns validates t and renders its column definitions, one per
// element, followed by a PRIMARY KEY clause when any column is part of the
// key:
//
//	<quoted name> <SQLType> [NOT NULL]
//	PRIMARY KEY (<pk-cols>)
func RenderColumns(t TableDef, q Quoter) ([]string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return nil, fmt.Errorf("ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns)+1)
	var pks []string
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("ddl: column with empty name in table %s", fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return nil, fmt.Errorf("ddl: column %s missing SQLType", name)
		}

		def := q(name) + " " + typ
		if !c.Nullable {
			def += " NOT NULL"
		}
		cols = append(cols, def)

		if c.PrimaryKey {
			pks = append(pks, q(name))
		}
	}
	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	return cols, nil
}

// BuildCreateTableSQL renders a plain CREATE TABLE statement:
//
//	CREATE TABLE <fqn> (
//	  <col1-def>,
//	  <col2-def>
//	);
func BuildCreateTableSQL(t TableDef, q Quoter) (string, error) {
	cols, err := RenderColumns(t, q)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", QuoteFQN(t.FQN, q), strings.Join(cols, ",\n  ")), nil
}
