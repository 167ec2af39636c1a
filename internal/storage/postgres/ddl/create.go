package ddl

import (
	"fmt"
	"strings"

	gddl "playeretl/internal/ddl"
)

// BuildCreateTableSQL renders CREATE TABLE IF NOT EXISTS with double-quoted,
// schema-qualified identifiers ("public"."players_2023").
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	cols, err := gddl.RenderColumns(t, QuoteIdent)
	if err != nil {
		return "", fmt.Errorf("postgres %w", err)
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		QuoteFQN(t.FQN),
		strings.Join(cols, ",\n  "),
	), nil
}

// DropTableSQL returns a statement dropping fqn if it exists.
func DropTableSQL(fqn string) string {
	return "DROP TABLE IF EXISTS " + QuoteFQN(fqn) + ";"
}

// QuoteIdent quotes a single identifier segment for Postgres.
func QuoteIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// QuoteFQN quotes a possibly schema-qualified name like "public.players".
func QuoteFQN(fqn string) string { return gddl.QuoteFQN(fqn, QuoteIdent) }
