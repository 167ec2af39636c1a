package ddl

import (
	"fmt"
	"strings"

	gddl "playeretl/internal/ddl"
)

// BuildCreateTableSQL returns a SQL Server CREATE TABLE statement guarded by
// OBJECT_ID so it is a no-op when the table exists:
//
//	IF OBJECT_ID(N'[dbo].[players]', N'U') IS NULL
//	BEGIN
//	  CREATE TABLE [dbo].[players] (
//	    [col1] TYPE [NOT NULL]
//	  );
//	END;
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	cols, err := gddl.RenderColumns(t, QuoteIdent)
	if err != nil {
		return "", fmt.Errorf("mssql %w", err)
	}
	fqn := QuoteFQN(t.FQN)
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n  CREATE TABLE %s (\n    %s\n  );\nEND;",
		escapeLiteral(fqn),
		fqn,
		strings.Join(cols, ",\n    "),
	), nil
}

// DropTableSQL returns a statement dropping fqn if it exists.
func DropTableSQL(fqn string) string {
	q := QuoteFQN(fqn)
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NOT NULL DROP TABLE %s;", escapeLiteral(q), q)
}

// QuoteIdent wraps an identifier in [brackets], escaping ].
func QuoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

// QuoteFQN quotes a possibly schema-qualified name like "dbo.players".
func QuoteFQN(fqn string) string { return gddl.QuoteFQN(fqn, QuoteIdent) }

func escapeLiteral(s string) string { return strings.ReplaceAll(s, "'", "''") }
