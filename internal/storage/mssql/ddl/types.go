// Package ddl provides SQL Server-specific DDL helpers.
package ddl

import "strings"

// MapType maps a logical type (see internal/ddl) into a SQL Server column
// type. Text columns use NVARCHAR(MAX) so non-ASCII player names survive.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "BIGINT"
	case "float", "double":
		return "FLOAT"
	case "numeric", "decimal":
		return "DECIMAL(38, 10)"
	case "date":
		return "DATE"
	default:
		return "NVARCHAR(MAX)"
	}
}
