// Package ddl contains Postgres-specific DDL helpers.
package ddl

import "strings"

// MapType maps a logical type (see internal/ddl) into a Postgres column type.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "BIGINT"
	case "float", "double":
		return "DOUBLE PRECISION"
	case "date":
		return "DATE"
	default:
		return "TEXT"
	}
}
