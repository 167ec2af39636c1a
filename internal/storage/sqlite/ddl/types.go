// Package ddl contains SQLite-specific helpers for generating DDL.
package ddl

import "strings"

// MapType maps a logical type (see internal/ddl) into a SQLite column type.
//
// SQLite is dynamically typed, so the mapping picks the canonical affinity:
//   - int   -> INTEGER
//   - float -> REAL
//   - date  -> TEXT (ISO-8601 YYYY-MM-DD)
//   - other -> TEXT
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "INTEGER"
	case "float", "double", "real":
		return "REAL"
	default:
		return "TEXT"
	}
}
