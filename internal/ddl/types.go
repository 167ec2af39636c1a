package ddl

import "playeretl/internal/value"

// Logical column types. Backends map them to concrete SQL types.
const (
	TypeInt   = "int"
	TypeFloat = "float"
	TypeDate  = "date"
	TypeText  = "text"
)

// LogicalType returns the logical column type for a cell kind. Missing and
// String both map to TypeText.
func LogicalType(k value.Kind) string {
	switch k {
	case value.Int:
		return TypeInt
	case value.Float:
		return TypeFloat
	case value.Date:
		return TypeDate
	default:
		return TypeText
	}
}

// ColumnDef describes a single column in a table definition. Name is
// unquoted; quoting happens at render time.
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
}

// TableDef holds the table name (possibly dotted, e.g. "dbo.players") and
// an ordered list of columns.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}
