package ddl

import "playeretl/internal/value"

// Infer builds a TableDef for rows aligned to names. A column whose
// non-missing cells all share one kind gets that kind's logical type; mixed
// and all-missing columns become TypeText. Every inferred column is nullable.
// mapType turns a logical type into the backend's SQL type.
func Infer(fqn string, names []string, rows [][]value.Value, mapType func(string) string) TableDef {
	cols := make([]ColumnDef, len(names))
	for i, name := range names {
		cols[i] = ColumnDef{
			Name:     name,
			SQLType:  mapType(LogicalType(columnKind(rows, i))),
			Nullable: true,
		}
	}
	return TableDef{FQN: fqn, Columns: cols}
}

func columnKind(rows [][]value.Value, i int) value.Kind {
	kind := value.Missing
	for _, r := range rows {
		if i >= len(r) || r[i].IsMissing() {
			continue
		}
		switch k := r[i].Kind(); {
		case kind == value.Missing:
			kind = k
		case kind != k:
			return value.String
		}
	}
	return kind
}
