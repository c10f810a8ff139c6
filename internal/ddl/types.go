package ddl

import (
	"fmt"
	"strings"

	"salesetl/internal/table"
)

// ColumnDef describes a single column in a table definition.
//
// Fields:
//   - Name: column name (unquoted; quoting happens at render time)
//   - SQLType: dialect SQL type (e.g., TEXT, BIGINT, TIMESTAMP)
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key
//   - Default: raw default expression
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string
}

// TableDef holds the table name (FQN, dotted form such as "main.sales_data")
// and an ordered list of columns.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// TypeMapper maps a logical column kind to a dialect SQL type.
type TypeMapper func(table.Kind) string

// FromTable derives a TableDef from the columns and kinds of t. Every column
// is nullable because the missing marker may appear anywhere.
func FromTable(fqn string, t *table.Table, mapType TypeMapper) (TableDef, error) {
	if strings.TrimSpace(fqn) == "" {
		return TableDef{}, fmt.Errorf("ddl: missing table name")
	}
	if mapType == nil {
		return TableDef{}, fmt.Errorf("ddl: nil type mapper")
	}
	defs := make([]ColumnDef, len(t.Columns))
	for i, name := range t.Columns {
		defs[i] = ColumnDef{
			Name:     name,
			SQLType:  mapType(t.Kinds[i]),
			Nullable: true,
		}
	}
	return TableDef{FQN: fqn, Columns: defs}, nil
}
