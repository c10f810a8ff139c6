// Package ddl contains MySQL-specific helpers for generating DDL.
package ddl

import (
	"strings"

	gddl "salesetl/internal/ddl"
	"salesetl/internal/table"
)

// MapType maps a logical column kind to a MySQL column type.
//
//	integer   -> BIGINT
//	real      -> DOUBLE
//	timestamp -> DATETIME
//	text      -> TEXT
func MapType(k table.Kind) string {
	switch k {
	case table.KindInteger:
		return "BIGINT"
	case table.KindReal:
		return "DOUBLE"
	case table.KindTimestamp:
		return "DATETIME"
	default:
		return "TEXT"
	}
}

// QuoteIdent quotes an identifier with backticks, doubling embedded ones.
func QuoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}

// QuoteFQN quotes a possibly database-qualified name ("sales.sales_data").
func QuoteFQN(fqn string) string { return gddl.QuoteFQN(QuoteIdent, fqn) }

// BuildCreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, QuoteIdent, true)
}

// BuildDropTableSQL returns DROP TABLE IF EXISTS for fqn.
func BuildDropTableSQL(fqn string) (string, error) {
	return gddl.BuildDropTableSQL(fqn, QuoteIdent)
}
