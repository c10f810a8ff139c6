// Package ddl contains DuckDB-specific helpers for generating DDL.
package ddl

import (
	gddl "salesetl/internal/ddl"
	"salesetl/internal/table"
)

// MapType maps a logical column kind to a DuckDB column type. The types must
// match the Go values the appender receives: string, int64, float64 and
// time.Time.
func MapType(k table.Kind) string {
	switch k {
	case table.KindInteger:
		return "BIGINT"
	case table.KindReal:
		return "DOUBLE"
	case table.KindTimestamp:
		return "TIMESTAMP"
	default:
		return "VARCHAR"
	}
}

// QuoteIdent quotes a single identifier with double quotes.
func QuoteIdent(id string) string { return gddl.DoubleQuote(id) }

// QuoteFQN quotes a possibly schema-qualified table name.
func QuoteFQN(fqn string) string { return gddl.QuoteFQN(QuoteIdent, fqn) }

// BuildCreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, QuoteIdent, true)
}

// BuildDropTableSQL returns DROP TABLE IF EXISTS for fqn.
func BuildDropTableSQL(fqn string) (string, error) {
	return gddl.BuildDropTableSQL(fqn, QuoteIdent)
}
