// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

import (
	gddl "salesetl/internal/ddl"
	"salesetl/internal/table"
)

// MapType maps a logical column kind to a Postgres SQL type.
//
//	integer   -> BIGINT
//	real      -> DOUBLE PRECISION
//	timestamp -> TIMESTAMP
//	text      -> TEXT
func MapType(k table.Kind) string {
	switch k {
	case table.KindInteger:
		return "BIGINT"
	case table.KindReal:
		return "DOUBLE PRECISION"
	case table.KindTimestamp:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// QuoteIdent quotes a single identifier with double quotes.
func QuoteIdent(id string) string { return gddl.DoubleQuote(id) }

// BuildCreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for t.
// Dotted names are quoted per segment ("public"."sales_data").
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, QuoteIdent, true)
}

// BuildDropTableSQL returns DROP TABLE IF EXISTS for fqn.
func BuildDropTableSQL(fqn string) (string, error) {
	return gddl.BuildDropTableSQL(fqn, QuoteIdent)
}
