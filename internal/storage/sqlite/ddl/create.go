package ddl

import (
	gddl "salesetl/internal/ddl"
)

// QuoteIdent quotes a single identifier with SQLite double quotes.
func QuoteIdent(id string) string { return gddl.DoubleQuote(id) }

// QuoteFQN quotes a possibly dotted table name ("main.sales_data").
func QuoteFQN(fqn string) string { return gddl.QuoteFQN(QuoteIdent, fqn) }

// BuildCreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, QuoteIdent, true)
}

// BuildDropTableSQL returns DROP TABLE IF EXISTS for fqn.
func BuildDropTableSQL(fqn string) (string, error) {
	return gddl.BuildDropTableSQL(fqn, QuoteIdent)
}
