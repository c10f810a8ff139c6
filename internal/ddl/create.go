// Package ddl defines a small, backend-agnostic model for SQL DDL and helpers
// to render CREATE TABLE and DROP TABLE statements from that model.
//
// Identifier quoting is supplied by the caller as a Quoter, so the same
// renderer serves every dialect that accepts the standard statement shape.
// Backend packages (internal/storage/<kind>/ddl) wrap these helpers and add
// dialect-specific guards where the standard form is not supported.
// ColumnDef.Default is emitted as raw SQL.
package ddl

import (
	"fmt"
	"strings"
)

// Quoter quotes a single identifier segment.
type Quoter func(ident string) string

// QuoteFQN splits a dotted name and quotes each non-empty segment with q.
func QuoteFQN(q Quoter, fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, q(p))
	}
	return strings.Join(out, ".")
}

// DoubleQuote is the ANSI identifier quoting used by SQLite, Postgres and
// DuckDB: "name", with embedded quotes doubled.
func DoubleQuote(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// BuildCreateTableSQL renders a CREATE TABLE statement for t.
//
// A column is rendered as
//
//	<quoted name> <SQLType> [NOT NULL] [DEFAULT <Default>]
//
// and primary-key columns are collected into a trailing PRIMARY KEY clause.
// When ifNotExists is set the statement reads CREATE TABLE IF NOT EXISTS.
func BuildCreateTableSQL(t TableDef, q Quoter, ifNotExists bool) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns)+1)
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("ddl: column %s missing SQLType", name)
		}

		var sb strings.Builder
		sb.WriteString(q(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)

		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}

		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, q(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	verb := "CREATE TABLE"
	if ifNotExists {
		verb = "CREATE TABLE IF NOT EXISTS"
	}
	return fmt.Sprintf("%s %s (\n  %s\n);", verb, QuoteFQN(q, fqn), strings.Join(cols, ",\n  ")), nil
}

// BuildDropTableSQL renders DROP TABLE IF EXISTS for fqn.
func BuildDropTableSQL(fqn string, q Quoter) (string, error) {
	quoted := QuoteFQN(q, fqn)
	if quoted == "" {
		return "", fmt.Errorf("ddl: table FQN must not be empty")
	}
	return "DROP TABLE IF EXISTS " + quoted + ";", nil
}
