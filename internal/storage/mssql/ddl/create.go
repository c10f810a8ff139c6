// Package ddl provides MSSQL-specific helpers for generating DDL from the
// generic ddl.TableDef model.
//
// The builders here:
//   - Use SQL Server-style identifier quoting: [schema].[table], [col].
//   - Wrap CREATE and DROP in IF OBJECT_ID(...) guards, the T-SQL spelling of
//     IF NOT EXISTS / IF EXISTS that works on every supported version.
package ddl

import (
	"fmt"
	"strings"

	gddl "salesetl/internal/ddl"
	"salesetl/internal/table"
)

// MapType maps a logical column kind to a SQL Server column type.
//
//	integer   -> BIGINT
//	real      -> FLOAT
//	timestamp -> DATETIME2
//	text      -> NVARCHAR(MAX)
func MapType(k table.Kind) string {
	switch k {
	case table.KindInteger:
		return "BIGINT"
	case table.KindReal:
		return "FLOAT"
	case table.KindTimestamp:
		return "DATETIME2"
	default:
		return "NVARCHAR(MAX)"
	}
}

// QuoteIdent quotes a single identifier segment for SQL Server using
// bracket syntax, escaping any closing brackets.
//
//	name      -> [name]
//	weird]id  -> [weird]]id]
func QuoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

// QuoteFQN quotes a possibly schema-qualified table name, e.g.
// "dbo.sales_data" -> [dbo].[sales_data].
func QuoteFQN(fqn string) string { return gddl.QuoteFQN(QuoteIdent, fqn) }

// BuildCreateTableSQL returns a T-SQL script that creates the table if it
// does not already exist:
//
//	IF OBJECT_ID(N'[dbo].[t]', N'U') IS NULL
//	BEGIN
//	  CREATE TABLE [dbo].[t] (...);
//	END;
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	create, err := gddl.BuildCreateTableSQL(t, QuoteIdent, false)
	if err != nil {
		return "", fmt.Errorf("mssql %w", err)
	}
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n  %s\nEND;",
		objectName(t.FQN),
		strings.ReplaceAll(create, "\n", "\n  "),
	), nil
}

// BuildDropTableSQL returns a guarded DROP TABLE for fqn.
func BuildDropTableSQL(fqn string) (string, error) {
	q := QuoteFQN(fqn)
	if q == "" {
		return "", fmt.Errorf("mssql ddl: table FQN must not be empty")
	}
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NOT NULL DROP TABLE %s;", objectName(fqn), q), nil
}

// objectName renders the quoted name as an N'' string literal body.
func objectName(fqn string) string {
	return strings.ReplaceAll(QuoteFQN(fqn), "'", "''")
}
