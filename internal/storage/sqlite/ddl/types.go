// Package ddl contains SQLite-specific helpers for generating DDL.
//
// It maps logical column kinds onto SQLite type names. SQLite is dynamically
// typed, so the names mainly select a column affinity.
package ddl

import "salesetl/internal/table"

// MapType maps a logical column kind to a SQLite column type.
//
//   - integer   -> INTEGER
//   - real      -> REAL
//   - timestamp -> TIMESTAMP (NUMERIC affinity; values are stored as
//     "2006-01-02 15:04:05" text)
//   - text      -> TEXT
func MapType(k table.Kind) string {
	switch k {
	case table.KindInteger:
		return "INTEGER"
	case table.KindReal:
		return "REAL"
	case table.KindTimestamp:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}
