// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each backend, which register their
// factories and DDL dialects with the storage package. The kinds made
// available are "sqlite", "postgres", "mssql", "mysql" and "duckdb".
//
// A binary that needs only a subset can import the backend packages it wants
// directly instead.
package all

import (
	_ "salesetl/internal/storage/duckdb"
	_ "salesetl/internal/storage/mssql"
	_ "salesetl/internal/storage/mysql"
	_ "salesetl/internal/storage/postgres"
	_ "salesetl/internal/storage/sqlite"
)
