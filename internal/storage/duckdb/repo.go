// Package duckdb implements a DuckDB-backed storage.Repository. Rows are
// written through the DuckDB Appender API on a dedicated connection, which
// is the engine's fastest bulk-insert path.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/marcboeker/go-duckdb"

	duckddl "salesetl/internal/storage/duckdb/ddl"
)

// Config holds DuckDB repository configuration.
type Config struct {
	// DSN is a database file path; empty or ":memory:" opens an in-memory
	// database.
	DSN   string
	Table string
}

// Repository is a DuckDB-backed implementation of storage.Repository. All
// statements and the appender share one connection.
type Repository struct {
	db   *sql.DB
	conn *sql.Conn
	cfg  Config
}

// NewRepository opens the database and pins a single connection.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	dsn := cfg.DSN
	if dsn == ":memory:" {
		dsn = ""
	}
	connector, err := duckdb.NewConnector(dsn, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("duckdb: connector: %w", err)
	}
	db := sql.OpenDB(connector)
	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("duckdb: connect: %w", err)
	}
	closeFn := func() {
		_ = conn.Close()
		_ = db.Close()
	}
	return &Repository{db: db, conn: conn, cfg: cfg}, closeFn, nil
}

// CopyFrom appends rows with a DuckDB Appender. columns must match the table's
// column order; the appender writes whole rows positionally.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	schema, tbl := splitFQN(r.cfg.Table)

	var appended int64
	err := r.conn.Raw(func(dc any) error {
		drv, ok := dc.(driver.Conn)
		if !ok {
			return fmt.Errorf("duckdb: unexpected driver connection %T", dc)
		}
		app, err := duckdb.NewAppenderFromConn(drv, schema, tbl)
		if err != nil {
			return fmt.Errorf("duckdb: appender: %w", err)
		}

		vals := make([]driver.Value, len(columns))
		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				_ = app.Close()
				return err
			}
			if len(row) != len(columns) {
				_ = app.Close()
				return fmt.Errorf("duckdb: row length %d != columns length %d", len(row), len(columns))
			}
			for i, v := range row {
				vals[i] = v
			}
			if err := app.AppendRow(vals...); err != nil {
				_ = app.Close()
				return fmt.Errorf("duckdb: append row %d: %w", appended, err)
			}
			appended++
		}
		// Close flushes the remaining buffered rows.
		if err := app.Close(); err != nil {
			return fmt.Errorf("duckdb: flush appender: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return appended, nil
}

// CountRows returns SELECT COUNT(*) for the configured table.
func (r *Repository) CountRows(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+duckddl.QuoteFQN(r.cfg.Table)).Scan(&n)
	return n, err
}

// Exec executes a SQL statement on the pinned connection.
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	_, err := r.conn.ExecContext(ctx, sqlText)
	return err
}

// splitFQN splits "schema.table" into its parts. An unqualified name uses
// the default schema ("").
func splitFQN(fqn string) (string, string) {
	if i := strings.LastIndexByte(fqn, '.'); i >= 0 {
		return fqn[:i], fqn[i+1:]
	}
	return "", fqn
}
