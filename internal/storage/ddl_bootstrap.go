package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"salesetl/internal/ddl"
	"salesetl/internal/table"
)

// Dialect is what a backend contributes to table preparation: how logical
// kinds map to SQL types and how CREATE/DROP statements are rendered.
//
// Create must render a statement that is a no-op when the table already
// exists; Drop must render one that is a no-op when it does not.
type Dialect struct {
	MapType ddl.TypeMapper
	Create  func(ddl.TableDef) (string, error)
	Drop    func(fqn string) (string, error)
}

var (
	ddlMu    sync.RWMutex
	dialects = map[string]Dialect{}
)

// RegisterDDL registers (or replaces) the Dialect for the given storage kind.
// It is typically called from backend packages' init() functions.
func RegisterDDL(kind string, d Dialect) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	dialects[kind] = d
}

// PrepareTable makes cfg.Table ready to receive the rows of t.
//
//   - Replace: DROP TABLE IF EXISTS, then CREATE TABLE from t's columns.
//   - Append: CREATE TABLE only if it does not exist yet.
//
// Column types come from the registered Dialect's MapType.
func PrepareTable(ctx context.Context, cfg Config, repo Repository, t *table.Table, mode WriteMode) error {
	ddlMu.RLock()
	d, ok := dialects[cfg.Kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL dialect registered for storage.kind=%q", cfg.Kind)
	}

	def, err := ddl.FromTable(cfg.Table, t, d.MapType)
	if err != nil {
		return fmt.Errorf("infer table definition: %w", err)
	}

	if mode == Replace {
		drop, err := d.Drop(cfg.Table)
		if err != nil {
			return err
		}
		slog.Debug("ddl", "sql", drop)
		if err := repo.Exec(ctx, drop); err != nil {
			return fmt.Errorf("drop table %s: %w", cfg.Table, err)
		}
	}

	create, err := d.Create(def)
	if err != nil {
		return err
	}
	slog.Debug("ddl", "sql", create)
	if err := repo.Exec(ctx, create); err != nil {
		return fmt.Errorf("create table %s: %w", cfg.Table, err)
	}
	return nil
}
