// Package postgres wires the Postgres backend into the storage factory by
// registering a constructor and a DDL dialect at init time. Callers obtain a
// Repository via storage.New without importing this package directly.
package postgres

import (
	"context"

	"salesetl/internal/storage"
	pgddl "salesetl/internal/storage/postgres/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo implements storage.Repository by delegating to the concrete
// *Repository while providing a Close method that calls the close function
// returned by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("postgres", storage.Dialect{
		MapType: pgddl.MapType,
		Create:  pgddl.BuildCreateTableSQL,
		Drop:    pgddl.BuildDropTableSQL,
	})
}
