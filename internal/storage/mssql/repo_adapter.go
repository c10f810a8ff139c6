package mssql

import (
	"context"

	"salesetl/internal/storage"
	msddl "salesetl/internal/storage/mssql/ddl"
)

var newRepository = NewRepository

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("mssql", storage.Dialect{
		MapType: msddl.MapType,
		Create:  msddl.BuildCreateTableSQL,
		Drop:    msddl.BuildDropTableSQL,
	})
}

type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() { w.closeFn() }
