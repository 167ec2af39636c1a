package mssql

// This adapter wires the MSSQL backend and its DDL dialect into the
// storage-agnostic factory.

import (
	"context"

	"playeretl/internal/storage"
	msddl "playeretl/internal/storage/mssql/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDialect(storage.Dialect{
		Name:        "mssql",
		MapType:     msddl.MapType,
		CreateTable: msddl.BuildCreateTableSQL,
		DropTable:   msddl.DropTableSQL,
	})
}

// wrappedRepo adapts *mssql.Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() { w.closeFn() }
