package postgres

// This file registers the "postgres" backend and its DDL dialect with the
// storage package at init time.

import (
	"context"

	"playeretl/internal/storage"
	pgddl "playeretl/internal/storage/postgres/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDialect(storage.Dialect{
		Name:        "postgres",
		MapType:     pgddl.MapType,
		CreateTable: pgddl.BuildCreateTableSQL,
		DropTable:   pgddl.DropTableSQL,
	})
}
