package sqlite

// This file wires the SQLite backend into the storage factory and registers
// its DDL dialect, so callers obtain it through storage.New without
// importing this package directly.

import (
	"context"

	"playeretl/internal/storage"
	sqliteddl "playeretl/internal/storage/sqlite/ddl"
	"playeretl/internal/value"
)

// newRepository points to NewRepository; tests replace it to avoid opening
// a database.
var newRepository = NewRepository

// wrappedRepo adds Close to *Repository using the cleanup function returned
// by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

var _ storage.Repository = (*wrappedRepo)(nil)

// dateArg stores dates as ISO text, matching the TEXT affinity MapType
// picks for them.
func dateArg(v value.Value) any {
	if t, ok := v.Time(); ok {
		return t.Format(value.DateLayout)
	}
	return v.Any()
}

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDialect(storage.Dialect{
		Name:        "sqlite",
		MapType:     sqliteddl.MapType,
		CreateTable: sqliteddl.BuildCreateTableSQL,
		DropTable:   sqliteddl.DropTableSQL,
		Arg:         dateArg,
	})
}
