package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"playeretl/internal/ddl"
	"playeretl/internal/schema"
)

// CatalogSuffix names the companion table that records the category of
// every loaded column.
const CatalogSuffix = "_columns"

// Catalog column names.
const (
	CatalogPosition = "position"
	CatalogCategory = "category"
	CatalogField    = "field"
)

// ErrNoColumns is returned by Replace for a table without columns; no SQL
// table can hold it.
var ErrNoColumns = errors.New("storage: table has no columns")

// Replace rewrites table from t: it drops table and its catalog if they
// exist, creates table with column types inferred from the cell kinds of t,
// loads the rows in batches and writes the catalog table
// "<table>_columns(position, category, field)". It returns the number of
// rows loaded into table.
func Replace(ctx context.Context, repo Repository, table string, t *schema.Table, opts LoadOptions) (int64, error) {
	if len(t.Columns) == 0 {
		return 0, ErrNoColumns
	}
	d, err := DialectFor(repo.Dialect())
	if err != nil {
		return 0, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	catalog := table + CatalogSuffix

	for _, fqn := range []string{table, catalog} {
		if err := repo.Exec(ctx, d.DropTable(fqn)); err != nil {
			return 0, fmt.Errorf("drop %s: %w", fqn, err)
		}
	}

	fields := t.Fields()
	def := ddl.Infer(table, fields, t.Rows, d.MapType)
	if err := create(ctx, repo, d, def); err != nil {
		return 0, err
	}

	loaded, err := load(ctx, repo, d, table, fields, t, opts)
	if err != nil {
		return loaded, fmt.Errorf("load %s: %w", table, err)
	}
	log.Info("storage: table replaced",
		zap.String("table", table),
		zap.Int("columns", len(fields)),
		zap.Int64("rows", loaded),
	)

	if err := writeCatalog(ctx, repo, d, catalog, t.Columns); err != nil {
		return loaded, err
	}
	return loaded, nil
}

func create(ctx context.Context, repo Repository, d Dialect, def ddl.TableDef) error {
	stmt, err := d.CreateTable(def)
	if err != nil {
		return fmt.Errorf("render create %s: %w", def.FQN, err)
	}
	if err := repo.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("create %s: %w", def.FQN, err)
	}
	return nil
}

func load(ctx context.Context, repo Repository, d Dialect, table string, fields []string, t *schema.Table, opts LoadOptions) (int64, error) {
	if t.Len() == 0 {
		return 0, nil
	}
	g, ctx := errgroup.WithContext(ctx)
	in := make(chan []any, max(opts.BatchSize, 0))

	// Producer: converts cells to driver args.
	g.Go(func() error {
		defer close(in)
		for _, r := range t.Rows {
			args := make([]any, len(r))
			for i, v := range r {
				args[i] = d.arg(v)
			}
			select {
			case in <- args:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	var loaded int64
	g.Go(func() error {
		var err error
		loaded, err = LoadBatches(ctx, fields, in, opts, func(ctx context.Context, cols []string, rows [][]any) (int64, error) {
			return repo.CopyFrom(ctx, table, cols, rows)
		})
		return err
	})

	err := g.Wait()
	return loaded, err
}

func writeCatalog(ctx context.Context, repo Repository, d Dialect, catalog string, cols []schema.Column) error {
	def := ddl.TableDef{FQN: catalog, Columns: []ddl.ColumnDef{
		{Name: CatalogPosition, SQLType: d.MapType(ddl.TypeInt), PrimaryKey: true},
		{Name: CatalogCategory, SQLType: d.MapType(ddl.TypeText)},
		{Name: CatalogField, SQLType: d.MapType(ddl.TypeText)},
	}}
	if err := create(ctx, repo, d, def); err != nil {
		return err
	}

	rows := make([][]any, len(cols))
	for i, c := range cols {
		rows[i] = []any{int64(i), c.Category, c.Field}
	}
	names := []string{CatalogPosition, CatalogCategory, CatalogField}
	if _, err := repo.CopyFrom(ctx, catalog, names, rows); err != nil {
		return fmt.Errorf("write catalog %s: %w", catalog, err)
	}
	return nil
}
