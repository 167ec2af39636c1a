// Package storage contains the storage-agnostic contracts of the player
// loader: the Repository interface every backend implements, a factory
// registry keyed by storage kind, per-dialect DDL hooks, a batched loader and
// Replace, which rewrites a destination table from a grouped schema.Table.
//
// Backends live in subpackages (sqlite, postgres, mssql) and register
// themselves in init; import storage/all to link them in.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnsupportedKind is returned by New for kinds no backend registered.
var ErrUnsupportedKind = errors.New("unsupported storage.kind")

// Repository is the minimal surface a backend provides.
type Repository interface {
	// CopyFrom bulk-inserts rows aligned to columns into table and returns
	// the number of rows written.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Exec runs a single statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// Head returns the column names and the first n rows of table.
	Head(ctx context.Context, table string, n int) ([]string, [][]any, error)

	// Dialect names the registered Dialect used to render DDL.
	Dialect() string

	Close()
}

// Config is the backend-neutral connection configuration.
type Config struct {
	Kind string
	DSN  string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under kind. Registering a kind twice
// replaces the earlier factory.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = f
}

// New opens a Repository with the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w=%s", ErrUnsupportedKind, cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds, sorted. The slice is a copy.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
