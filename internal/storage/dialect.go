package storage

import (
	"fmt"
	"sync"

	"playeretl/internal/ddl"
	"playeretl/internal/value"
)

// Dialect bundles the backend-specific pieces Replace needs to rewrite a
// table. Backends register one in init next to their Factory.
type Dialect struct {
	Name string

	// MapType turns a logical ddl type into a column type.
	MapType func(logical string) string

	// CreateTable renders a CREATE TABLE statement for t.
	CreateTable func(t ddl.TableDef) (string, error)

	// DropTable renders a statement that drops fqn if it exists.
	DropTable func(fqn string) string

	// Arg converts a cell into a driver argument. Nil means value.Value.Any.
	Arg func(v value.Value) any
}

func (d Dialect) arg(v value.Value) any {
	if d.Arg != nil {
		return d.Arg(v)
	}
	return v.Any()
}

var (
	dialectMu sync.RWMutex
	dialects  = map[string]Dialect{}
)

// RegisterDialect registers (or replaces) d under d.Name.
func RegisterDialect(d Dialect) {
	dialectMu.Lock()
	defer dialectMu.Unlock()
	dialects[d.Name] = d
}

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	dialectMu.RLock()
	d, ok := dialects[name]
	dialectMu.RUnlock()
	if !ok {
		return Dialect{}, fmt.Errorf("storage: no dialect registered for %q", name)
	}
	return d, nil
}
