// Package datasource opens the raw player export for reading.
package datasource

import (
	"context"
	"fmt"
	"io"

	"playeretl/internal/datasource/file"
)

// Source yields the raw bytes of one export.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name identifies the source in logs.
	Name() string
}

// New returns the source for a config source kind. Only "file" exists.
func New(kind, path string) (Source, error) {
	switch kind {
	case "", "file":
		return file.NewLocal(path), nil
	default:
		return nil, fmt.Errorf("datasource: unsupported kind %q", kind)
	}
}
