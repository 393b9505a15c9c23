// Package datasource reads and writes named retail tables. A Source opens a
// table's raw bytes by name; ReadTables parses every requested table and
// tolerates the ones that are missing or undecodable.
package datasource

import (
	"context"
	"io"
)

// Source opens a named table for reading.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Sink creates a named table for writing.
type Sink interface {
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}
