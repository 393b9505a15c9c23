// Package file implements a local directory of CSV tables as a datasource.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Name patterns for raw and cleaned tables.
const (
	RawPattern     = "%s.csv"
	CleanedPattern = "cleaned_%s.csv"
)

// Dir is a filesystem directory holding one file per table. Pattern maps a
// table name to a file name with fmt.Sprintf.
type Dir struct {
	root    string
	pattern string
}

// NewDir returns a Dir rooted at root. An empty pattern means RawPattern.
func NewDir(root, pattern string) *Dir {
	if pattern == "" {
		pattern = RawPattern
	}
	return &Dir{root: root, pattern: pattern}
}

// Path returns the file path used for the named table.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.root, fmt.Sprintf(d.pattern, name))
}

// Open opens the named table for reading.
//
// If ctx is already done, Open returns the context error without touching
// the filesystem. Filesystem errors are wrapped with the path and keep
// errors.Is(err, os.ErrNotExist) working.
func (d *Dir) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := d.Path(name)
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	return f, nil
}

// Create creates (or truncates) the named table file, making the directory
// first when needed.
func (d *Dir) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", d.root, err)
	}
	p := d.Path(name)
	f, err := os.Create(p)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", p, err)
	}
	return f, nil
}
