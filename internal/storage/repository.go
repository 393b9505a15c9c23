// Package storage holds the backend-agnostic sink contract, a registry of
// backend factories keyed by storage kind, and the batched loader shared by
// all backends.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository is the sink contract every backend implements.
type Repository interface {
	// CopyFrom bulk-inserts rows (aligned to columns) into table and returns
	// the number of rows the backend reports as inserted.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	// Exec runs a single statement, typically DDL.
	Exec(ctx context.Context, sql string) error
	// CountRows returns SELECT COUNT(*) for table.
	CountRows(ctx context.Context, table string) (int64, error)
	Close()
}

// Config selects and configures a backend.
type Config struct {
	Kind string // "sqlite", "mssql", "postgres"
	DSN  string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind. Backends call it
// from init.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered kinds.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
