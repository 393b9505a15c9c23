package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
)

var (
	ddlMu    sync.RWMutex
	dialects = map[string]ddl.Dialect{}
)

// RegisterDDL registers (or replaces) the DDL dialect for a storage kind. It
// is typically called from backend packages' init functions.
func RegisterDDL(kind string, d ddl.Dialect) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	dialects[kind] = d
}

// DialectFor returns the dialect registered for kind.
func DialectFor(kind string) (ddl.Dialect, error) {
	ddlMu.RLock()
	d, ok := dialects[kind]
	ddlMu.RUnlock()
	if !ok {
		return ddl.Dialect{}, fmt.Errorf("no DDL dialect registered for storage.kind=%q", kind)
	}
	return d, nil
}

// RecreateSchema drops every table of schema in reverse order and creates
// them again in schema order, so existing data is replaced and foreign keys
// are always satisfied.
func RecreateSchema(ctx context.Context, repo Repository, d ddl.Dialect, schema ddl.Schema) error {
	for _, e := range schema.Reversed() {
		stmt, err := ddl.BuildDropTableSQL(e.Table.FQN, d)
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("drop %s: %w", e.Table.FQN, err)
		}
	}
	for _, e := range schema {
		stmt, err := ddl.BuildCreateTableSQL(e.Table, d)
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create %s: %w", e.Table.FQN, err)
		}
	}
	return nil
}
