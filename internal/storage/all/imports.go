// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each backend, which register their
// factories and DDL dialects with the storage package. The kinds made
// available are "sqlite", "mssql" and "postgres".
//
// Typical usage (in cmd/retailetl or another wiring layer):
//
//	import _ "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/storage/all"
//
//	repo, err := storage.New(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: cfg.Storage.DSN})
//	if err != nil {
//	    // handle error
//	}
//	defer repo.Close()
package all

import (
	_ "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/storage/mssql"
	_ "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/storage/postgres"
	_ "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/storage/sqlite"
)
