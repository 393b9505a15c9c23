// Package loader writes the cleaned retail tables into a relational sink.
// The schema is dropped and recreated on every load, tables are inserted in
// foreign key order in batches, and a verification pass re-counts rows.
package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/metrics"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/storage"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

// DefaultBatchSize is used when Options.BatchSize is not positive.
const DefaultBatchSize = 1000

// Options tune a Loader.
type Options struct {
	BatchSize int
	// Job labels the metrics emitted by the loader.
	Job string
}

// TableLoad describes what happened to one dataset.
type TableLoad struct {
	Dataset  string
	Table    string
	Rows     int
	Inserted int64
	Batches  int64
	Skipped  bool
	Duration time.Duration
}

// Result is the outcome of Load. On error it holds the tables loaded so far.
type Result struct {
	Tables   []TableLoad
	Inserted int64
}

// Loader loads a table set into repo using dialect d.
type Loader struct {
	repo   storage.Repository
	d      ddl.Dialect
	schema ddl.Schema
	opts   Options
	log    logrus.FieldLogger
}

// New returns a Loader for the retail schema.
func New(repo storage.Repository, d ddl.Dialect, opts Options, log logrus.FieldLogger) *Loader {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Loader{repo: repo, d: d, schema: ddl.Retail(), opts: opts, log: log}
}

// Load recreates the schema and inserts every dataset of set present in it,
// in schema order. Absent datasets are skipped. The first error aborts the
// remaining loads.
func (l *Loader) Load(ctx context.Context, set *table.Set) (Result, error) {
	var res Result
	if set == nil || set.Len() == 0 {
		return res, errors.New("loader: no tables to load")
	}

	if err := storage.RecreateSchema(ctx, l.repo, l.d, l.schema); err != nil {
		return res, fmt.Errorf("loader: recreate schema: %w", err)
	}
	l.log.WithField("tables", len(l.schema)).Info("schema recreated")

	for _, e := range l.schema {
		t, ok := set.Get(e.Dataset)
		if !ok {
			l.log.WithField("table", e.Dataset).Warn("table not available, skipping load")
			res.Tables = append(res.Tables, TableLoad{Dataset: e.Dataset, Table: e.Table.FQN, Skipped: true})
			continue
		}

		tl, err := l.loadTable(ctx, e, t)
		res.Tables = append(res.Tables, tl)
		res.Inserted += tl.Inserted
		if err != nil {
			return res, fmt.Errorf("loader: load %s: %w", e.Table.FQN, err)
		}
	}
	return res, nil
}

func (l *Loader) loadTable(ctx context.Context, e ddl.Entity, t *table.Table) (TableLoad, error) {
	start := time.Now()
	tl := TableLoad{Dataset: e.Dataset, Table: e.Table.FQN, Rows: t.Len()}
	log := l.log.WithFields(logrus.Fields{"table": e.Dataset, "sink_table": e.Table.FQN})

	rows, err := Rows(t, e.Table)
	if err != nil {
		return tl, err
	}

	copyFn := func(ctx context.Context, columns []string, batch [][]any) (int64, error) {
		n, err := l.repo.CopyFrom(ctx, e.Table.FQN, columns, batch)
		if err == nil {
			tl.Batches++
		}
		return n, err
	}
	tl.Inserted, err = storage.LoadBatches(ctx, e.Table.ColumnNames(), rows, l.opts.BatchSize, copyFn, log)
	tl.Duration = time.Since(start)

	metrics.RecordRows(l.opts.Job, e.Dataset, metrics.KindInserted, tl.Inserted)
	metrics.RecordBatches(l.opts.Job, e.Dataset, tl.Batches)
	if err != nil {
		return tl, err
	}

	log.WithFields(logrus.Fields{
		"rows":     tl.Inserted,
		"batches":  tl.Batches,
		"duration": tl.Duration.Truncate(time.Millisecond),
	}).Info("table loaded")
	return tl, nil
}
