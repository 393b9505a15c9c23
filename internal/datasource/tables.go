package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	pcsv "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/parser/csv"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

// Skip records a table that could not be read and why.
type Skip struct {
	Table  string
	Reason string
	Err    error
}

// ReadTables reads each named table from src. Missing or undecodable tables
// are logged and returned as skips; only context cancellation is an error.
func ReadTables(ctx context.Context, src Source, names []string, log logrus.FieldLogger) (*table.Set, []Skip, error) {
	set := table.NewSet()
	var skips []Skip
	p := pcsv.NewParser(pcsv.Options{})

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		rc, err := src.Open(ctx, name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, nil, ctxErr
			}
			reason := "unreadable"
			if errors.Is(err, os.ErrNotExist) {
				reason = "missing"
			}
			log.WithFields(logrus.Fields{"table": name, "reason": reason}).WithError(err).Warn("table skipped")
			skips = append(skips, Skip{Table: name, Reason: reason, Err: err})
			continue
		}
		res, err := p.Parse(rc, name)
		_ = rc.Close()
		if err != nil {
			log.WithFields(logrus.Fields{"table": name, "reason": "decode"}).WithError(err).Warn("table skipped")
			skips = append(skips, Skip{Table: name, Reason: "decode", Err: err})
			continue
		}
		fields := logrus.Fields{
			"table":    name,
			"rows":     res.Table.Len(),
			"columns":  len(res.Table.Columns),
			"encoding": res.Encoding,
		}
		if res.Skipped > 0 {
			fields["skipped_rows"] = res.Skipped
		}
		log.WithFields(fields).Info("table loaded")
		set.Put(res.Table)
	}
	return set, skips, nil
}

// WriteTables writes every table in set to dst.
func WriteTables(ctx context.Context, dst Sink, set *table.Set, log logrus.FieldLogger) error {
	for _, t := range set.Tables() {
		w, err := dst.Create(ctx, t.Name)
		if err != nil {
			return err
		}
		if err := pcsv.Write(w, t); err != nil {
			_ = w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("close %s: %w", t.Name, err)
		}
		log.WithFields(logrus.Fields{"table": t.Name, "rows": t.Len()}).Info("table saved")
	}
	return nil
}
