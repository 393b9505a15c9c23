package loader

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Count compares the rows sent to a sink table with the rows it holds.
type Count struct {
	Table    string
	Expected int64
	Actual   int64
}

// Match reports whether the counts agree.
func (c Count) Match() bool { return c.Expected == c.Actual }

// Verification is the advisory report produced after a load.
type Verification struct {
	Counts []Count
}

// OK reports whether every table matched.
func (v Verification) OK() bool {
	for _, c := range v.Counts {
		if !c.Match() {
			return false
		}
	}
	return true
}

// Mismatches returns the tables whose counts differ.
func (v Verification) Mismatches() []Count {
	var out []Count
	for _, c := range v.Counts {
		if !c.Match() {
			out = append(out, c)
		}
	}
	return out
}

// Verify re-counts every loaded table of res. Discrepancies are logged and
// reported, never rolled back. An error means a count query failed.
func (l *Loader) Verify(ctx context.Context, res Result) (Verification, error) {
	var v Verification
	for _, tl := range res.Tables {
		if tl.Skipped {
			continue
		}
		n, err := l.repo.CountRows(ctx, tl.Table)
		if err != nil {
			return v, fmt.Errorf("loader: verify %s: %w", tl.Table, err)
		}
		c := Count{Table: tl.Table, Expected: int64(tl.Rows), Actual: n}
		v.Counts = append(v.Counts, c)

		log := l.log.WithFields(logrus.Fields{"table": tl.Table, "expected": c.Expected, "actual": c.Actual})
		if c.Match() {
			log.Info("row count verified")
		} else {
			log.Warn("row count mismatch")
		}
	}
	return v, nil
}
