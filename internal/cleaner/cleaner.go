// Package cleaner runs one independent cleaning routine per retail table.
// A routine is a transformer.Chain of builtin rules; its outcome is a typed
// Result rather than a message, and partial row loss never halts it.
package cleaner

import (
	"github.com/sirupsen/logrus"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/plan"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
)

// Options tune the routines.
type Options struct {
	// RepairYears enables the forward shift of order years below 1900.
	RepairYears bool
	// ReferenceYear anchors the shift. Zero means builtin.DefaultReferenceYear.
	ReferenceYear int
}

// Result is the outcome of cleaning one table. The embedded Stats count
// dropped rows and fixed or flagged cells by reason; they are empty when the
// table was skipped.
type Result struct {
	Table      string
	Output     *table.Table
	RowsBefore int
	RowsAfter  int
	Skipped    bool
	transformer.Stats
}

// Cleaner holds the options shared by every routine.
type Cleaner struct {
	opts Options
	log  logrus.FieldLogger
}

func New(opts Options, log logrus.FieldLogger) *Cleaner {
	return &Cleaner{opts: opts, log: log}
}

// Clean runs the routine for t when needed is true. The input is never
// modified; a skipped table is returned as is. Tables without a routine are
// passed through and reported as skipped.
func (c *Cleaner) Clean(t *table.Table, needed bool) Result {
	res := Result{Table: t.Name, Output: t, RowsBefore: t.Len(), RowsAfter: t.Len(), Skipped: true}
	log := c.log.WithField("table", t.Name)

	chain, ok := c.routine(t.Name)
	if !ok {
		log.Debug("no cleaning routine")
		return res
	}
	if !needed {
		log.Info("cleaning skipped: table is clean")
		return res
	}

	st := transformer.NewStats()
	out := chain.Apply(t.Clone(), st)

	res.Output = out
	res.RowsAfter = out.Len()
	res.Stats = *st
	res.Skipped = false

	fields := logrus.Fields{
		"rows_before": res.RowsBefore,
		"rows_after":  res.RowsAfter,
		"fixed":       st.TotalFixed(),
	}
	for _, k := range transformer.Reasons(st.Flagged) {
		fields["flagged_"+k] = st.Flagged[k]
	}
	for _, k := range transformer.Reasons(st.Dropped) {
		fields["dropped_"+k] = st.Dropped[k]
	}
	log.WithFields(fields).Info("table cleaned")
	return res
}

// CleanSet cleans every table in set as gated by p and returns the cleaned
// set with one Result per table, in set order.
func (c *Cleaner) CleanSet(set *table.Set, p *plan.Plan) (*table.Set, []Result) {
	out := table.NewSet()
	results := make([]Result, 0, set.Len())
	for _, t := range set.Tables() {
		r := c.Clean(t, p.NeedsCleaning(t.Name))
		out.Put(r.Output)
		results = append(results, r)
	}
	return out, results
}
