// Package pipeline composes the stages in process: Check profiles the raw
// extracts and writes the plan, Transform standardizes, cleans and derives
// columns as the plan says and writes the cleaned files, and Load pushes the
// cleaned files into the configured sink. The plan file and the cleaned
// directory are the checkpoints between the stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/cleaner"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/config"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/datasource"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/datasource/file"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/datasource/httpds"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/enrich"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/loader"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/metrics"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/plan"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/profile"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/standardize"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/storage"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

// ErrNoTables is returned when a stage could read none of the tables.
var ErrNoTables = errors.New("no tables could be read")

// Step names.
const (
	StepCheck     = "check"
	StepTransform = "transform"
	StepLoad      = "load"
)

// Pipeline runs the stages against one configuration.
type Pipeline struct {
	cfg   config.Config
	runID string
	log   logrus.FieldLogger
	now   func() time.Time
}

// New returns a Pipeline with a fresh run id attached to every log line.
func New(cfg config.Config, log logrus.FieldLogger) *Pipeline {
	id := uuid.NewString()
	return &Pipeline{
		cfg:   cfg,
		runID: id,
		log:   log.WithFields(logrus.Fields{"run_id": id, "job": cfg.Job}),
		now:   time.Now,
	}
}

// RunID identifies this run in logs.
func (p *Pipeline) RunID() string { return p.runID }

// CheckResult is the outcome of the check stage.
type CheckResult struct {
	Plan    *plan.Plan
	Skipped []datasource.Skip
}

// Check profiles the raw tables, builds the plan and saves it to the plan
// file.
func (p *Pipeline) Check(ctx context.Context) (CheckResult, error) {
	log := p.log.WithField("stage", StepCheck)

	set, skips, err := p.read(ctx, p.rawSource(log), log)
	if err != nil {
		return CheckResult{Skipped: skips}, err
	}
	for _, t := range set.Tables() {
		metrics.RecordRows(p.cfg.Job, t.Name, metrics.KindRead, int64(t.Len()))
	}

	pl := plan.Build(profile.Run(set, p.now()))
	if err := plan.Save(p.cfg.Paths.PlanFile, pl); err != nil {
		return CheckResult{Plan: pl, Skipped: skips}, err
	}
	metrics.RecordQuality(p.cfg.Job, pl.OverallQualityScore)

	log.WithFields(logrus.Fields{
		"plan_file":     p.cfg.Paths.PlanFile,
		"tables":        set.Len(),
		"quality_score": pl.OverallQualityScore,
	}).Info("plan written")
	return CheckResult{Plan: pl, Skipped: skips}, nil
}

// TransformResult is the outcome of the transform stage.
type TransformResult struct {
	Plan            *plan.Plan
	PlanFromFile    bool
	Standardized    []standardize.Change
	Cleaned         []cleaner.Result
	Transformations []enrich.Outcome
	Written         []string
	Skipped         []datasource.Skip
}

// Transform reads the plan (or the conservative default), applies the
// enabled steps to the raw tables and writes cleaned_<table>.csv files.
func (p *Pipeline) Transform(ctx context.Context) (TransformResult, error) {
	log := p.log.WithField("stage", StepTransform)

	var res TransformResult
	res.Plan, res.PlanFromFile = plan.LoadOrDefault(p.cfg.Paths.PlanFile, log)

	set, skips, err := p.read(ctx, p.rawSource(log), log)
	res.Skipped = skips
	if err != nil {
		return res, err
	}

	if res.Plan.PipelineSteps.ColumnStandardization {
		res.Standardized = standardize.Set(set, log)
	} else {
		log.Info("column standardization skipped: names already standard")
	}

	if res.Plan.PipelineSteps.DataCleaning {
		c := cleaner.New(cleaner.Options{
			RepairYears:   p.cfg.Cleaning.RepairYears,
			ReferenceYear: p.cfg.Cleaning.ReferenceYear,
		}, log)
		set, res.Cleaned = c.CleanSet(set, res.Plan)
		for _, r := range res.Cleaned {
			metrics.RecordRows(p.cfg.Job, r.Table, metrics.KindDropped, int64(r.TotalDropped()))
			metrics.RecordRows(p.cfg.Job, r.Table, metrics.KindFixed, int64(r.TotalFixed()))
		}
	} else {
		log.Info("data cleaning skipped: no table needs it")
	}

	res.Transformations = enrich.Apply(set, res.Plan, log)

	if err := datasource.WriteTables(ctx, file.NewDir(p.cfg.Paths.CleanedDir, file.CleanedPattern), set, log); err != nil {
		return res, fmt.Errorf("write cleaned tables: %w", err)
	}
	for _, t := range set.Tables() {
		res.Written = append(res.Written, t.Name)
		metrics.RecordRows(p.cfg.Job, t.Name, metrics.KindWritten, int64(t.Len()))
	}
	log.WithFields(logrus.Fields{"dir": p.cfg.Paths.CleanedDir, "tables": len(res.Written)}).Info("cleaned tables written")
	return res, nil
}

// LoadResult is the outcome of the load stage.
type LoadResult struct {
	Load         loader.Result
	Verification loader.Verification
	Skipped      []datasource.Skip
}

// Load reads the cleaned tables, recreates the sink schema, loads them in
// foreign key order and verifies the row counts.
func (p *Pipeline) Load(ctx context.Context) (LoadResult, error) {
	log := p.log.WithField("stage", StepLoad)

	var res LoadResult
	set, skips, err := p.read(ctx, file.NewDir(p.cfg.Paths.CleanedDir, file.CleanedPattern), log)
	res.Skipped = skips
	if err != nil {
		return res, err
	}

	repo, err := storage.New(ctx, storage.Config{Kind: p.cfg.Storage.Kind, DSN: p.cfg.Storage.DSN})
	if err != nil {
		return res, fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	d, err := storage.DialectFor(p.cfg.Storage.Kind)
	if err != nil {
		return res, err
	}

	l := loader.New(repo, d, loader.Options{BatchSize: p.cfg.Storage.BatchSize, Job: p.cfg.Job}, log)
	res.Load, err = l.Load(ctx, set)
	if err != nil {
		return res, err
	}

	res.Verification, err = l.Verify(ctx, res.Load)
	if err != nil {
		log.WithError(err).Warn("verification incomplete")
		return res, nil
	}
	if !res.Verification.OK() {
		log.WithField("mismatches", len(res.Verification.Mismatches())).Warn("row counts differ after load")
	}
	return res, nil
}

// rawSource serves the raw extracts from an http(s) base URL or a directory.
func (p *Pipeline) rawSource(log logrus.FieldLogger) datasource.Source {
	if httpds.IsURL(p.cfg.Paths.RawDir) {
		c := httpds.NewClient(httpds.Config{MaxRetries: 3, Log: log})
		return httpds.NewSource(c, p.cfg.Paths.RawDir, file.RawPattern)
	}
	return file.NewDir(p.cfg.Paths.RawDir, file.RawPattern)
}

func (p *Pipeline) read(ctx context.Context, src datasource.Source, log logrus.FieldLogger) (*table.Set, []datasource.Skip, error) {
	set, skips, err := datasource.ReadTables(ctx, src, table.Names, log)
	if err != nil {
		return nil, skips, err
	}
	if set.Len() == 0 {
		return nil, skips, ErrNoTables
	}
	return set, skips, nil
}
