// Package plan turns a quality report into the declarative execution plan
// that gates every later stage, and persists it as YAML.
package plan

import (
	"time"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/profile"
)

// Metadata describes the run that produced the plan.
type Metadata struct {
	CheckTimestamp   string `yaml:"check_timestamp"`
	DatasetsAnalyzed int    `yaml:"datasets_analyzed"`
}

// Steps are the three coarse pipeline switches.
type Steps struct {
	ColumnStandardization bool `yaml:"column_standardization"`
	DataCleaning          bool `yaml:"data_cleaning"`
	DataTransformation    bool `yaml:"data_transformation"`
}

// Dataset is a table's profile plus its derived cleaning flag.
type Dataset struct {
	profile.Dataset `yaml:",inline"`
	NeedsCleaning   bool `yaml:"needs_cleaning"`
}

// Plan is the persisted decision set. It is built once per check run and
// treated as read-only afterwards.
type Plan struct {
	Metadata            Metadata                `yaml:"metadata"`
	Datasets            map[string]Dataset      `yaml:"datasets"`
	Transformations     profile.Transformations `yaml:"transformations"`
	PipelineSteps       Steps                   `yaml:"pipeline_steps"`
	OverallQualityScore float64                 `yaml:"overall_quality_score"`
}

// Build derives the plan from a report. It reads nothing but the report, so
// the same report always yields the same plan.
func Build(r *profile.Report) *Plan {
	p := &Plan{
		Metadata: Metadata{
			CheckTimestamp:   r.CheckedAt.UTC().Format(time.RFC3339),
			DatasetsAnalyzed: len(r.Datasets),
		},
		Datasets:        make(map[string]Dataset, len(r.Datasets)),
		Transformations: r.Transformations,
	}

	total, passed := 0, 0
	for name, ds := range r.Datasets {
		needs := ds.Checks.NeedsCleaning()
		p.Datasets[name] = Dataset{Dataset: ds, NeedsCleaning: needs}

		if ds.Checks.ColumnStandardization.Needed {
			p.PipelineSteps.ColumnStandardization = true
		}
		if needs {
			p.PipelineSteps.DataCleaning = true
		}
		t, ok := ds.Checks.Tally()
		total += t
		passed += ok
	}
	p.PipelineSteps.DataTransformation = r.Transformations.AnyNeeded()

	if total > 0 {
		p.OverallQualityScore = profile.Round2(float64(passed) / float64(total) * 100)
	}
	return p
}

// Default is the conservative plan used when no plan can be read: every
// step runs and every table is cleaned.
func Default() *Plan {
	return &Plan{
		Datasets: map[string]Dataset{},
		PipelineSteps: Steps{
			ColumnStandardization: true,
			DataCleaning:          true,
			DataTransformation:    true,
		},
	}
}

// NeedsCleaning reports whether the named table should be cleaned. A table
// the plan has no entry for is cleaned.
func (p *Plan) NeedsCleaning(table string) bool {
	if !p.PipelineSteps.DataCleaning {
		return false
	}
	ds, ok := p.Datasets[table]
	return !ok || ds.NeedsCleaning
}

// Transformation names.
const (
	EnrichProducts      = "enrich_products"
	CalculateItemTotal  = "calculate_item_total"
	CalculateOrderTotal = "calculate_order_total"
)

// TransformationNeeded reports whether the named derivation should run. A
// derivation that was not evaluated runs; it checks its own inputs.
func (p *Plan) TransformationNeeded(name string) bool {
	if !p.PipelineSteps.DataTransformation {
		return false
	}
	var tr *profile.Transformation
	switch name {
	case EnrichProducts:
		tr = p.Transformations.EnrichProducts
	case CalculateItemTotal:
		tr = p.Transformations.CalculateItemTotal
	case CalculateOrderTotal:
		tr = p.Transformations.CalculateOrderTotal
	default:
		return false
	}
	return tr == nil || tr.Needed
}
