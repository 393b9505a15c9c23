package enrich

import (
	"github.com/sirupsen/logrus"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/plan"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

// Outcome reports one derivation. Applied is false when the plan skipped it,
// when its output column already existed, or when Err is set.
type Outcome struct {
	Name    string
	Applied bool
	Skipped bool
	Err     error
}

// Apply runs the derivations the plan asks for, in dependency order, and
// replaces the affected tables in set. A derivation whose inputs are missing
// is reported in its Outcome and does not stop the others.
func Apply(set *table.Set, p *plan.Plan, log logrus.FieldLogger) []Outcome {
	if !p.PipelineSteps.DataTransformation {
		log.Info("transformation skipped: nothing to derive")
		return nil
	}
	get := func(name string) *table.Table {
		t, _ := set.Get(name)
		return t
	}

	steps := []struct {
		name string
		run  func() (bool, error)
	}{
		{plan.EnrichProducts, func() (bool, error) {
			out, err := EnrichProducts(get(table.Products), get(table.Brands), get(table.Categories))
			if err != nil {
				return false, err
			}
			set.Put(out)
			return true, nil
		}},
		{plan.CalculateItemTotal, func() (bool, error) {
			out, added, err := LineTotals(get(table.OrderItems))
			if err != nil || !added {
				return false, err
			}
			set.Put(out)
			return true, nil
		}},
		{plan.CalculateOrderTotal, func() (bool, error) {
			out, err := OrderTotals(get(table.Orders), get(table.OrderItems))
			if err != nil {
				return false, err
			}
			set.Put(out)
			return true, nil
		}},
	}

	outcomes := make([]Outcome, 0, len(steps))
	for _, s := range steps {
		l := log.WithField("transformation", s.name)
		if !p.TransformationNeeded(s.name) {
			l.Info("transformation skipped: already applied")
			outcomes = append(outcomes, Outcome{Name: s.name, Skipped: true})
			continue
		}
		applied, err := s.run()
		if err != nil {
			l.WithError(err).Warn("transformation not applied")
		} else {
			l.WithField("applied", applied).Info("transformation done")
		}
		outcomes = append(outcomes, Outcome{Name: s.name, Applied: applied, Err: err})
	}
	return outcomes
}
