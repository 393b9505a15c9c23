package plan

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteSummary prints a human-readable digest of p: coarse switches, the
// issues per table, and the transformations to run.
func WriteSummary(w io.Writer, p *Plan) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall quality score: %.2f%%\n", p.OverallQualityScore)
	fmt.Fprintf(&b, "Datasets analyzed: %d\n\n", p.Metadata.DatasetsAnalyzed)

	b.WriteString("Pipeline steps:\n")
	for _, s := range []struct {
		name   string
		needed bool
	}{
		{"column_standardization", p.PipelineSteps.ColumnStandardization},
		{"data_cleaning", p.PipelineSteps.DataCleaning},
		{"data_transformation", p.PipelineSteps.DataTransformation},
	} {
		fmt.Fprintf(&b, "  %-24s %s\n", s.name, status(s.needed))
	}

	names := make([]string, 0, len(p.Datasets))
	for n := range p.Datasets {
		names = append(names, n)
	}
	sort.Strings(names)

	b.WriteString("\nDatasets:\n")
	for _, n := range names {
		c := p.Datasets[n].Checks
		var issues []string
		if c.ColumnStandardization.Needed {
			issues = append(issues, "column names")
		}
		if c.Duplicates.Needed {
			issues = append(issues, fmt.Sprintf("duplicates (%d)", c.Duplicates.Count))
		}
		if c.MissingValues.Needed {
			issues = append(issues, fmt.Sprintf("missing values (%d cols)", len(c.MissingValues.Columns)))
		}
		if c.DataTypes.Needed {
			issues = append(issues, fmt.Sprintf("types (%d cols)", len(c.DataTypes.Issues)))
		}
		if c.Quality != nil && c.Quality.Needed {
			issues = append(issues, "quality")
		}
		if len(issues) == 0 {
			fmt.Fprintf(&b, "  %-12s clean\n", n)
			continue
		}
		fmt.Fprintf(&b, "  %-12s %s\n", n, strings.Join(issues, ", "))
	}

	b.WriteString("\nTransformations:\n")
	for _, name := range []string{EnrichProducts, CalculateItemTotal, CalculateOrderTotal} {
		fmt.Fprintf(&b, "  %-24s %s\n", name, status(p.TransformationNeeded(name)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func status(needed bool) string {
	if needed {
		return "NEEDED"
	}
	return "SKIP"
}
