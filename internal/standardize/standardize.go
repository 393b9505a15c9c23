// Package standardize rewrites column names to lowercase with underscores.
package standardize

import (
	"github.com/sirupsen/logrus"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

// Change records the renames applied to one table.
type Change struct {
	Table   string
	Renamed map[string]string
}

// Table renames t's columns in place and returns the renames applied. A
// column whose standard name is already taken by another column keeps its
// name and is reported in collisions.
func Table(t *table.Table) (renamed map[string]string, collisions []string) {
	taken := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if table.StandardName(c) == c {
			taken[c] = true
		}
	}
	for i, c := range t.Columns {
		std := table.StandardName(c)
		if std == c {
			continue
		}
		if taken[std] {
			collisions = append(collisions, c)
			continue
		}
		if renamed == nil {
			renamed = map[string]string{}
		}
		renamed[c] = std
		t.Columns[i] = std
		taken[std] = true
	}
	return renamed, collisions
}

// Set standardizes every table in set and returns one Change per table that
// had at least one column renamed. Row data is untouched; running it twice
// changes nothing the second time.
func Set(set *table.Set, log logrus.FieldLogger) []Change {
	var changes []Change
	for _, t := range set.Tables() {
		renamed, collisions := Table(t)
		for _, c := range collisions {
			log.WithFields(logrus.Fields{
				"table":  t.Name,
				"column": c,
				"target": table.StandardName(c),
			}).Warn("column not renamed: standard name already in use")
		}
		if len(renamed) == 0 {
			log.WithField("table", t.Name).Debug("columns already standard")
			continue
		}
		log.WithFields(logrus.Fields{"table": t.Name, "renamed": len(renamed)}).Info("columns standardized")
		changes = append(changes, Change{Table: t.Name, Renamed: renamed})
	}
	return changes
}
