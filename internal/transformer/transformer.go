// Package transformer composes table-level rules into ordered chains. A rule
// receives a table, may mutate it in place or return a filtered copy, and
// records what it did in a shared Stats.
package transformer

import (
	"sort"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

// Rule is one cleaning step over a whole table.
type Rule interface {
	Apply(t *table.Table, st *Stats) *table.Table
}

// Chain is an ordered list of rules.
type Chain []Rule

func (c Chain) Apply(t *table.Table, st *Stats) *table.Table {
	out := t
	for _, r := range c {
		out = r.Apply(out, st)
	}
	return out
}

// Stats counts rule outcomes by reason. Dropped rows left the table, fixed
// cells were rewritten in place, flagged rows were kept but reported.
type Stats struct {
	Dropped map[string]int
	Fixed   map[string]int
	Flagged map[string]int
}

// NewStats returns empty counters.
func NewStats() *Stats {
	return &Stats{
		Dropped: map[string]int{},
		Fixed:   map[string]int{},
		Flagged: map[string]int{},
	}
}

func (s *Stats) Drop(reason string, n int) { add(&s.Dropped, reason, n) }
func (s *Stats) Fix(reason string, n int)  { add(&s.Fixed, reason, n) }
func (s *Stats) Flag(reason string, n int) { add(&s.Flagged, reason, n) }

// TotalDropped sums every drop reason.
func (s *Stats) TotalDropped() int { return sum(s.Dropped) }

// TotalFixed sums every fix reason.
func (s *Stats) TotalFixed() int { return sum(s.Fixed) }

// Reasons returns the keys of m sorted, for stable reporting.
func Reasons(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func add(m *map[string]int, reason string, n int) {
	if n <= 0 {
		return
	}
	if *m == nil {
		*m = map[string]int{}
	}
	(*m)[reason] += n
}

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
