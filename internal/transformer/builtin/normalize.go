package builtin

import (
	"strings"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
)

// ReasonTrimmed is the Stats key for text cells rewritten by Normalize.
const ReasonTrimmed = "trimmed"

// nbspMojibake is a UTF-8 no-break space that was decoded as latin-1.
const nbspMojibake = "\u00c2\u00a0"

// Normalize replaces no-break spaces with plain spaces and trims text cells.
// A cell that trims to nothing becomes null; one that trims to a number is
// re-parsed so later numeric rules see it.
type Normalize struct{}

func (Normalize) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	n := 0
	for _, r := range t.Rows {
		for i, v := range r {
			if v.Kind() != table.KindString {
				continue
			}
			s := v.Text()
			c := strings.ReplaceAll(s, nbspMojibake, " ")
			c = strings.ReplaceAll(c, "\u00a0", " ")
			c = strings.TrimSpace(c)
			if c == s {
				continue
			}
			r[i] = table.Parse(c)
			n++
		}
	}
	st.Fix(ReasonTrimmed, n)
	return t
}
