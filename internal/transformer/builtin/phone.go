package builtin

import (
	"strings"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/transformer"
)

// ReasonPhone is the Stats key for phone cells rewritten by Phone.
const ReasonPhone = "phone_normalized"

// Phone keeps the first of several comma-separated numbers and strips every
// non-digit. A cell with no digits at all, such as a sentinel, is kept as is.
type Phone struct {
	Column string
}

func (p Phone) Apply(t *table.Table, st *transformer.Stats) *table.Table {
	i := t.Index(p.Column)
	if i < 0 {
		return t
	}
	n := 0
	for _, r := range t.Rows {
		if r[i].IsNull() {
			continue
		}
		raw := r[i].Text()
		digits := NormalizePhone(raw)
		if digits == "" {
			continue
		}
		if digits != raw || r[i].Kind() != table.KindString {
			n++
		}
		r[i] = table.String(digits)
	}
	st.Fix(ReasonPhone, n)
	return t
}

// NormalizePhone returns the digits of the first comma-separated number in s.
func NormalizePhone(s string) string {
	if first, _, ok := strings.Cut(s, ","); ok {
		s = first
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range strings.TrimSpace(s) {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
