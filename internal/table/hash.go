package table

import "github.com/zeebo/xxh3"

const (
	cellNull = 0x00
	cellSet  = 0x01
	cellSep  = 0x1f
)

// Hash returns an xxh3 digest of the row's rendered cells. Rows that are
// Equal always hash the same; collisions must be confirmed with Equal.
func (r Row) Hash() uint64 {
	h := xxh3.New()
	var buf []byte
	for _, v := range r {
		buf = buf[:0]
		if v.IsNull() {
			buf = append(buf, cellNull)
		} else {
			buf = append(buf, cellSet)
			buf = append(buf, v.Text()...)
		}
		buf = append(buf, cellSep)
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// Equal reports whether two rows hold the same cells. Cells compare by their
// rendered text, so 1 and 1.0 are the same cell.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i].IsNull() != o[i].IsNull() {
			return false
		}
		if r[i].Text() != o[i].Text() {
			return false
		}
	}
	return true
}
