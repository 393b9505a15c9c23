package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the dynamic type carried by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindTime
)

// String returns the short type name used in quality reports.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "datetime"
	default:
		return "null"
	}
}

// Numeric reports whether k is an integer or float kind.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat }

// Value is a typed scalar cell. The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	t    time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value. Use Parse to infer a type from raw text.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Time returns a timestamp value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bounds of the float64 values that truncate to a valid int64. 2^63 itself
// is out of range.
const (
	minInt64Float = -(1 << 63)
	maxInt64Float = 1 << 63
)

// AsInt returns the integer held by v. Strings are parsed; floats are
// truncated when they fall inside the int64 range.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		if math.IsNaN(v.f) || v.f < minInt64Float || v.f >= maxInt64Float {
			return 0, false
		}
		return int64(v.f), true
	case KindString:
		p := Parse(v.s)
		if p.kind == KindInt || p.kind == KindFloat {
			return p.AsInt()
		}
	}
	return 0, false
}

// AsFloat returns the numeric value held by v as float64. Strings are parsed.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindString:
		p := Parse(v.s)
		if p.kind == KindInt || p.kind == KindFloat {
			return p.AsFloat()
		}
	}
	return 0, false
}

// AsTime returns the timestamp held by v. Strings are parsed with the known
// date and timestamp layouts.
func (v Value) AsTime() (time.Time, bool) {
	switch v.kind {
	case KindTime:
		return v.t, true
	case KindString:
		return ParseTime(v.s)
	}
	return time.Time{}, false
}

// Text renders v the way it is written to CSV. Null renders as "".
func (v Value) Text() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindTime:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format(dateLayout)
		}
		return v.t.Format(timestampLayout)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindString:
		return v.s == o.s
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// Parse infers a Value from raw CSV text. Empty and whitespace-only text is
// null. Integers keep their text when they carry leading zeros (zip codes,
// phone numbers) so that rendering round-trips.
func Parse(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	if isInt(s) && !hasLeadingZero(s) {
		i, _ := strconv.ParseInt(s, 10, 64)
		return Int(i)
	}
	if isFloat(s) {
		f, _ := strconv.ParseFloat(s, 64)
		return Float(f)
	}
	return String(raw)
}

// isInt requires a signed base-10 integer that fits in int64.
func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isFloat accepts decimal or scientific notation. Textual specials such as
// "inf" or "nan" are rejected so that names like "Nancy" stay strings.
func isFloat(s string) bool {
	if isInt(s) {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func hasLeadingZero(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	return len(s) > 1 && s[0] == '0'
}
