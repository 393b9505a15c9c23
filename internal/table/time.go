package table

import (
	"strings"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// timestampLayouts are tried before dateLayouts.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	timestampLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02 15:04:05 -0700",
}

// dateLayouts are month-first for slash formats, matching how US retail
// extracts are written.
var dateLayouts = []string{
	dateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"20060102",
}

// ParseTime parses s with the known timestamp layouts, then the date layouts.
// The result is in UTC.
func ParseTime(s string) (time.Time, bool) {
	st := strings.TrimSpace(s)
	if st == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, st); err == nil {
			return t.UTC(), true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, st); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
