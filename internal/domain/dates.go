package domain

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the ISO-8601 calendar date used in forms and storage.
	DateLayout = "2006-01-02"
	// displayLayout renders a medium-length date, e.g. "Oct 18, 2026".
	displayLayout = "Jan 2, 2006"
)

// Placeholders shown for absent optional dates.
const (
	UnknownDate = "NA"
	StillAlive  = "Alive"
)

// FormatDate renders t as a medium date, or placeholder when t is nil.
func FormatDate(t *time.Time, placeholder string) string {
	if t == nil || t.IsZero() {
		return placeholder
	}
	return t.UTC().Format(displayLayout)
}

// ISODate renders t as YYYY-MM-DD, or "" when t is nil.
func ISODate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// isoLayouts are the ISO-8601 forms accepted on input: extended and basic
// calendar dates, reduced precision, ordinal dates and date-times with or
// without seconds, fractions and zone offsets.
var isoLayouts = []string{
	DateLayout,
	"2006-01",
	"2006",
	"20060102",
	"2006-002",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"20060102T150405Z0700",
	"20060102T150405",
	"20060102T1504",
}

// ParseDate parses an ISO-8601 date or date-time and truncates it to a UTC
// calendar date. Missing month or day default to the first. An empty
// string yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("invalid ISO-8601 date %q", s)
}
