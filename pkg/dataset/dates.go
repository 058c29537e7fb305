package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006-1-2",
}

// Day truncates t to the calendar day it falls on, at midnight UTC.
// The calendar day is taken in t's own location.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseDate parses s as a calendar date. ISO dates, RFC 3339 timestamps and
// a couple of common variants are accepted. The result is normalised with Day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, errs.New(errs.ErrCodeInvalidInput, "unrecognised date %q", s)
}

// ParseValue parses a numeric cell. Surrounding whitespace and thousands
// separators are ignored. NaN and infinities are rejected.
func ParseValue(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errs.New(errs.ErrCodeInvalidInput, "unrecognised number %q", s)
	}
	return v, nil
}

// fromUnixMillis converts a JavaScript-style epoch timestamp to a day.
func fromUnixMillis(ms int64) time.Time {
	return Day(time.UnixMilli(ms).UTC())
}
