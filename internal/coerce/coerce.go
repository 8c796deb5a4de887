// Package coerce repairs scalar values that the API returns as strings.
package coerce

import (
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

var (
	datePrefix = regexp.MustCompile(`^\d{4}\W\d{2}\W\d{2}`)
	decimal    = regexp.MustCompile(`^\d*\.\d+$`)
)

// Scalar returns a time.Time for date-like strings that fully parse, a
// float64 for bare decimals, and s unchanged otherwise.
func Scalar(s string) interface{} {
	if t, ok := Time(s); ok {
		return t
	}
	if f, ok := Float(s); ok {
		return f
	}
	return s
}

// Time parses s when it starts with a year-month-day prefix. Timestamps
// without a zone are read as UTC.
func Time(s string) (time.Time, bool) {
	if !datePrefix.MatchString(s) {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Float parses s when it is a plain unsigned decimal such as "45.67"
func Float(s string) (float64, bool) {
	if !decimal.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
