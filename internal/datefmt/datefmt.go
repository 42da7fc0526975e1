// Package datefmt normalizes the two timestamp encodings that coexist in
// the news dataset: ISO-8601 strings from the API and the canonical
// "2006.01.02 15:04:05" form used on disk.
package datefmt

import (
	"strings"
	"time"
)

// Canonical is the on-disk timestamp layout. Fixed width, sorts
// lexicographically in time order.
const Canonical = "2006.01.02 15:04:05"

// QuoteDate is the date layout the price source expects.
const QuoteDate = "2006-01-02"

// IsCanonical reports whether s is already in the canonical layout.
// Detection matches the legacy rule: fixed 19-char width containing both
// a period and a colon.
func IsCanonical(s string) bool {
	return len(s) == 19 && strings.Contains(s, ".") && strings.Contains(s, ":")
}

// Normalize converts an ISO-8601 timestamp (T separator, Z or numeric
// offset) to the canonical form. Canonical input passes through unchanged,
// so Normalize is idempotent. Anything unparsable is returned as-is rather
// than failing the run.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	if IsCanonical(raw) {
		return raw
	}
	if !strings.Contains(raw, "T") {
		return raw
	}
	t, err := parseISO(raw)
	if err != nil {
		return raw
	}
	return t.Format(Canonical)
}

// ParseCanonical parses a canonical timestamp. Used by the chart layer to
// place opinion annotations on the time axis.
func ParseCanonical(s string) (time.Time, error) {
	return time.Parse(Canonical, s)
}

func parseISO(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	// second fraction or missing offset variants
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{Layout: time.RFC3339, Value: raw}
}
