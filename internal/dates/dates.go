// Package dates converts free-text calendar date expressions into canonical
// ISO 8601 start/end pairs.
package dates

import (
	"log/slog"
	"strings"
	"time"
)

// dayFirstLayouts are the accepted spellings of a single date, day first.
var dayFirstLayouts = []string{
	"02.01.2006",
	"02-01-2006",
	"02/01/2006",
}

const isoLayout = "2006-01-02"

// Normalize parses a raw date expression and returns its ISO start and end
// dates. A single date yields start == end. Ranges are split on "to" first,
// then "&". When either side of a range fails to parse, both results are
// empty and ok is false: a half-correct range is worse than none.
func Normalize(raw string) (start, end string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false
	}

	var parts []string
	switch {
	case strings.Contains(raw, "to"):
		parts = strings.SplitN(raw, "to", 2)
	case strings.Contains(raw, "&"):
		parts = strings.Split(raw, "&")
	default:
		parts = []string{raw}
	}

	if len(parts) > 2 {
		// "date1 & date2 & date3" lists: span from first to last. Rare
		// enough to flag rather than trust silently.
		slog.Warn("date list with more than two entries, using first and last", "raw", raw)
		parts = []string{parts[0], parts[len(parts)-1]}
	}

	first, err := parseDayFirst(parts[0])
	if err != nil {
		return "", "", false
	}
	last := first
	if len(parts) == 2 {
		last, err = parseDayFirst(parts[1])
		if err != nil {
			return "", "", false
		}
	}

	// A range written backwards is an OCR line-order artifact, not two
	// different events. Reorder so end >= start always holds.
	if last.Before(first) {
		slog.Warn("reversed date range, reordering", "raw", raw)
		first, last = last, first
	}

	return first.Format(isoLayout), last.Format(isoLayout), true
}

func parseDayFirst(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dayFirstLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
