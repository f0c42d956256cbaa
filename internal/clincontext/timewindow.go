package clincontext

import "time"

// dateLayouts are tried in order when parsing record timestamps. Anything
// that matches none of them counts as "no date".
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(iso string) (time.Time, bool) {
	if iso == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InRange reports whether a record dated dateISO falls inside the lookback
// window ending at now. RangeAll short-circuits to true before any date
// parsing; every other range requires a parsable date and excludes the
// record otherwise. The comparison is inclusive: a record dated exactly at
// the cutoff is in range.
func InRange(dateISO string, r TimeRange, now time.Time) bool {
	if r == RangeAll {
		return true
	}
	t, ok := parseDate(dateISO)
	if !ok {
		return false
	}
	cutoff, ok := windowCutoff(now, r)
	if !ok {
		return false
	}
	return !t.Before(cutoff)
}

// windowCutoff subtracts the named window from now using calendar
// arithmetic, so month and year windows track calendar boundaries rather
// than fixed day counts. Unknown ranges fail closed.
func windowCutoff(now time.Time, r TimeRange) (time.Time, bool) {
	switch r {
	case Range24H:
		return now.AddDate(0, 0, -1), true
	case Range3D:
		return now.AddDate(0, 0, -3), true
	case Range1W:
		return now.AddDate(0, 0, -7), true
	case Range1M:
		return now.AddDate(0, -1, 0), true
	case Range3M:
		return now.AddDate(0, -3, 0), true
	case Range6M:
		return now.AddDate(0, -6, 0), true
	case Range1Y:
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}
