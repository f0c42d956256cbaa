package clincontext

import (
	"math"
	"strconv"
	"strings"
)

// smartNumber renders integral values without a decimal point and
// non-integral values with exactly one decimal place.
func smartNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// dateSegment renders the parenthesised date suffix appended to item lines,
// e.g. "( 2024-01-15)". Missing or unparsable dates yield an empty segment.
func dateSegment(dateISO string) string {
	t, ok := parseDate(dateISO)
	if !ok {
		return ""
	}
	return "( " + t.Format("2006-01-02") + ")"
}

// quantityString renders a quantity as "<value> <unit>" or, when spaced is
// false, "<value><unit>". A missing unit leaves just the value.
func quantityString(q *Quantity, spaced bool) string {
	if q == nil {
		return ""
	}
	s := smartNumber(q.Value)
	if q.Unit == "" {
		return s
	}
	if spaced {
		return s + " " + q.Unit
	}
	return s + q.Unit
}

// observationValue renders an observation's own value: the quantity when
// present, otherwise its free text. spaced controls value/unit spacing.
func observationValue(o *Observation, spaced bool) string {
	if o.Value == nil {
		return ""
	}
	if o.Value.Quantity != nil {
		return quantityString(o.Value.Quantity, spaced)
	}
	return o.Value.Text
}

// componentLine joins an observation's components into one line, e.g.
// "Systolic: 120 mmHg, Diastolic: 80 mmHg". Components with no renderable
// value are left out of the line.
func componentLine(components []ComponentValue) string {
	parts := make([]string, 0, len(components))
	for _, comp := range components {
		val := comp.Text
		if comp.Quantity != nil {
			val = quantityString(comp.Quantity, true)
		}
		if val == "" {
			continue
		}
		parts = append(parts, comp.Label+": "+val)
	}
	return strings.Join(parts, ", ")
}

// capitalize upper-cases the first rune of s, leaving the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
