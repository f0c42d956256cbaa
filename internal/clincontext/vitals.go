package clincontext

import (
	"strings"
	"time"
)

const noVitalsMessage = "No vital signs found within the selected time range."

// buildVitalSigns renders one section per distinct vital-sign type present
// in the filtered data ("Blood Pressure", "Heart Rate", ...), in first-seen
// order. Only the dedicated vital-signs records are consulted, never the
// generic observations. The placeholder for an empty filtered set uses the
// umbrella title "Vital Signs".
func buildVitalSigns(vitals []Observation, filters Filters, now time.Time) []Section {
	if len(vitals) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(vitals))
	filtered := make([]Observation, 0, len(vitals))
	for _, v := range vitals {
		if v.ID != "" {
			if seen[v.ID] {
				continue
			}
			seen[v.ID] = true
		}
		if InRange(v.EffectiveDate, filters.VitalSignsTimeRange, now) {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == 0 {
		return []Section{{Title: titleVitalSigns, Items: []string{noVitalsMessage}}}
	}

	groups := make(map[string][]Observation)
	var order []string
	for _, v := range filtered {
		name := vitalTypeName(&v)
		if _, exists := groups[name]; !exists {
			order = append(order, name)
		}
		groups[name] = append(groups[name], v)
	}

	sections := make([]Section, 0, len(order))
	for _, name := range order {
		group := groups[name]
		sortByDateDesc(group, func(o Observation) string { return o.EffectiveDate })
		if filters.VitalSignsVersion == VersionLatest {
			group = group[:1]
		}
		var items []string
		for i := range group {
			if line := renderVital(&group[i]); line != "" {
				items = append(items, line)
			}
		}
		sections = append(sections, Section{Title: name, Items: items})
	}
	return sections
}

// vitalTypeName derives the display type of a vital sign: the coded text,
// then the first coding display, then inference from component labels
// (anything mentioning blood pressure groups as "Blood Pressure"), then the
// generic "Vital Sign".
func vitalTypeName(o *Observation) string {
	if name := codeText(o.Code, ""); name != "" {
		return name
	}
	for _, comp := range o.ComponentValues {
		if strings.Contains(strings.ToLower(comp.Label), "blood pressure") {
			return "Blood Pressure"
		}
	}
	return "Vital Sign"
}

// renderVital formats one reading. Component-bearing observations join their
// components into a single line; scalar observations render the bare value.
func renderVital(o *Observation) string {
	date := dateSegment(o.EffectiveDate)
	if len(o.ComponentValues) > 0 {
		if line := componentLine(o.ComponentValues); line != "" {
			return line + date
		}
		return ""
	}
	if value := observationValue(o, true); value != "" {
		return value + date
	}
	return ""
}
