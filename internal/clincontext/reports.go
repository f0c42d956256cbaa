package clincontext

import (
	"strings"
	"time"
)

const noReportsMessage = "No diagnostic reports found within the selected time range."

// buildDiagnosticReports renders the lab/imaging report section. Reports are
// time-filtered, sorted newest first, and optionally collapsed to the latest
// report per panel name. Each surviving report resolves its result
// observations through the shared index; a report with results renders a
// panel line plus one indented bullet per member result, a report with only
// a conclusion renders a single conclusion line, and a report with neither
// is dropped from the item list (it still counts as "found" for the
// placeholder decision).
func buildDiagnosticReports(reports []DiagnosticReport, index ObservationIndex, filters Filters, now time.Time) *Section {
	if len(reports) == 0 {
		return nil
	}
	title := titleReports
	if filters.LabReportVersion == VersionLatest {
		title += latestOnlySuffix
	}

	filtered := make([]DiagnosticReport, 0, len(reports))
	for _, r := range reports {
		if InRange(r.EffectiveDate, filters.ReportTimeRange, now) {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return &Section{Title: title, Items: []string{noReportsMessage}}
	}

	sortByDateDesc(filtered, func(r DiagnosticReport) string { return r.EffectiveDate })
	if filters.LabReportVersion == VersionLatest {
		// Grouping is by coded text alone; distinct panels sharing a
		// label collapse together. Known source-system behavior, kept
		// as-is.
		filtered = ReduceToLatest(filtered, reportLabel,
			func(r DiagnosticReport) string { return r.EffectiveDate })
	}

	var items []string
	for i := range filtered {
		if item, ok := renderReport(&filtered[i], index); ok {
			items = append(items, item)
		}
	}
	return &Section{Title: title, Items: items}
}

// reportLabel is the panel display name. Coded text only; coding displays
// are not consulted, matching the source system's rendering.
func reportLabel(r DiagnosticReport) string {
	if r.Code != nil {
		return r.Code.Text
	}
	return ""
}

func renderReport(r *DiagnosticReport, index ObservationIndex) (string, bool) {
	resolved := index.Resolve(r)
	panel := reportLabel(*r)
	date := dateSegment(r.EffectiveDate)

	if len(resolved) > 0 {
		var b strings.Builder
		if panel == "" {
			panel = "Report"
		}
		b.WriteString(panel)
		b.WriteString(date)
		for i := range resolved {
			o := &resolved[i]
			// Panel observations are represented by the heading
			// line; only leaf results with a renderable value
			// become bullets.
			if len(o.MemberReferences) > 0 {
				continue
			}
			value := observationValue(o, false)
			if value == "" {
				continue
			}
			b.WriteString("\n  • ")
			b.WriteString(codeText(o.Code, "Observation"))
			b.WriteString(": ")
			b.WriteString(value)
		}
		return b.String(), true
	}

	if r.ConclusionText != "" {
		if panel == "" {
			panel = "Report"
		}
		return panel + ": " + r.ConclusionText + date, true
	}
	return "", false
}
