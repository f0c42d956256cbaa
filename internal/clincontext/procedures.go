package clincontext

import "time"

const noProceduresMessage = "No procedures found within the selected time range."

// procedureDate picks the best available date for a procedure: the point
// date, then the period end, then the period start.
func procedureDate(p Procedure) string {
	if p.PerformedDate != "" {
		return p.PerformedDate
	}
	if p.PerformedPeriod != nil {
		if p.PerformedPeriod.End != "" {
			return p.PerformedPeriod.End
		}
		return p.PerformedPeriod.Start
	}
	return ""
}

func buildProcedures(procedures []Procedure, filters Filters, now time.Time) *Section {
	if len(procedures) == 0 {
		return nil
	}
	filtered := make([]Procedure, 0, len(procedures))
	for _, p := range procedures {
		if InRange(procedureDate(p), filters.ProcedureTimeRange, now) {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return &Section{Title: titleProcedures, Items: []string{noProceduresMessage}}
	}
	if filters.ProcedureVersion == VersionLatest {
		filtered = ReduceToLatest(filtered,
			func(p Procedure) string { return codeText(p.Code, fallbackProcedure) },
			procedureDate)
	}
	items := make([]string, 0, len(filtered))
	for _, p := range filtered {
		items = append(items, renderProcedure(p))
	}
	return &Section{Title: titleProcedures, Items: items}
}

// renderProcedure formats "<name>( <date>) – <status>", dropping the date
// and status segments when absent.
func renderProcedure(p Procedure) string {
	item := codeText(p.Code, fallbackProcedure)
	item += dateSegment(procedureDate(p))
	if p.Status != "" {
		item += " – " + p.Status
	}
	return item
}
