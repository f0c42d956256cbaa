package clincontext

import (
	"fmt"
	"time"
)

// Compose runs the section builders in their fixed order (patient info,
// conditions, medications, allergies, diagnostic reports, procedures, vital
// signs), skipping any kind whose selection flag is off, and returns the
// non-empty sections in builder order. Malformed records degrade to omitted
// items or fallback labels; the only hard failure is a nil record set.
func Compose(patient PatientSummary, records *RecordSet, opts Options, now time.Time) ([]Section, error) {
	if records == nil {
		return nil, fmt.Errorf("clinical record set is required")
	}

	var sections []Section
	add := func(s *Section) {
		if s != nil && len(s.Items) > 0 {
			sections = append(sections, *s)
		}
	}

	if opts.Selection.PatientInfo {
		add(buildPatientInfo(patient))
	}
	if opts.Selection.Conditions {
		add(buildConditions(records.Conditions, opts.Filters.ConditionStatus))
	}
	if opts.Selection.Medications {
		add(buildMedications(records.Medications, opts.Filters.MedicationStatus))
	}
	if opts.Selection.Allergies {
		add(buildAllergies(records.Allergies))
	}
	if opts.Selection.DiagnosticReports {
		index := NewObservationIndex(records.Observations)
		add(buildDiagnosticReports(records.DiagnosticReports, index, opts.Filters, now))
	}
	if opts.Selection.Procedures {
		add(buildProcedures(records.Procedures, opts.Filters, now))
	}
	if opts.Selection.Observations {
		for _, s := range buildVitalSigns(records.VitalSigns, opts.Filters, now) {
			section := s
			add(&section)
		}
	}
	return sections, nil
}
