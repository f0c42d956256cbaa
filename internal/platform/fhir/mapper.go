package fhir

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chartctx/chartctx/internal/clincontext"
)

// Bundle is a FHIR searchset or collection bundle. Entries are kept raw and
// dispatched on resourceType so unknown resources pass through harmlessly.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
}

// MapBundle converts a FHIR R4 bundle into the engine's patient summary and
// record set. Unknown resource types are skipped. Observations carrying a
// vital-signs category land in both the observation pool (so reports can
// resolve them) and the vital-signs slice.
func MapBundle(data []byte, now time.Time) (clincontext.PatientSummary, *clincontext.RecordSet, error) {
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return clincontext.PatientSummary{}, nil, fmt.Errorf("parse bundle: %w", err)
	}
	if bundle.ResourceType != "Bundle" {
		return clincontext.PatientSummary{}, nil, fmt.Errorf("expected Bundle, got %q", bundle.ResourceType)
	}

	var patient clincontext.PatientSummary
	records := &clincontext.RecordSet{}

	for _, entry := range bundle.Entry {
		if len(entry.Resource) == 0 {
			continue
		}
		var probe struct {
			ResourceType string `json:"resourceType"`
		}
		if err := json.Unmarshal(entry.Resource, &probe); err != nil {
			continue
		}

		switch probe.ResourceType {
		case "Patient":
			var p Patient
			if err := json.Unmarshal(entry.Resource, &p); err == nil {
				patient = mapPatient(p, now)
			}
		case "Condition":
			var c Condition
			if err := json.Unmarshal(entry.Resource, &c); err == nil {
				records.Conditions = append(records.Conditions, mapCondition(c))
			}
		case "MedicationRequest", "MedicationStatement":
			var m MedicationRequest
			if err := json.Unmarshal(entry.Resource, &m); err == nil {
				records.Medications = append(records.Medications, mapMedication(m))
			}
		case "AllergyIntolerance":
			var a AllergyIntolerance
			if err := json.Unmarshal(entry.Resource, &a); err == nil {
				records.Allergies = append(records.Allergies, mapAllergy(a))
			}
		case "Observation":
			var o Observation
			if err := json.Unmarshal(entry.Resource, &o); err == nil {
				mapped := mapObservation(o)
				records.Observations = append(records.Observations, mapped)
				if isVitalSign(o) {
					records.VitalSigns = append(records.VitalSigns, mapped)
				}
			}
		case "DiagnosticReport":
			var r DiagnosticReport
			if err := json.Unmarshal(entry.Resource, &r); err == nil {
				records.DiagnosticReports = append(records.DiagnosticReports, mapReport(r))
			}
		case "Procedure":
			var p Procedure
			if err := json.Unmarshal(entry.Resource, &p); err == nil {
				records.Procedures = append(records.Procedures, mapProcedure(p))
			}
		}
	}

	return patient, records, nil
}

func mapPatient(p Patient, now time.Time) clincontext.PatientSummary {
	summary := clincontext.PatientSummary{
		Gender:    p.Gender,
		BirthDate: p.BirthDate,
	}
	if age, ok := ageInYears(p.BirthDate, now); ok {
		summary.AgeYears = &age
	}
	return summary
}

// ageInYears computes completed years from a full or year-only birth date.
func ageInYears(birthDate string, now time.Time) (int, bool) {
	layouts := []string{"2006-01-02", "2006-01", "2006"}
	var born time.Time
	parsed := false
	for _, layout := range layouts {
		if t, err := time.Parse(layout, birthDate); err == nil {
			born = t
			parsed = true
			break
		}
	}
	if !parsed || born.After(now) {
		return 0, false
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age, true
}

func mapCondition(c Condition) clincontext.Condition {
	date := c.OnsetDateTime
	if date == "" {
		date = c.RecordedDate
	}
	return clincontext.Condition{
		ID:                 c.ID,
		Code:               mapConcept(c.Code),
		EffectiveDate:      date,
		ClinicalStatusCode: conceptCode(c.ClinicalStatus),
	}
}

func mapMedication(m MedicationRequest) clincontext.Medication {
	return clincontext.Medication{
		ID:            m.ID,
		Code:          mapConcept(m.MedicationCodeableConcept),
		EffectiveDate: m.AuthoredOn,
		StatusCode:    m.Status,
	}
}

func mapAllergy(a AllergyIntolerance) clincontext.Allergy {
	return clincontext.Allergy{
		ID:            a.ID,
		Code:          mapConcept(a.Code),
		EffectiveDate: a.RecordedDate,
	}
}

func mapObservation(o Observation) clincontext.Observation {
	mapped := clincontext.Observation{
		ID:            o.ID,
		Code:          mapConcept(o.Code),
		EffectiveDate: firstNonEmpty(o.EffectiveDateTime, o.Issued),
		Status:        o.Status,
	}
	if o.ValueQuantity != nil && o.ValueQuantity.Value != nil {
		mapped.Value = &clincontext.Value{
			Quantity: &clincontext.Quantity{Value: *o.ValueQuantity.Value, Unit: o.ValueQuantity.Unit},
		}
	} else if o.ValueString != "" {
		mapped.Value = &clincontext.Value{Text: o.ValueString}
	}
	for _, comp := range o.Component {
		mapped.ComponentValues = append(mapped.ComponentValues, mapComponent(comp))
	}
	for _, member := range o.HasMember {
		if member.Reference != "" {
			mapped.MemberReferences = append(mapped.MemberReferences, member.Reference)
		}
	}
	if o.Encounter != nil {
		mapped.EncounterRef = o.Encounter.Reference
	}
	return mapped
}

func mapComponent(comp ObservationComponent) clincontext.ComponentValue {
	out := clincontext.ComponentValue{Label: conceptText(comp.Code)}
	if comp.ValueQuantity != nil && comp.ValueQuantity.Value != nil {
		out.Quantity = &clincontext.Quantity{Value: *comp.ValueQuantity.Value, Unit: comp.ValueQuantity.Unit}
	} else {
		out.Text = comp.ValueString
	}
	return out
}

func mapReport(r DiagnosticReport) clincontext.DiagnosticReport {
	mapped := clincontext.DiagnosticReport{
		ID:             r.ID,
		Code:           mapConcept(r.Code),
		EffectiveDate:  firstNonEmpty(r.EffectiveDateTime, r.Issued),
		Status:         r.Status,
		ConclusionText: r.Conclusion,
	}
	for _, result := range r.Result {
		if result.Reference != "" {
			mapped.ResultReferences = append(mapped.ResultReferences, result.Reference)
		}
	}
	return mapped
}

func mapProcedure(p Procedure) clincontext.Procedure {
	mapped := clincontext.Procedure{
		ID:            p.ID,
		Code:          mapConcept(p.Code),
		Status:        p.Status,
		PerformedDate: p.PerformedDateTime,
	}
	if p.PerformedPeriod != nil {
		mapped.PerformedPeriod = &clincontext.Period{
			Start: p.PerformedPeriod.Start,
			End:   p.PerformedPeriod.End,
		}
	}
	return mapped
}

func isVitalSign(o Observation) bool {
	for _, category := range o.Category {
		for _, coding := range category.Coding {
			if coding.Code == "vital-signs" {
				return true
			}
		}
		if strings.EqualFold(category.Text, "vital signs") {
			return true
		}
	}
	return false
}

func mapConcept(c *CodeableConcept) *clincontext.CodeableText {
	if c == nil {
		return nil
	}
	out := &clincontext.CodeableText{Text: c.Text}
	for _, coding := range c.Coding {
		out.Codings = append(out.Codings, clincontext.Coding{Code: coding.Code, Display: coding.Display})
	}
	return out
}

func conceptCode(c *CodeableConcept) string {
	if c == nil {
		return ""
	}
	for _, coding := range c.Coding {
		if coding.Code != "" {
			return coding.Code
		}
	}
	return c.Text
}

func conceptText(c *CodeableConcept) string {
	if c == nil {
		return ""
	}
	if c.Text != "" {
		return c.Text
	}
	for _, coding := range c.Coding {
		if coding.Display != "" {
			return coding.Display
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
