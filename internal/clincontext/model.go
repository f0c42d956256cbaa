// Package clincontext assembles a patient's in-memory clinical record into a
// compact, deterministic text summary for display and LLM prompt inclusion.
// The engine is a pure function over its inputs: it holds no state between
// invocations and never reads the ambient clock (callers thread "now" in).
package clincontext

// Coding is a single code/display pair from a terminology system.
type Coding struct {
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// CodeableText carries the human-readable text for a coded concept together
// with its codings. Either part may be absent on real-world records.
type CodeableText struct {
	Text    string   `json:"text,omitempty"`
	Codings []Coding `json:"codings,omitempty"`
}

// Quantity is a numeric measurement with an optional unit.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Value is an observation result: a quantity, or free text.
type Value struct {
	Quantity *Quantity `json:"quantity,omitempty"`
	Text     string    `json:"text,omitempty"`
}

// ComponentValue is one labelled member of a multi-part observation, such as
// the systolic component of a blood pressure reading.
type ComponentValue struct {
	Label    string    `json:"label"`
	Quantity *Quantity `json:"quantity,omitempty"`
	Text     string    `json:"text,omitempty"`
}

// Period is a date interval; either bound may be absent. Dates are ISO 8601.
type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// PatientSummary is the demographic snapshot rendered into the patient
// information section. AgeYears is a pointer so that zero is representable.
type PatientSummary struct {
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	AgeYears  *int   `json:"ageYears,omitempty"`
}

// Condition is a diagnosis or problem-list entry.
type Condition struct {
	ID                 string        `json:"id"`
	Code               *CodeableText `json:"code,omitempty"`
	EffectiveDate      string        `json:"effectiveDate,omitempty"`
	ClinicalStatusCode string        `json:"clinicalStatusCode,omitempty"`
}

// Medication is a medication order or statement.
type Medication struct {
	ID             string        `json:"id"`
	Code           *CodeableText `json:"code,omitempty"`
	MedicationText string        `json:"medicationText,omitempty"`
	EffectiveDate  string        `json:"effectiveDate,omitempty"`
	StatusCode     string        `json:"statusCode,omitempty"`
}

// Allergy is an allergy or intolerance entry.
type Allergy struct {
	ID            string        `json:"id"`
	Code          *CodeableText `json:"code,omitempty"`
	SubstanceText string        `json:"substanceText,omitempty"`
	EffectiveDate string        `json:"effectiveDate,omitempty"`
}

// Observation is a measurement or lab result. A panel observation carries
// MemberReferences to its member observations instead of a value of its own.
// References are bare IDs or path-style strings ("Observation/abc"); they are
// resolved by lookup, never by pointer identity.
type Observation struct {
	ID               string           `json:"id"`
	Code             *CodeableText    `json:"code,omitempty"`
	EffectiveDate    string           `json:"effectiveDate,omitempty"`
	Status           string           `json:"status,omitempty"`
	Value            *Value           `json:"value,omitempty"`
	ComponentValues  []ComponentValue `json:"componentValues,omitempty"`
	MemberReferences []string         `json:"memberReferences,omitempty"`
	EncounterRef     string           `json:"encounterRef,omitempty"`
}

// DiagnosticReport is a lab or imaging report linking to its result
// observations by reference.
type DiagnosticReport struct {
	ID               string        `json:"id"`
	Code             *CodeableText `json:"code,omitempty"`
	EffectiveDate    string        `json:"effectiveDate,omitempty"`
	Status           string        `json:"status,omitempty"`
	ResultReferences []string      `json:"resultReferences,omitempty"`
	ConclusionText   string        `json:"conclusionText,omitempty"`
}

// Procedure is a performed procedure. The effective date falls back from
// PerformedDate to the period end, then the period start.
type Procedure struct {
	ID              string        `json:"id"`
	Code            *CodeableText `json:"code,omitempty"`
	Status          string        `json:"status,omitempty"`
	PerformedDate   string        `json:"performedDate,omitempty"`
	PerformedPeriod *Period       `json:"performedPeriod,omitempty"`
}

// RecordSet is the full materialized clinical record for one patient.
// IDs are unique within each slice; cross-slice links are reference strings.
type RecordSet struct {
	Conditions        []Condition        `json:"conditions,omitempty"`
	Medications       []Medication       `json:"medications,omitempty"`
	Allergies         []Allergy          `json:"allergies,omitempty"`
	Observations      []Observation      `json:"observations,omitempty"`
	VitalSigns        []Observation      `json:"vitalSigns,omitempty"`
	DiagnosticReports []DiagnosticReport `json:"diagnosticReports,omitempty"`
	Procedures        []Procedure        `json:"procedures,omitempty"`
}

// Section is the engine's unit of output: a titled, ordered list of
// human-readable lines. A section with no items is invisible in the
// formatted output.
type Section struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// codeText returns the display text of a coded concept: the text field if
// set, otherwise the first non-empty coding display, otherwise fallback.
func codeText(c *CodeableText, fallback string) string {
	if c != nil {
		if c.Text != "" {
			return c.Text
		}
		for _, coding := range c.Codings {
			if coding.Display != "" {
				return coding.Display
			}
		}
	}
	return fallback
}
