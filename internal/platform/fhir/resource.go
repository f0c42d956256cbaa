// Package fhir maps inbound FHIR R4 resources onto the engine's record
// types. Only the elements the summary engine consumes are modeled; dates
// stay strings because FHIR permits partial dates that time.Time cannot
// carry.
package fhir

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

type Reference struct {
	Reference string `json:"reference,omitempty"`
	Type      string `json:"type,omitempty"`
	Display   string `json:"display,omitempty"`
}

type Quantity struct {
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"`
	Code  string   `json:"code,omitempty"`
}

type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type Patient struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
	Gender       string `json:"gender,omitempty"`
	BirthDate    string `json:"birthDate,omitempty"`
}

type Condition struct {
	ResourceType   string           `json:"resourceType"`
	ID             string           `json:"id"`
	ClinicalStatus *CodeableConcept `json:"clinicalStatus,omitempty"`
	Code           *CodeableConcept `json:"code,omitempty"`
	OnsetDateTime  string           `json:"onsetDateTime,omitempty"`
	RecordedDate   string           `json:"recordedDate,omitempty"`
}

type MedicationRequest struct {
	ResourceType              string           `json:"resourceType"`
	ID                        string           `json:"id"`
	Status                    string           `json:"status,omitempty"`
	MedicationCodeableConcept *CodeableConcept `json:"medicationCodeableConcept,omitempty"`
	AuthoredOn                string           `json:"authoredOn,omitempty"`
}

type AllergyIntolerance struct {
	ResourceType string           `json:"resourceType"`
	ID           string           `json:"id"`
	Code         *CodeableConcept `json:"code,omitempty"`
	RecordedDate string           `json:"recordedDate,omitempty"`
}

type ObservationComponent struct {
	Code          *CodeableConcept `json:"code,omitempty"`
	ValueQuantity *Quantity        `json:"valueQuantity,omitempty"`
	ValueString   string           `json:"valueString,omitempty"`
}

type Observation struct {
	ResourceType      string                 `json:"resourceType"`
	ID                string                 `json:"id"`
	Status            string                 `json:"status,omitempty"`
	Category          []CodeableConcept      `json:"category,omitempty"`
	Code              *CodeableConcept       `json:"code,omitempty"`
	EffectiveDateTime string                 `json:"effectiveDateTime,omitempty"`
	Issued            string                 `json:"issued,omitempty"`
	ValueQuantity     *Quantity              `json:"valueQuantity,omitempty"`
	ValueString       string                 `json:"valueString,omitempty"`
	Component         []ObservationComponent `json:"component,omitempty"`
	HasMember         []Reference            `json:"hasMember,omitempty"`
	Encounter         *Reference             `json:"encounter,omitempty"`
}

type DiagnosticReport struct {
	ResourceType      string           `json:"resourceType"`
	ID                string           `json:"id"`
	Status            string           `json:"status,omitempty"`
	Code              *CodeableConcept `json:"code,omitempty"`
	EffectiveDateTime string           `json:"effectiveDateTime,omitempty"`
	Issued            string           `json:"issued,omitempty"`
	Result            []Reference      `json:"result,omitempty"`
	Conclusion        string           `json:"conclusion,omitempty"`
}

type Procedure struct {
	ResourceType      string           `json:"resourceType"`
	ID                string           `json:"id"`
	Status            string           `json:"status,omitempty"`
	Code              *CodeableConcept `json:"code,omitempty"`
	PerformedDateTime string           `json:"performedDateTime,omitempty"`
	PerformedPeriod   *Period          `json:"performedPeriod,omitempty"`
}
