package clincontext

import (
	"testing"
	"time"
)

var composeNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func sampleRecordSet() *RecordSet {
	return &RecordSet{
		Conditions: []Condition{
			{ID: "c1", Code: &CodeableText{Text: "Diabetes"}, ClinicalStatusCode: "active"},
		},
		Medications: []Medication{
			{ID: "m1", MedicationText: "Metformin", StatusCode: "active"},
		},
		Allergies: []Allergy{
			{ID: "a1", SubstanceText: "Penicillin"},
		},
		Observations: []Observation{
			{ID: "o1", Code: &CodeableText{Text: "Hemoglobin"}, Value: &Value{Quantity: &Quantity{Value: 13.5, Unit: "g/dL"}}},
		},
		VitalSigns: []Observation{
			{ID: "v1", Code: &CodeableText{Text: "Heart Rate"}, EffectiveDate: "2024-06-10", Value: &Value{Quantity: &Quantity{Value: 72, Unit: "bpm"}}},
		},
		DiagnosticReports: []DiagnosticReport{
			{ID: "r1", Code: &CodeableText{Text: "CBC"}, EffectiveDate: "2024-06-01", ResultReferences: []string{"Observation/o1"}},
		},
		Procedures: []Procedure{
			{ID: "p1", Code: &CodeableText{Text: "Appendectomy"}, Status: "completed", PerformedDate: "2024-05-01"},
		},
	}
}

func TestComposeSectionOrder(t *testing.T) {
	age := 58
	patient := PatientSummary{Gender: "female", AgeYears: &age}

	sections, err := Compose(patient, sampleRecordSet(), DefaultOptions(), composeNow)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	wantTitles := []string{
		"Patient Information",
		"Patient's Conditions",
		"Patient's Medications",
		"Patient's Allergies",
		"Diagnostic Reports (Latest Versions Only)",
		"Procedures",
		"Heart Rate",
	}
	if len(sections) != len(wantTitles) {
		t.Fatalf("got %d sections, want %d", len(sections), len(wantTitles))
	}
	for i, title := range wantTitles {
		if sections[i].Title != title {
			t.Errorf("sections[%d].Title = %q, want %q", i, sections[i].Title, title)
		}
	}
}

func TestComposeSelectionGating(t *testing.T) {
	age := 58
	patient := PatientSummary{Gender: "female", AgeYears: &age}
	records := sampleRecordSet()

	// With every flag off the output is empty no matter the data.
	sections, err := Compose(patient, records, Options{Filters: DefaultOptions().Filters}, composeNow)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("got %d sections with all flags off, want 0", len(sections))
	}

	// Turning one flag back on yields exactly that kind's sections.
	opts := Options{Filters: DefaultOptions().Filters}
	opts.Selection.Medications = true
	sections, err = Compose(patient, records, opts, composeNow)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(sections) != 1 || sections[0].Title != "Patient's Medications" {
		t.Errorf("got %+v, want medications only", sections)
	}
}

func TestComposeFormatRepeatable(t *testing.T) {
	age := 58
	patient := PatientSummary{Gender: "female", AgeYears: &age}
	records := sampleRecordSet()
	opts := DefaultOptions()

	first, err := Compose(patient, records, opts, composeNow)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	second, err := Compose(patient, records, opts, composeNow)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if Format(first) != Format(second) {
		t.Error("two identical invocations formatted differently")
	}
}

func TestComposeNilRecordSet(t *testing.T) {
	if _, err := Compose(PatientSummary{}, nil, DefaultOptions(), composeNow); err == nil {
		t.Fatal("Compose(nil records) = nil error, want error")
	}
}

func TestComposeEmptyRecordSet(t *testing.T) {
	sections, err := Compose(PatientSummary{}, &RecordSet{}, DefaultOptions(), composeNow)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("got %d sections for empty record set, want 0", len(sections))
	}
}
