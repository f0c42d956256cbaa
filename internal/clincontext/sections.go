package clincontext

import "strconv"

// Section titles are a compatibility contract with the downstream prompt
// assembly; changing any literal here changes what the LLM sees.
const (
	titlePatientInfo = "Patient Information"
	titleConditions  = "Patient's Conditions"
	titleMedications = "Patient's Medications"
	titleAllergies   = "Patient's Allergies"
	titleReports     = "Diagnostic Reports"
	titleProcedures  = "Procedures"
	titleVitalSigns  = "Vital Signs"

	latestOnlySuffix = " (Latest Versions Only)"

	fallbackDiagnosis  = "Unknown diagnosis"
	fallbackMedication = "Unknown medication"
	fallbackAllergy    = "Unknown allergy"
	fallbackProcedure  = "Unknown procedure"
)

func buildPatientInfo(patient PatientSummary) *Section {
	var items []string
	if patient.Gender != "" {
		items = append(items, "Gender: "+capitalize(patient.Gender))
	}
	if patient.AgeYears != nil {
		items = append(items, "Age: "+strconv.Itoa(*patient.AgeYears))
	}
	if len(items) == 0 {
		return nil
	}
	return &Section{Title: titlePatientInfo, Items: items}
}

func buildConditions(conditions []Condition, status StatusFilter) *Section {
	if len(conditions) == 0 {
		return nil
	}
	var items []string
	for _, c := range conditions {
		if status == StatusActive && !IsConditionActive(c.ClinicalStatusCode) {
			continue
		}
		items = append(items, conditionText(c))
	}
	return &Section{Title: titleConditions, Items: items}
}

// conditionText uses the coded text only; coding displays are not consulted,
// matching the source system's rendering.
func conditionText(c Condition) string {
	if c.Code != nil && c.Code.Text != "" {
		return c.Code.Text
	}
	return fallbackDiagnosis
}

func buildMedications(medications []Medication, status StatusFilter) *Section {
	if len(medications) == 0 {
		return nil
	}
	var items []string
	for _, m := range medications {
		if status == StatusActive && !IsMedicationActive(m.StatusCode) {
			continue
		}
		items = append(items, medicationText(m))
	}
	return &Section{Title: titleMedications, Items: items}
}

func medicationText(m Medication) string {
	if m.MedicationText != "" {
		return m.MedicationText
	}
	if m.Code != nil && m.Code.Text != "" {
		return m.Code.Text
	}
	return fallbackMedication
}

func buildAllergies(allergies []Allergy) *Section {
	if len(allergies) == 0 {
		return nil
	}
	items := make([]string, 0, len(allergies))
	for _, a := range allergies {
		items = append(items, allergyText(a))
	}
	return &Section{Title: titleAllergies, Items: items}
}

func allergyText(a Allergy) string {
	if a.SubstanceText != "" {
		return a.SubstanceText
	}
	if a.Code != nil && a.Code.Text != "" {
		return a.Code.Text
	}
	return fallbackAllergy
}
