package clincontext

import "testing"

func TestFormat(t *testing.T) {
	sections := []Section{
		{Title: "Conditions", Items: []string{"Diabetes", "Hypertension"}},
		{Title: "Medications", Items: []string{"Metformin", "Lisinopril"}},
	}
	want := "Conditions:\n- Diabetes\n- Hypertension\n\nMedications:\n- Metformin\n- Lisinopril"
	if got := Format(sections); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatDropsEmptySections(t *testing.T) {
	sections := []Section{
		{Title: "Conditions", Items: []string{"Diabetes"}},
		{Title: "Medications"},
	}
	want := "Conditions:\n- Diabetes"
	if got := Format(sections); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatNoData(t *testing.T) {
	for _, sections := range [][]Section{
		nil,
		{},
		{{Title: "Conditions"}, {Title: "Medications", Items: []string{}}},
	} {
		if got := Format(sections); got != NoDataMessage {
			t.Errorf("Format(%v) = %q, want sentinel", sections, got)
		}
	}
}

func TestFormatUntitledFallback(t *testing.T) {
	want := "Untitled:\n- item"
	if got := Format([]Section{{Items: []string{"item"}}}); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatMultilineItem(t *testing.T) {
	// A multi-line item gets the bullet prefix on its first line only.
	sections := []Section{
		{Title: "Diagnostic Reports", Items: []string{"CBC( 2024-01-15)\n  • Hemoglobin: 13.5g/dL"}},
	}
	want := "Diagnostic Reports:\n- CBC( 2024-01-15)\n  • Hemoglobin: 13.5g/dL"
	if got := Format(sections); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}
