package clincontext

import (
	"strings"
	"testing"
	"time"
)

var reportNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func allReportFilters() Filters {
	f := DefaultOptions().Filters
	f.LabReportVersion = VersionAll
	return f
}

func TestBuildDiagnosticReportsPanelRendering(t *testing.T) {
	index := NewObservationIndex([]Observation{
		{
			ID:               "cbc-panel",
			Code:             &CodeableText{Text: "CBC Panel"},
			MemberReferences: []string{"Observation/hgb", "Observation/wbc"},
		},
		{
			ID:    "hgb",
			Code:  &CodeableText{Text: "Hemoglobin"},
			Value: &Value{Quantity: &Quantity{Value: 13.5, Unit: "g/dL"}},
		},
		{
			ID:    "wbc",
			Code:  &CodeableText{Text: "WBC"},
			Value: &Value{Quantity: &Quantity{Value: 7.2, Unit: "10^9/L"}},
		},
	})
	reports := []DiagnosticReport{
		{
			ID:               "r1",
			Code:             &CodeableText{Text: "CBC"},
			EffectiveDate:    "2024-01-15",
			ResultReferences: []string{"DiagnosticReport/ignored", "Observation/cbc-panel"},
		},
	}

	s := buildDiagnosticReports(reports, index, allReportFilters(), reportNow)
	if s == nil || len(s.Items) != 1 {
		t.Fatalf("got %+v, want one item", s)
	}
	want := "CBC( 2024-01-15)\n  • Hemoglobin: 13.5g/dL\n  • WBC: 7.210^9/L"
	if s.Items[0] != want {
		t.Errorf("item = %q, want %q", s.Items[0], want)
	}
	if s.Title != "Diagnostic Reports" {
		t.Errorf("title = %q", s.Title)
	}
}

func TestBuildDiagnosticReportsLatestOnly(t *testing.T) {
	index := NewObservationIndex(nil)
	reports := []DiagnosticReport{
		{ID: "old", Code: &CodeableText{Text: "CBC"}, EffectiveDate: "2024-01-10", ConclusionText: "Stale"},
		{ID: "new", Code: &CodeableText{Text: "CBC"}, EffectiveDate: "2024-01-15", ConclusionText: "Fresh"},
		{ID: "bmp", Code: &CodeableText{Text: "BMP"}, EffectiveDate: "2024-01-05", ConclusionText: "Normal"},
	}

	filters := DefaultOptions().Filters
	s := buildDiagnosticReports(reports, index, filters, reportNow)
	if s.Title != "Diagnostic Reports (Latest Versions Only)" {
		t.Errorf("title = %q", s.Title)
	}
	if len(s.Items) != 2 {
		t.Fatalf("items = %v, want latest CBC plus BMP", s.Items)
	}
	if !strings.Contains(s.Items[0], "Fresh") {
		t.Errorf("items[0] = %q, want the 2024-01-15 CBC", s.Items[0])
	}
	if !strings.Contains(s.Items[1], "BMP") {
		t.Errorf("items[1] = %q, want BMP", s.Items[1])
	}
}

func TestBuildDiagnosticReportsConclusionFallback(t *testing.T) {
	s := buildDiagnosticReports([]DiagnosticReport{
		{ID: "r1", Code: &CodeableText{Text: "Chest X-Ray"}, EffectiveDate: "2024-02-01", ConclusionText: "No acute findings"},
	}, NewObservationIndex(nil), allReportFilters(), reportNow)

	want := "Chest X-Ray: No acute findings( 2024-02-01)"
	if s.Items[0] != want {
		t.Errorf("item = %q, want %q", s.Items[0], want)
	}
}

func TestBuildDiagnosticReportsDanglingOnlyDropped(t *testing.T) {
	// Every reference dangles and there is no conclusion; the report
	// contributes no item but the section still appears without placeholder.
	s := buildDiagnosticReports([]DiagnosticReport{
		{ID: "r1", Code: &CodeableText{Text: "CBC"}, EffectiveDate: "2024-02-01", ResultReferences: []string{"gone"}},
	}, NewObservationIndex(nil), allReportFilters(), reportNow)

	if s == nil {
		t.Fatal("got nil section")
	}
	if len(s.Items) != 0 {
		t.Errorf("items = %v, want none", s.Items)
	}
}

func TestBuildDiagnosticReportsTimeWindowPlaceholder(t *testing.T) {
	filters := allReportFilters()
	filters.ReportTimeRange = Range1M

	s := buildDiagnosticReports([]DiagnosticReport{
		{ID: "r1", Code: &CodeableText{Text: "CBC"}, EffectiveDate: "2023-01-01", ConclusionText: "Old"},
	}, NewObservationIndex(nil), filters, reportNow)

	if len(s.Items) != 1 || s.Items[0] != "No diagnostic reports found within the selected time range." {
		t.Errorf("items = %v, want placeholder", s.Items)
	}
}

func TestBuildDiagnosticReportsEmptyInput(t *testing.T) {
	if s := buildDiagnosticReports(nil, NewObservationIndex(nil), allReportFilters(), reportNow); s != nil {
		t.Errorf("got %+v, want nil for empty input", s)
	}
}

func TestBuildDiagnosticReportsSkipsValuelessResults(t *testing.T) {
	index := NewObservationIndex([]Observation{
		{
			ID:               "panel",
			Code:             &CodeableText{Text: "CBC Panel"},
			MemberReferences: []string{"hgb", "pending"},
		},
		{
			ID:    "hgb",
			Code:  &CodeableText{Text: "Hemoglobin"},
			Value: &Value{Quantity: &Quantity{Value: 13.5, Unit: "g/dL"}},
		},
		{ID: "pending", Code: &CodeableText{Text: "WBC"}},
	})
	reports := []DiagnosticReport{
		{
			ID:               "r1",
			Code:             &CodeableText{Text: "CBC"},
			EffectiveDate:    "2024-01-15",
			ResultReferences: []string{"panel"},
		},
	}

	s := buildDiagnosticReports(reports, index, allReportFilters(), reportNow)
	want := "CBC( 2024-01-15)\n  • Hemoglobin: 13.5g/dL"
	if s.Items[0] != want {
		t.Errorf("item = %q, want the valueless result left out", s.Items[0])
	}
}

func TestBuildDiagnosticReportsAllResultsValueless(t *testing.T) {
	index := NewObservationIndex([]Observation{
		{ID: "pending", Code: &CodeableText{Text: "WBC"}},
	})
	s := buildDiagnosticReports([]DiagnosticReport{
		{ID: "r1", Code: &CodeableText{Text: "CBC"}, EffectiveDate: "2024-01-15", ResultReferences: []string{"pending"}},
	}, index, allReportFilters(), reportNow)

	if s.Items[0] != "CBC( 2024-01-15)" {
		t.Errorf("item = %q, want bare panel line", s.Items[0])
	}
}

func TestBuildDiagnosticReportsUnnamedReport(t *testing.T) {
	s := buildDiagnosticReports([]DiagnosticReport{
		{ID: "r1", EffectiveDate: "2024-02-01", ConclusionText: "Reviewed"},
	}, NewObservationIndex(nil), allReportFilters(), reportNow)

	if s.Items[0] != "Report: Reviewed( 2024-02-01)" {
		t.Errorf("item = %q, want generic Report heading", s.Items[0])
	}
}
