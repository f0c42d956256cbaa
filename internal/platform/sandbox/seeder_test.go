package sandbox

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chartctx/chartctx/internal/clincontext"
)

var seedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestGenerateRecordSetDeterministic(t *testing.T) {
	cfg := DefaultSeedConfig()
	cfg.Seed = 42

	first := GenerateRecordSet(cfg, seedNow)
	second := GenerateRecordSet(cfg, seedNow)
	if !reflect.DeepEqual(first, second) {
		t.Error("same seed produced different record sets")
	}

	cfg.Seed = 43
	third := GenerateRecordSet(cfg, seedNow)
	if reflect.DeepEqual(first, third) {
		t.Error("different seeds produced identical record sets")
	}
}

func TestGenerateRecordSetShape(t *testing.T) {
	cfg := DefaultSeedConfig()
	cfg.Seed = 7

	records := GenerateRecordSet(cfg, seedNow)
	if len(records.Conditions) != cfg.Conditions {
		t.Errorf("conditions = %d, want %d", len(records.Conditions), cfg.Conditions)
	}
	if len(records.Medications) != cfg.Medications {
		t.Errorf("medications = %d, want %d", len(records.Medications), cfg.Medications)
	}
	if len(records.DiagnosticReports) != cfg.Reports {
		t.Errorf("reports = %d, want %d", len(records.DiagnosticReports), cfg.Reports)
	}
	if len(records.VitalSigns) != 2*cfg.VitalDays {
		t.Errorf("vitals = %d, want %d", len(records.VitalSigns), 2*cfg.VitalDays)
	}
}

func TestGeneratedReportsResolve(t *testing.T) {
	cfg := DefaultSeedConfig()
	cfg.Seed = 7

	records := GenerateRecordSet(cfg, seedNow)
	index := clincontext.NewObservationIndex(records.Observations)
	for i := range records.DiagnosticReports {
		resolved := index.Resolve(&records.DiagnosticReports[i])
		// Panel plus its members.
		if len(resolved) < 2 {
			t.Errorf("report %d resolved %d observations, want panel plus members", i, len(resolved))
		}
	}
}

func TestGeneratedRecordSetComposes(t *testing.T) {
	cfg := DefaultSeedConfig()
	cfg.Seed = 7

	patient := GeneratePatient(cfg, seedNow)
	records := GenerateRecordSet(cfg, seedNow)

	sections, err := clincontext.Compose(patient, records, clincontext.DefaultOptions(), seedNow)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(sections) == 0 {
		t.Fatal("composed no sections from generated data")
	}
	if text := clincontext.Format(sections); text == clincontext.NoDataMessage {
		t.Error("formatted output is the empty sentinel")
	}
}

func TestGetRecordEndpoint(t *testing.T) {
	e := echo.New()
	NewHandler(0).RegisterRoutes(e.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sandbox/record?seed=42", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp RecordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Records == nil || len(resp.Records.Conditions) == 0 {
		t.Error("expected generated conditions in response")
	}
	if resp.Patient.AgeYears == nil {
		t.Error("expected patient age in response")
	}
}

func TestGetRecordRejectsBadSeed(t *testing.T) {
	e := echo.New()
	NewHandler(0).RegisterRoutes(e.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sandbox/record?seed=abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
