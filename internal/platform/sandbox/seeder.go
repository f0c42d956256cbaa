// Package sandbox generates reproducible synthetic patient records for demo
// environments, developer on-boarding, and end-to-end testing of the context
// engine without access to real patient data.
package sandbox

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/chartctx/chartctx/internal/clincontext"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// SeedConfig controls the volume and shape of a generated record set. The
// same seed always produces the same record set.
type SeedConfig struct {
	Conditions  int   `json:"conditions"`
	Medications int   `json:"medications"`
	Allergies   int   `json:"allergies"`
	Reports     int   `json:"reports"`
	Procedures  int   `json:"procedures"`
	VitalDays   int   `json:"vitalDays"`
	Seed        int64 `json:"seed"`
}

// DefaultSeedConfig returns a record-set shape resembling a chronic-care
// patient with a year of history.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Conditions:  4,
		Medications: 5,
		Allergies:   2,
		Reports:     3,
		Procedures:  2,
		VitalDays:   14,
	}
}

// ---------------------------------------------------------------------------
// Clinical terminology pools
// ---------------------------------------------------------------------------

type codeEntry struct {
	Code    string
	Display string
}

type labDef struct {
	Display string
	Unit    string
	Low     float64
	High    float64
}

var (
	conditionPool = []codeEntry{
		{"44054006", "Type 2 diabetes mellitus"},
		{"38341003", "Essential hypertension"},
		{"13645005", "Chronic obstructive pulmonary disease"},
		{"195967001", "Asthma"},
		{"35489007", "Depressive disorder"},
		{"84114007", "Heart failure"},
		{"90708001", "Chronic kidney disease"},
	}
	conditionStatuses = []string{"active", "active", "active", "resolved", "remission"}

	medicationPool = []string{
		"Metformin 500mg oral tablet",
		"Lisinopril 10mg oral tablet",
		"Atorvastatin 20mg oral tablet",
		"Albuterol 90mcg inhaler",
		"Sertraline 50mg oral tablet",
		"Amlodipine 5mg oral tablet",
		"Omeprazole 20mg oral capsule",
	}
	medicationStatuses = []string{"active", "active", "active", "stopped", "completed"}

	allergyPool = []string{
		"Penicillin", "Peanut", "Latex", "Sulfa drugs", "Shellfish", "Aspirin",
	}

	labPanels = map[string][]labDef{
		"Complete Blood Count": {
			{"Hemoglobin", "g/dL", 12.0, 17.5},
			{"White Blood Cell Count", "10^9/L", 4.0, 11.0},
			{"Platelet Count", "10^9/L", 150, 400},
		},
		"Basic Metabolic Panel": {
			{"Glucose", "mg/dL", 70, 140},
			{"Creatinine", "mg/dL", 0.6, 1.3},
			{"Potassium", "mmol/L", 3.5, 5.1},
		},
		"Lipid Panel": {
			{"Total Cholesterol", "mg/dL", 130, 240},
			{"LDL Cholesterol", "mg/dL", 70, 160},
			{"HDL Cholesterol", "mg/dL", 35, 80},
		},
	}
	panelOrder = []string{"Complete Blood Count", "Basic Metabolic Panel", "Lipid Panel"}

	procedurePool = []codeEntry{
		{"80146002", "Appendectomy"},
		{"73761001", "Colonoscopy"},
		{"387713003", "Surgical procedure"},
		{"18946005", "Echocardiography"},
	}
)

// ---------------------------------------------------------------------------
// Generator
// ---------------------------------------------------------------------------

// GeneratePatient returns a deterministic synthetic patient summary.
func GeneratePatient(cfg SeedConfig, now time.Time) clincontext.PatientSummary {
	rng := rand.New(rand.NewSource(cfg.Seed))
	gender := "female"
	if rng.Intn(2) == 0 {
		gender = "male"
	}
	age := 35 + rng.Intn(50)
	birth := now.AddDate(-age, 0, -rng.Intn(300))
	return clincontext.PatientSummary{
		Gender:    gender,
		BirthDate: birth.Format("2006-01-02"),
		AgeYears:  &age,
	}
}

// GenerateRecordSet builds a synthetic record set. Diagnostic reports link to
// panel observations which in turn reference member observations, so the
// generated data exercises the full reference-resolution path.
func GenerateRecordSet(cfg SeedConfig, now time.Time) *clincontext.RecordSet {
	rng := rand.New(rand.NewSource(cfg.Seed + 1))
	records := &clincontext.RecordSet{}

	for i := 0; i < cfg.Conditions; i++ {
		entry := conditionPool[rng.Intn(len(conditionPool))]
		records.Conditions = append(records.Conditions, clincontext.Condition{
			ID: newID(rng),
			Code: &clincontext.CodeableText{
				Text:    entry.Display,
				Codings: []clincontext.Coding{{Code: entry.Code, Display: entry.Display}},
			},
			EffectiveDate:      pastDate(rng, now, 5*365),
			ClinicalStatusCode: conditionStatuses[rng.Intn(len(conditionStatuses))],
		})
	}

	for i := 0; i < cfg.Medications; i++ {
		records.Medications = append(records.Medications, clincontext.Medication{
			ID:             newID(rng),
			MedicationText: medicationPool[rng.Intn(len(medicationPool))],
			EffectiveDate:  pastDate(rng, now, 2*365),
			StatusCode:     medicationStatuses[rng.Intn(len(medicationStatuses))],
		})
	}

	for i := 0; i < cfg.Allergies; i++ {
		records.Allergies = append(records.Allergies, clincontext.Allergy{
			ID:            newID(rng),
			SubstanceText: allergyPool[rng.Intn(len(allergyPool))],
			EffectiveDate: pastDate(rng, now, 10*365),
		})
	}

	for i := 0; i < cfg.Reports; i++ {
		panelName := panelOrder[i%len(panelOrder)]
		date := pastDate(rng, now, 365)

		var memberRefs []string
		for _, def := range labPanels[panelName] {
			member := clincontext.Observation{
				ID:            newID(rng),
				Code:          &clincontext.CodeableText{Text: def.Display},
				EffectiveDate: date,
				Status:        "final",
				Value: &clincontext.Value{
					Quantity: &clincontext.Quantity{
						Value: round1(def.Low + rng.Float64()*(def.High-def.Low)),
						Unit:  def.Unit,
					},
				},
			}
			records.Observations = append(records.Observations, member)
			memberRefs = append(memberRefs, "Observation/"+member.ID)
		}

		panel := clincontext.Observation{
			ID:               newID(rng),
			Code:             &clincontext.CodeableText{Text: panelName},
			EffectiveDate:    date,
			Status:           "final",
			MemberReferences: memberRefs,
		}
		records.Observations = append(records.Observations, panel)

		records.DiagnosticReports = append(records.DiagnosticReports, clincontext.DiagnosticReport{
			ID:               newID(rng),
			Code:             &clincontext.CodeableText{Text: panelName},
			EffectiveDate:    date,
			Status:           "final",
			ResultReferences: []string{"Observation/" + panel.ID},
		})
	}

	for i := 0; i < cfg.Procedures; i++ {
		entry := procedurePool[rng.Intn(len(procedurePool))]
		records.Procedures = append(records.Procedures, clincontext.Procedure{
			ID:            newID(rng),
			Code:          &clincontext.CodeableText{Text: entry.Display},
			Status:        "completed",
			PerformedDate: pastDate(rng, now, 3*365),
		})
	}

	for day := 0; day < cfg.VitalDays; day++ {
		date := now.AddDate(0, 0, -day).Format("2006-01-02")
		records.VitalSigns = append(records.VitalSigns,
			clincontext.Observation{
				ID:            newID(rng),
				Code:          &clincontext.CodeableText{Text: "Blood Pressure"},
				EffectiveDate: date,
				Status:        "final",
				ComponentValues: []clincontext.ComponentValue{
					{Label: "Systolic", Quantity: &clincontext.Quantity{Value: float64(105 + rng.Intn(40)), Unit: "mmHg"}},
					{Label: "Diastolic", Quantity: &clincontext.Quantity{Value: float64(65 + rng.Intn(25)), Unit: "mmHg"}},
				},
			},
			clincontext.Observation{
				ID:            newID(rng),
				Code:          &clincontext.CodeableText{Text: "Heart Rate"},
				EffectiveDate: date,
				Status:        "final",
				Value: &clincontext.Value{
					Quantity: &clincontext.Quantity{Value: float64(58 + rng.Intn(45)), Unit: "bpm"},
				},
			},
		)
	}

	return records
}

func newID(rng *rand.Rand) string {
	var b [16]byte
	rng.Read(b[:])
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func pastDate(rng *rand.Rand, now time.Time, maxDaysBack int) string {
	return now.AddDate(0, 0, -rng.Intn(maxDaysBack)).Format("2006-01-02")
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
