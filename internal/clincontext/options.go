package clincontext

// TimeRange is a named relative lookback window. RangeAll disables time
// filtering entirely.
type TimeRange string

const (
	Range24H TimeRange = "24h"
	Range3D  TimeRange = "3d"
	Range1W  TimeRange = "1w"
	Range1M  TimeRange = "1m"
	Range3M  TimeRange = "3m"
	Range6M  TimeRange = "6m"
	Range1Y  TimeRange = "1y"
	RangeAll TimeRange = "all"
)

// VersionPolicy selects between showing every record in a group or only the
// most recent one.
type VersionPolicy string

const (
	VersionLatest VersionPolicy = "latest"
	VersionAll    VersionPolicy = "all"
)

// StatusFilter restricts conditions/medications to active entries, or passes
// everything through.
type StatusFilter string

const (
	StatusActive StatusFilter = "active"
	StatusAny    StatusFilter = "all"
)

// Selection toggles each clinical data kind in the composed output.
type Selection struct {
	PatientInfo       bool `json:"patientInfo"`
	Conditions        bool `json:"conditions"`
	Medications       bool `json:"medications"`
	Allergies         bool `json:"allergies"`
	DiagnosticReports bool `json:"diagnosticReports"`
	Procedures        bool `json:"procedures"`
	Observations      bool `json:"observations"`
}

// Filters hold the per-kind status, version, and time-window settings.
type Filters struct {
	ConditionStatus     StatusFilter  `json:"conditionStatus"`
	MedicationStatus    StatusFilter  `json:"medicationStatus"`
	LabReportVersion    VersionPolicy `json:"labReportVersion"`
	ReportTimeRange     TimeRange     `json:"reportTimeRange"`
	VitalSignsVersion   VersionPolicy `json:"vitalSignsVersion"`
	VitalSignsTimeRange TimeRange     `json:"vitalSignsTimeRange"`
	ProcedureVersion    VersionPolicy `json:"procedureVersion"`
	ProcedureTimeRange  TimeRange     `json:"procedureTimeRange"`
}

// Options is the immutable per-invocation configuration.
type Options struct {
	Selection Selection `json:"selection"`
	Filters   Filters   `json:"filters"`
}

// DefaultOptions selects every kind, restricts conditions and medications to
// active entries, and shows only the latest version of reports, vitals, and
// procedures with no time cutoff.
func DefaultOptions() Options {
	return Options{
		Selection: Selection{
			PatientInfo:       true,
			Conditions:        true,
			Medications:       true,
			Allergies:         true,
			DiagnosticReports: true,
			Procedures:        true,
			Observations:      true,
		},
		Filters: Filters{
			ConditionStatus:     StatusActive,
			MedicationStatus:    StatusActive,
			LabReportVersion:    VersionLatest,
			ReportTimeRange:     RangeAll,
			VitalSignsVersion:   VersionLatest,
			VitalSignsTimeRange: RangeAll,
			ProcedureVersion:    VersionLatest,
			ProcedureTimeRange:  RangeAll,
		},
	}
}
