package clincontext

// Clinical-status codes that count as active. Unknown or missing codes
// classify as inactive, never active.
var activeConditionStatuses = map[string]bool{
	"active":     true,
	"recurrence": true,
	"relapse":    true,
}

var activeMedicationStatuses = map[string]bool{
	"active": true,
}

// IsConditionActive reports whether a condition clinical-status code counts
// as active ("active", "recurrence", or "relapse").
func IsConditionActive(statusCode string) bool {
	return activeConditionStatuses[statusCode]
}

// IsMedicationActive reports whether a medication status code counts as
// active. "stopped" and "completed" are inactive, as is anything unknown.
func IsMedicationActive(statusCode string) bool {
	return activeMedicationStatuses[statusCode]
}
