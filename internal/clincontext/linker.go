package clincontext

import "strings"

// ObservationIndex resolves reference strings to observations by ID. Build
// it once per composition and reuse it across reports; correctness does not
// depend on reuse, only efficiency.
type ObservationIndex map[string]*Observation

// NewObservationIndex indexes observations by ID. Later duplicates of an ID
// do not displace the first entry.
func NewObservationIndex(observations []Observation) ObservationIndex {
	idx := make(ObservationIndex, len(observations))
	for i := range observations {
		o := &observations[i]
		if o.ID == "" {
			continue
		}
		if _, exists := idx[o.ID]; !exists {
			idx[o.ID] = o
		}
	}
	return idx
}

// referenceID strips any path prefix from a reference string, leaving the
// trailing ID: "Observation/abc" and "abc" both resolve to "abc".
func referenceID(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		ref = ref[i+1:]
	}
	return ref
}

// Resolve returns the observations a report's result references point at,
// in reference order. A resolved panel observation is expanded in place:
// the panel itself first, then its members in their listed order. Dangling
// references are skipped silently, and duplicate IDs are dropped so that
// resolving an already-expanded result set yields the same observations.
func (idx ObservationIndex) Resolve(report *DiagnosticReport) []Observation {
	if report == nil || len(report.ResultReferences) == 0 {
		return nil
	}
	var out []Observation
	seen := make(map[string]bool)
	add := func(o *Observation) {
		if o == nil || seen[o.ID] {
			return
		}
		seen[o.ID] = true
		out = append(out, *o)
	}
	for _, ref := range report.ResultReferences {
		o := idx[referenceID(ref)]
		if o == nil {
			continue
		}
		add(o)
		for _, member := range o.MemberReferences {
			add(idx[referenceID(member)])
		}
	}
	return out
}
