package schemas

import "time"

// -- Trace Schemas --

// Verdict reason strings are part of the trace contract. Callers must never
// need to re-derive them from raw data; they are exactly one of these
// constants or a constraint-specific failure string.
const (
	ReasonPassed        = "Passed"
	ReasonNoConstraints = "No constraints"
	ReasonRequiredEmpty = "Required field empty"
)

// SummaryValidationFailed is the fixed result summary used whenever at least
// one verdict is invalid. There is no partial-success wording.
const SummaryValidationFailed = "Validation failed. Cannot proceed to execution."

// ProvenanceSource tags where a piece of trace data originated.
type ProvenanceSource string

const (
	ProvenanceManifest ProvenanceSource = "manifest"
	ProvenanceBinding  ProvenanceSource = "binding"
)

// ValidationVerdict is the per-slot outcome of constraint validation. A failed
// validation is an expected, reportable outcome, not a program fault, so it is
// data inside the trace rather than an error.
type ValidationVerdict struct {
	Slot   string `json:"slot"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// StepRecord is one entry in the ordered step log of an invocation. Numbering
// is 1-based and strictly increasing.
type StepRecord struct {
	Step int       `json:"step"`
	Time time.Time `json:"time"`
	Note string    `json:"note"`
}

// ProvenanceEntry records the origin of data used in a trace.
type ProvenanceEntry struct {
	Source ProvenanceSource `json:"source"`
	Detail string           `json:"detail"`
}

// TraceRecord is the immutable, ordered audit record of one
// resolve-validate-build invocation. The JSON field names are the wire
// contract consumed by external audit tooling and must not be renamed.
type TraceRecord struct {
	TraceID           string              `json:"traceId"`
	Goal              string              `json:"goal"`
	GoalID            string              `json:"goalId"`
	ActionID          string              `json:"actionId"`
	Inputs            map[string]string   `json:"inputs"`
	ValidationResults []ValidationVerdict `json:"validationResults"`
	Steps             []StepRecord        `json:"steps"`
	ResultSummary     string              `json:"resultSummary"`
	Provenance        []ProvenanceEntry   `json:"provenance"`
}

// AllValid reports whether every verdict in the trace passed.
func (t *TraceRecord) AllValid() bool {
	for _, v := range t.ValidationResults {
		if !v.Valid {
			return false
		}
	}
	return true
}

// FieldLocator maps a slot name to a location on the visual surface. The core
// only carries it for provenance attribution; it never performs the binding.
type FieldLocator struct {
	Slot     string `json:"slot"`
	Selector string `json:"selector"`
	Strategy string `json:"strategy,omitempty"`
}
