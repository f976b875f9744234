// File: internal/trace/builder.go
// Description: Composes the goal, resolved action, supplied inputs, verdicts,
// and step log into one immutable, auditable TraceRecord.

package trace

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MLouchini/sitepilot/api/schemas"
)

// Builder assembles one TraceRecord per invocation. Create a fresh Builder
// for each invocation; it carries the manifest origin and, when a binding
// adapter was consulted, the binding origin for provenance attribution.
type Builder struct {
	manifestOrigin string
	bindingOrigin  string
	newID          func() string
}

// NewBuilder creates a trace builder attributing manifest-sourced data to the
// given origin identifier.
func NewBuilder(manifestOrigin string) *Builder {
	return &Builder{
		manifestOrigin: manifestOrigin,
		newID:          uuid.NewString,
	}
}

// WithBindingOrigin records that a binding adapter was consulted. The built
// trace then carries one binding-sourced provenance entry; without this call
// it carries none.
func (b *Builder) WithBindingOrigin(origin string) *Builder {
	b.bindingOrigin = origin
	return b
}

// WithIDGenerator overrides trace id generation. Intended for tests.
func (b *Builder) WithIDGenerator(newID func() string) *Builder {
	b.newID = newID
	return b
}

// Build produces the immutable trace record. Inputs, verdicts, and steps are
// snapshotted; the caller's slices and map are never retained. The step log
// is taken as already ordered; the builder neither reorders nor deduplicates
// it.
func (b *Builder) Build(action *schemas.Action, goal schemas.GoalInstance, inputs map[string]string, verdicts []schemas.ValidationVerdict, steps []schemas.StepRecord) *schemas.TraceRecord {
	record := &schemas.TraceRecord{
		TraceID:           b.newID(),
		Goal:              goal.Description,
		GoalID:            goal.ID,
		ActionID:          action.ID,
		Inputs:            make(map[string]string, len(inputs)),
		ValidationResults: make([]schemas.ValidationVerdict, len(verdicts)),
		Steps:             make([]schemas.StepRecord, len(steps)),
	}
	for k, v := range inputs {
		record.Inputs[k] = v
	}
	copy(record.ValidationResults, verdicts)
	copy(record.Steps, steps)

	record.ResultSummary = summarize(action, goal, record.AllValid())

	record.Provenance = []schemas.ProvenanceEntry{{
		Source: schemas.ProvenanceManifest,
		Detail: b.manifestOrigin,
	}}
	if b.bindingOrigin != "" {
		record.Provenance = append(record.Provenance, schemas.ProvenanceEntry{
			Source: schemas.ProvenanceBinding,
			Detail: b.bindingOrigin,
		})
	}

	return record
}

// summarize derives the templated result summary. Any invalid verdict yields
// the fixed failure string; there is no partial-success wording.
func summarize(action *schemas.Action, goal schemas.GoalInstance, allValid bool) string {
	if !allValid {
		return schemas.SummaryValidationFailed
	}
	mode := "executed"
	if action.ExecutionPolicy.DryRunDefault {
		mode = "dry-run mode"
	}
	return fmt.Sprintf("Goal %q accomplished via %s (%s).", goal.Description, action.ID, mode)
}
