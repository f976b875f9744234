package schemas

import "context"

// -- Engine Interfaces --

// ActionResolver matches a goal descriptor to exactly one action in a loaded
// manifest. Resolution performs no side effects and is deterministic for a
// fixed manifest and goal.
type ActionResolver interface {
	// Resolve returns the single eligible action for the goal, or an
	// *ActionNotFoundError-class error carrying the candidate ids when zero
	// or more than one action qualifies.
	Resolve(m *Manifest, goal GoalInstance) (*Action, error)
}

// ConstraintValidator produces a verdict for one declared input slot. It is a
// pure function: the same (slot, value) pair always yields an identical
// verdict, and it must never touch anything resembling a presentation surface.
type ConstraintValidator interface {
	// Validate evaluates the slot's requiredness and constraint against the
	// raw value. present distinguishes an absent value from an empty one.
	Validate(in Input, raw string, present bool) ValidationVerdict
}

// TraceBuilder composes the resolved action, goal, supplied inputs, verdicts,
// and step log into one immutable TraceRecord.
type TraceBuilder interface {
	Build(action *Action, goal GoalInstance, inputs map[string]string, verdicts []ValidationVerdict, steps []StepRecord) *TraceRecord
}

// Binder is the optional UI-binding adapter contract. It maps slot names to
// field locators on the visual surface. The core consults it only for
// provenance attribution and must remain fully correct with no binder at all.
type Binder interface {
	// Bind resolves locators for the action's slots. It never gates or
	// reorders validation.
	Bind(ctx context.Context, action *Action, values map[string]string) (map[string]FieldLocator, error)
	// Origin is the free-text origin reference recorded in trace provenance.
	Origin() string
}

// TraceWriter writes a built trace record to an output sink.
type TraceWriter interface {
	// Write serializes a single trace record.
	Write(trace *TraceRecord) error
	// Close finalizes the output and releases any underlying resources.
	Close() error
}
