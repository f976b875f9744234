package schemas

import (
	json "github.com/json-iterator/go"
)

// -- Manifest Schemas --

// ConstraintKind enumerates the closed set of constraint variants a slot may
// declare. Adding a kind means adding a constant here and a dispatch arm in
// the validator; the loader rejects anything else at load time.
type ConstraintKind string

const (
	ConstraintPattern        ConstraintKind = "pattern"
	ConstraintFormat         ConstraintKind = "format"
	ConstraintNumericMinimum ConstraintKind = "numeric_minimum"
)

// FormatDateRange is currently the only supported structured-format kind.
const FormatDateRange = "date-range"

// Constraint is the normalized, tagged representation of a declarative
// validation rule attached to an input slot. Exactly one variant's fields are
// populated, selected by Kind. The manifest loader produces these from the
// shape-sniffed constraint objects in the document.
type Constraint struct {
	Kind ConstraintKind `json:"kind"`

	// Pattern variant: the full value must match the anchored expression.
	Pattern string `json:"pattern,omitempty"`

	// Format variant: a named structured format (see FormatDateRange).
	Format string `json:"format,omitempty"`

	// NumericMinimum variant: the parsed value must be >= Minimum. Currency
	// is carried for display only and is never cross-checked.
	Minimum  float64 `json:"minimum,omitempty"`
	Currency string  `json:"currency,omitempty"`

	// Description is the human-readable rule statement; it doubles as the
	// failure diagnostic.
	Description string `json:"description"`
}

// Goal is a site-declared objective an agent may pursue.
type Goal struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// StateModel describes a named piece of site state an action may read or
// transition. The core carries it for completeness but never interprets it.
type StateModel struct {
	Description string   `json:"description,omitempty"`
	States      []string `json:"states,omitempty"`
	Initial     string   `json:"initial,omitempty"`
}

// Input declares one named, typed slot on an action.
type Input struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Required   bool        `json:"required"`
	Constraint *Constraint `json:"constraint,omitempty"`
}

// Output declares a named, typed value an action produces.
type Output struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ExecutionPolicy controls how an action is executed by default.
type ExecutionPolicy struct {
	DryRunDefault bool `json:"dryRunDefault"`
}

// Action is a named, typed capability declared by a site.
type Action struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Goals       []string `json:"goals,omitempty"`
	Inputs      []Input  `json:"inputs"`
	Outputs     []Output `json:"outputs,omitempty"`

	// UIHint is opaque to the core and passed through unexamined. Only the
	// optional binding adapter ever looks inside it.
	UIHint json.RawMessage `json:"ui_hint,omitempty"`

	ExecutionPolicy ExecutionPolicy `json:"executionPolicy"`
}

// Manifest is the loaded, immutable action catalog for a site. It is shared
// read-only across invocations; nothing in the core mutates it post-load.
type Manifest struct {
	Schema      string                `json:"$schema,omitempty"`
	Version     string                `json:"version,omitempty"`
	Site        string                `json:"site,omitempty"`
	Goals       []Goal                `json:"goals"`
	StateModels map[string]StateModel `json:"stateModels,omitempty"`
	Actions     []Action              `json:"actions"`

	// Origin identifies where the document came from (file path, URL, or
	// "inline"). It is set by the loader and feeds trace provenance.
	Origin string `json:"-"`
}

// GoalInstance is a concrete invocation: a caller-stated objective plus the
// candidate values for the resolved action's slots.
type GoalInstance struct {
	ID          string            `json:"id,omitempty"`
	Description string            `json:"description"`
	Values      map[string]string `json:"values"`
}
