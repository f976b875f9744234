// File: internal/manifest/loader.go
// Description: Loads site manifest documents and normalizes them into the
// immutable schemas.Manifest value shared by every invocation.

package manifest

import (
	"fmt"
	"os"
	"regexp"

	json "github.com/json-iterator/go"

	"github.com/MLouchini/sitepilot/api/schemas"
)

// SchemaViolationError reports a structural problem in a manifest document.
// It is fatal at load time; no partial manifest is usable.
type SchemaViolationError struct {
	// Path is a JSON-path-like location of the offending field, e.g.
	// "actions[0].inputs[2].constraint". Empty when the whole document is
	// unreadable.
	Path    string
	Message string
}

func (e *SchemaViolationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("manifest schema violation: %s", e.Message)
	}
	return fmt.Sprintf("manifest schema violation at %s: %s", e.Path, e.Message)
}

func violation(path, format string, args ...any) *SchemaViolationError {
	return &SchemaViolationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// document mirrors the raw wire form of a manifest before constraint
// normalization. Constraint kinds arrive shape-sniffed (distinguished by
// which keys are present), so inputs decode through constraintDoc first.
type document struct {
	Schema      string                        `json:"$schema"`
	Version     string                        `json:"version"`
	Site        string                        `json:"site"`
	Goals       []schemas.Goal                `json:"goals"`
	StateModels map[string]schemas.StateModel `json:"stateModels"`
	Actions     []actionDoc                   `json:"actions"`
}

type actionDoc struct {
	ID              string                   `json:"id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	Goals           []string                 `json:"goals"`
	Inputs          []inputDoc               `json:"inputs"`
	Outputs         []schemas.Output         `json:"outputs"`
	UIHint          json.RawMessage          `json:"ui_hint"`
	ExecutionPolicy *schemas.ExecutionPolicy `json:"executionPolicy"`
}

type inputDoc struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Required   bool           `json:"required"`
	Constraint *constraintDoc `json:"constraint"`
}

// constraintDoc uses pointer fields so that key presence (not zero values)
// selects the constraint variant.
type constraintDoc struct {
	Regex       *string  `json:"regex"`
	Format      *string  `json:"format"`
	Minimum     *float64 `json:"minimum"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
}

// Load reads and parses a manifest document from disk. The file path becomes
// the manifest's provenance origin.
func Load(path string) (*schemas.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and structurally validates a manifest document. origin is the
// free-text identifier recorded in trace provenance (a file path, URL, or
// "inline"). The returned manifest is a value type: treat it as read-only.
func Parse(data []byte, origin string) (*schemas.Manifest, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, violation("", "document is not valid JSON: %v", err)
	}

	m := &schemas.Manifest{
		Schema:      doc.Schema,
		Version:     doc.Version,
		Site:        doc.Site,
		Goals:       doc.Goals,
		StateModels: doc.StateModels,
		Origin:      origin,
	}

	goalIDs := make(map[string]bool, len(doc.Goals))
	for i, g := range doc.Goals {
		path := fmt.Sprintf("goals[%d]", i)
		if g.ID == "" {
			return nil, violation(path+".id", "goal id must not be empty")
		}
		if goalIDs[g.ID] {
			return nil, violation(path+".id", "duplicate goal id %q", g.ID)
		}
		goalIDs[g.ID] = true
	}

	actionIDs := make(map[string]bool, len(doc.Actions))
	m.Actions = make([]schemas.Action, 0, len(doc.Actions))
	for i, a := range doc.Actions {
		path := fmt.Sprintf("actions[%d]", i)
		if a.ID == "" {
			return nil, violation(path+".id", "action id must not be empty")
		}
		if actionIDs[a.ID] {
			return nil, violation(path+".id", "duplicate action id %q", a.ID)
		}
		actionIDs[a.ID] = true

		for j, ref := range a.Goals {
			if !goalIDs[ref] {
				return nil, violation(fmt.Sprintf("%s.goals[%d]", path, j),
					"action %q serves undeclared goal %q", a.ID, ref)
			}
		}

		inputs, err := normalizeInputs(path, a.Inputs)
		if err != nil {
			return nil, err
		}

		action := schemas.Action{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Goals:       a.Goals,
			Inputs:      inputs,
			Outputs:     a.Outputs,
			UIHint:      a.UIHint,
		}
		// Absent executionPolicy means execute-by-default; its absence must
		// never break resolution or validation.
		if a.ExecutionPolicy != nil {
			action.ExecutionPolicy = *a.ExecutionPolicy
		}
		m.Actions = append(m.Actions, action)
	}

	return m, nil
}

func normalizeInputs(actionPath string, docs []inputDoc) ([]schemas.Input, error) {
	names := make(map[string]bool, len(docs))
	inputs := make([]schemas.Input, 0, len(docs))
	for i, in := range docs {
		path := fmt.Sprintf("%s.inputs[%d]", actionPath, i)
		if in.Name == "" {
			return nil, violation(path+".name", "input name must not be empty")
		}
		if names[in.Name] {
			return nil, violation(path+".name", "duplicate input name %q", in.Name)
		}
		names[in.Name] = true

		var constraint *schemas.Constraint
		if in.Constraint != nil {
			c, err := normalizeConstraint(path+".constraint", in.Constraint)
			if err != nil {
				return nil, err
			}
			constraint = c
		}
		inputs = append(inputs, schemas.Input{
			Name:       in.Name,
			Type:       in.Type,
			Required:   in.Required,
			Constraint: constraint,
		})
	}
	return inputs, nil
}

// normalizeConstraint maps a shape-sniffed constraint object onto the closed
// tagged variant. Exactly one selector key (regex, format, minimum) must be
// present; anything else is an unknown constraint shape.
func normalizeConstraint(path string, doc *constraintDoc) (*schemas.Constraint, error) {
	selectors := 0
	if doc.Regex != nil {
		selectors++
	}
	if doc.Format != nil {
		selectors++
	}
	if doc.Minimum != nil {
		selectors++
	}
	if selectors != 1 {
		return nil, violation(path, "unknown constraint shape: exactly one of regex, format, minimum must be present (got %d)", selectors)
	}

	switch {
	case doc.Regex != nil:
		if doc.Description == "" {
			return nil, violation(path+".description", "pattern constraint requires a description")
		}
		if _, err := regexp.Compile(*doc.Regex); err != nil {
			return nil, violation(path+".regex", "pattern does not compile: %v", err)
		}
		return &schemas.Constraint{
			Kind:        schemas.ConstraintPattern,
			Pattern:     *doc.Regex,
			Description: doc.Description,
		}, nil

	case doc.Format != nil:
		if doc.Description == "" {
			return nil, violation(path+".description", "format constraint requires a description")
		}
		if *doc.Format != schemas.FormatDateRange {
			return nil, violation(path+".format", "unsupported format kind %q", *doc.Format)
		}
		return &schemas.Constraint{
			Kind:        schemas.ConstraintFormat,
			Format:      *doc.Format,
			Description: doc.Description,
		}, nil

	default:
		return &schemas.Constraint{
			Kind:        schemas.ConstraintNumericMinimum,
			Minimum:     *doc.Minimum,
			Currency:    doc.Currency,
			Description: doc.Description,
		}, nil
	}
}
