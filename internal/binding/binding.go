// File: internal/binding/binding.go
// Description: Optional adapter between the action contract and a visual
// surface. It maps slot names to field locators declared in an action's
// ui_hint. The core never requires it: resolution and validation are fully
// correct with no binder at all, and a binder contributes nothing to a
// trace's correctness beyond a provenance entry.

package binding

import (
	"context"
	"fmt"

	json "github.com/json-iterator/go"

	"github.com/MLouchini/sitepilot/api/schemas"
)

// uiHint is the shape the static binder understands inside an action's
// otherwise-opaque ui_hint blob.
type uiHint struct {
	Form     string            `json:"form"`
	Strategy string            `json:"strategy"`
	Fields   map[string]string `json:"fields"`
}

// StaticBinder resolves field locators from the ui_hint an action declares in
// the manifest itself. It performs no I/O and never pushes values anywhere;
// presentation-side effects belong to the excluded UI layer.
type StaticBinder struct {
	origin string
}

// NewStaticBinder creates a binder attributed to the given provenance origin.
func NewStaticBinder(origin string) *StaticBinder {
	if origin == "" {
		origin = "ui_hint"
	}
	return &StaticBinder{origin: origin}
}

// Origin implements schemas.Binder.
func (b *StaticBinder) Origin() string { return b.origin }

// Bind implements schemas.Binder. It returns a locator for every supplied
// value whose slot appears in the action's ui_hint fields. Slots without a
// hint are skipped silently; an action with no usable ui_hint is an error so
// callers know no binding was performed.
func (b *StaticBinder) Bind(ctx context.Context, action *schemas.Action, values map[string]string) (map[string]schemas.FieldLocator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(action.UIHint) == 0 {
		return nil, fmt.Errorf("action %q declares no ui_hint", action.ID)
	}

	var hint uiHint
	if err := json.Unmarshal(action.UIHint, &hint); err != nil {
		return nil, fmt.Errorf("action %q has an unreadable ui_hint: %w", action.ID, err)
	}
	if len(hint.Fields) == 0 {
		return nil, fmt.Errorf("action %q ui_hint declares no field locators", action.ID)
	}

	strategy := hint.Strategy
	if strategy == "" {
		strategy = "css"
	}

	locators := make(map[string]schemas.FieldLocator)
	for slot := range values {
		selector, ok := hint.Fields[slot]
		if !ok {
			continue
		}
		locators[slot] = schemas.FieldLocator{
			Slot:     slot,
			Selector: selector,
			Strategy: strategy,
		}
	}
	return locators, nil
}
