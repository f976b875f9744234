// File: internal/validation/validator.go
// Description: Pure per-slot constraint validation. Verdicts are data, never
// errors: a failed validation is an expected, reportable outcome.

package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MLouchini/sitepilot/api/schemas"
)

// datePartRe matches one half of a date-range value: four digits, dash, two
// digits, dash, two digits. No chronological check is performed on the two
// halves; start/end ordering is deliberately out of scope.
var datePartRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validator evaluates one input slot at a time. It holds no state, touches no
// presentation surface, and the same (slot, value) pair always yields an
// identical verdict.
type Validator struct{}

// New creates a constraint validator.
func New() *Validator {
	return &Validator{}
}

// Validate produces the verdict for one declared input. present distinguishes
// an absent value from a supplied empty string. Checks run in strict order:
// requiredness first, then optional absence, then the declared constraint.
func (v *Validator) Validate(in schemas.Input, raw string, present bool) schemas.ValidationVerdict {
	if in.Required && (!present || raw == "") {
		return schemas.ValidationVerdict{Slot: in.Name, Valid: false, Reason: schemas.ReasonRequiredEmpty}
	}
	if !present {
		// Absence of an optional value is not a failure.
		return schemas.ValidationVerdict{Slot: in.Name, Valid: true, Reason: schemas.ReasonNoConstraints}
	}
	if in.Constraint == nil {
		return schemas.ValidationVerdict{Slot: in.Name, Valid: true, Reason: schemas.ReasonNoConstraints}
	}

	c := in.Constraint
	switch c.Kind {
	case schemas.ConstraintPattern:
		if matchFull(c.Pattern, raw) {
			return pass(in.Name)
		}
		return fail(in.Name, "Invalid format: "+c.Description)

	case schemas.ConstraintFormat:
		// date-range is the only structured-format kind.
		if validDateRange(raw) {
			return pass(in.Name)
		}
		return fail(in.Name, "Invalid format: "+c.Description)

	case schemas.ConstraintNumericMinimum:
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil && value >= c.Minimum {
			return pass(in.Name)
		}
		return fail(in.Name, numericReason(c))

	default:
		// The loader rejects unknown kinds; an unrecognized kind reaching
		// this point still fails closed.
		return fail(in.Name, "Invalid format: "+c.Description)
	}
}

func pass(slot string) schemas.ValidationVerdict {
	return schemas.ValidationVerdict{Slot: slot, Valid: true, Reason: schemas.ReasonPassed}
}

func fail(slot, reason string) schemas.ValidationVerdict {
	return schemas.ValidationVerdict{Slot: slot, Valid: false, Reason: reason}
}

// matchFull reports whether the whole value matches the expression. The
// loader guarantees manifest patterns compile; a non-compiling pattern still
// fails closed rather than panicking.
func matchFull(pattern, value string) bool {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

func validDateRange(raw string) bool {
	parts := strings.Split(raw, "/")
	if len(parts) != 2 {
		return false
	}
	return datePartRe.MatchString(parts[0]) && datePartRe.MatchString(parts[1])
}

func numericReason(c *schemas.Constraint) string {
	if c.Description != "" {
		return c.Description
	}
	if c.Currency != "" {
		return fmt.Sprintf("Value must be at least %v %s", c.Minimum, c.Currency)
	}
	return fmt.Sprintf("Value must be at least %v", c.Minimum)
}
