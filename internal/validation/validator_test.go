package validation_test

import (
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/stretchr/testify/assert"

	"github.com/MLouchini/sitepilot/api/schemas"
	"github.com/MLouchini/sitepilot/internal/validation"
)

func patternInput(name string, required bool, pattern, description string) schemas.Input {
	return schemas.Input{
		Name:     name,
		Type:     "text",
		Required: required,
		Constraint: &schemas.Constraint{
			Kind:        schemas.ConstraintPattern,
			Pattern:     pattern,
			Description: description,
		},
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	v := validation.New()

	dateRangeInput := schemas.Input{
		Name:     "date_range",
		Type:     "date-range",
		Required: true,
		Constraint: &schemas.Constraint{
			Kind:        schemas.ConstraintFormat,
			Format:      schemas.FormatDateRange,
			Description: "Travel dates as YYYY-MM-DD/YYYY-MM-DD.",
		},
	}
	budgetInput := schemas.Input{
		Name:     "max_budget",
		Type:     "currency",
		Required: false,
		Constraint: &schemas.Constraint{
			Kind:        schemas.ConstraintNumericMinimum,
			Minimum:     100,
			Currency:    "USD",
			Description: "Budget must be at least 100 USD.",
		},
	}

	testCases := []struct {
		name       string
		input      schemas.Input
		raw        string
		present    bool
		wantValid  bool
		wantReason string
	}{
		{
			name:       "required slot absent",
			input:      patternInput("origin", true, "[A-Z]{3}", "IATA airport code (3 uppercase letters)."),
			present:    false,
			wantValid:  false,
			wantReason: schemas.ReasonRequiredEmpty,
		},
		{
			name:       "required slot present but empty",
			input:      patternInput("origin", true, "[A-Z]{3}", "IATA airport code (3 uppercase letters)."),
			raw:        "",
			present:    true,
			wantValid:  false,
			wantReason: schemas.ReasonRequiredEmpty,
		},
		{
			name:       "requiredness outranks the constraint",
			input:      patternInput("origin", true, "[A-Z]{3}", "IATA airport code (3 uppercase letters)."),
			raw:        "",
			present:    false,
			wantValid:  false,
			wantReason: schemas.ReasonRequiredEmpty,
		},
		{
			name:       "optional slot absent passes without running the constraint",
			input:      patternInput("promo", false, "[A-Z]{5}", "Promo codes are 5 uppercase letters."),
			present:    false,
			wantValid:  true,
			wantReason: schemas.ReasonNoConstraints,
		},
		{
			name:       "optional slot supplied must satisfy its constraint",
			input:      patternInput("promo", false, "[A-Z]{5}", "Promo codes are 5 uppercase letters."),
			raw:        "abc",
			present:    true,
			wantValid:  false,
			wantReason: "Invalid format: Promo codes are 5 uppercase letters.",
		},
		{
			name:       "unconstrained slot passes whatever the value",
			input:      schemas.Input{Name: "note", Type: "text", Required: false},
			raw:        "anything at all // <script>",
			present:    true,
			wantValid:  true,
			wantReason: schemas.ReasonNoConstraints,
		},
		{
			name:       "pattern match on full value",
			input:      patternInput("origin", true, "[A-Z]{3}", "IATA airport code (3 uppercase letters)."),
			raw:        "SFO",
			present:    true,
			wantValid:  true,
			wantReason: schemas.ReasonPassed,
		},
		{
			name:       "pattern must cover the whole value not a substring",
			input:      patternInput("origin", true, "[A-Z]{3}", "IATA airport code (3 uppercase letters)."),
			raw:        "SFO1",
			present:    true,
			wantValid:  false,
			wantReason: "Invalid format: IATA airport code (3 uppercase letters).",
		},
		{
			name:       "pattern rejects lowercase",
			input:      patternInput("origin", true, "[A-Z]{3}", "IATA airport code (3 uppercase letters)."),
			raw:        "sfo",
			present:    true,
			wantValid:  false,
			wantReason: "Invalid format: IATA airport code (3 uppercase letters).",
		},
		{
			name:       "well formed date range",
			input:      dateRangeInput,
			raw:        "2026-03-10/2026-03-17",
			present:    true,
			wantValid:  true,
			wantReason: schemas.ReasonPassed,
		},
		{
			name:       "reversed date range still passes, ordering is not checked",
			input:      dateRangeInput,
			raw:        "2026-03-17/2026-03-10",
			present:    true,
			wantValid:  true,
			wantReason: schemas.ReasonPassed,
		},
		{
			name:       "date range with a single date",
			input:      dateRangeInput,
			raw:        "2026-03-10",
			present:    true,
			wantValid:  false,
			wantReason: "Invalid format: Travel dates as YYYY-MM-DD/YYYY-MM-DD.",
		},
		{
			name:       "date range with three segments",
			input:      dateRangeInput,
			raw:        "2026-03-10/2026-03-17/2026-03-20",
			present:    true,
			wantValid:  false,
			wantReason: "Invalid format: Travel dates as YYYY-MM-DD/YYYY-MM-DD.",
		},
		{
			name:       "date range with malformed half",
			input:      dateRangeInput,
			raw:        "2026-03-10/03-17-2026",
			present:    true,
			wantValid:  false,
			wantReason: "Invalid format: Travel dates as YYYY-MM-DD/YYYY-MM-DD.",
		},
		{
			name:       "numeric minimum satisfied",
			input:      budgetInput,
			raw:        "450",
			present:    true,
			wantValid:  true,
			wantReason: schemas.ReasonPassed,
		},
		{
			name:       "numeric minimum boundary is inclusive",
			input:      budgetInput,
			raw:        "100",
			present:    true,
			wantValid:  true,
			wantReason: schemas.ReasonPassed,
		},
		{
			name:       "numeric value below minimum",
			input:      budgetInput,
			raw:        "99.99",
			present:    true,
			wantValid:  false,
			wantReason: "Budget must be at least 100 USD.",
		},
		{
			name:       "non-numeric value fails the numeric constraint",
			input:      budgetInput,
			raw:        "lots",
			present:    true,
			wantValid:  false,
			wantReason: "Budget must be at least 100 USD.",
		},
		{
			name:       "numeric value tolerates surrounding whitespace",
			input:      budgetInput,
			raw:        "  250 ",
			present:    true,
			wantValid:  true,
			wantReason: schemas.ReasonPassed,
		},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verdict := v.Validate(tt.input, tt.raw, tt.present)
			assert.Equal(t, tt.input.Name, verdict.Slot)
			assert.Equal(t, tt.wantValid, verdict.Valid)
			assert.Equal(t, tt.wantReason, verdict.Reason)
		})
	}
}

func TestValidator_NumericReasonWithoutDescription(t *testing.T) {
	t.Parallel()

	v := validation.New()
	in := schemas.Input{
		Name:     "quantity",
		Type:     "number",
		Required: true,
		Constraint: &schemas.Constraint{
			Kind:    schemas.ConstraintNumericMinimum,
			Minimum: 1,
		},
	}
	verdict := v.Validate(in, "0", true)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "Value must be at least 1", verdict.Reason)

	in.Constraint.Currency = "EUR"
	verdict = v.Validate(in, "0", true)
	assert.Equal(t, "Value must be at least 1 EUR", verdict.Reason)
}

// TestValidator_Deterministic checks that re-validating the same slot and
// value yields an identical verdict.
func TestValidator_Deterministic(t *testing.T) {
	t.Parallel()

	v := validation.New()
	in := patternInput("origin", true, "[A-Z]{3}", "IATA airport code (3 uppercase letters).")

	first := v.Validate(in, "SFO", true)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, v.Validate(in, "SFO", true))
	}
}

// FuzzValidate throws arbitrary constraint shapes and values at the validator
// and asserts it never panics and always emits a reason for a failed verdict.
func FuzzValidate(f *testing.F) {
	f.Add([]byte("seed"), "SFO", true)
	f.Add([]byte{0xff, 0x00, 0x41}, "2026-03-10/2026-03-17", false)

	v := validation.New()
	f.Fuzz(func(t *testing.T, structBytes []byte, raw string, present bool) {
		consumer := fuzz.NewConsumer(structBytes)
		var in schemas.Input
		if err := consumer.GenerateStruct(&in); err != nil {
			return
		}
		verdict := v.Validate(in, raw, present)
		if verdict.Slot != in.Name {
			t.Errorf("verdict slot %q does not echo input name %q", verdict.Slot, in.Name)
		}
		if !verdict.Valid && verdict.Reason == "" {
			t.Error("failed verdict carries no reason")
		}
	})
}
