package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metaform/pkg/formstate"
	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/validation"
)

func intPtr(v int) *int { return &v }

func TestRequiredScalar(t *testing.T) {
	engine := validation.New()
	field := model.Field{
		Key: "short_name", Label: "Short Name",
		Type: model.ValueTypeString, Cardinality: model.CardinalitySingle, Required: true,
	}

	errs := engine.Validate(field, &formstate.Node{Shape: formstate.ShapeScalar, Value: ""})
	if errs.Message != "Short Name is required" {
		t.Fatalf("expected required message, got %q", errs.Message)
	}

	errs = engine.Validate(field, &formstate.Node{Shape: formstate.ShapeScalar, Value: "x"})
	if errs.Message != "" {
		t.Fatalf("expected non-empty value to pass, got %q", errs.Message)
	}
}

func TestValidateAllShortNameScenario(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{
			Key: "short_name", Label: "Short Name",
			Type: model.ValueTypeString, Cardinality: model.CardinalitySingle,
			Required: true,
			Bounds:   model.Bounds{MinLength: intPtr(2), MaxLength: intPtr(35)},
		},
	}}
	engine := validation.New()
	tree := formstate.Initialize(form)

	result := engine.ValidateAll(form, tree)
	if result.OK {
		t.Fatalf("expected empty required field to fail")
	}
	if got := result.Errors["short_name"].Message; got != "Short Name is required" {
		t.Fatalf("expected required message, got %q", got)
	}

	tree, err := tree.SetValue(formstate.FieldPath("short_name"), "Al")
	if err != nil {
		t.Fatalf("set value: %v", err)
	}
	result = engine.ValidateAll(form, tree)
	if !result.OK {
		t.Fatalf("expected Al to pass, got %+v", result.Errors)
	}
}

func TestLengthAndPatternMessages(t *testing.T) {
	engine := validation.New()
	field := model.Field{
		Key: "short_name", Label: "Short Name",
		Type: model.ValueTypeString, Cardinality: model.CardinalitySingle,
		Bounds:  model.Bounds{MinLength: intPtr(2), MaxLength: intPtr(5)},
		Pattern: `^[a-z]+$`,
	}

	cases := map[string]string{
		"a":       "Short Name must be at least 2 characters",
		"toolong": "Short Name must be at most 5 characters",
		"UPPER":   "Short Name format is invalid",
		"fine":    "",
	}
	for value, want := range cases {
		errs := engine.Validate(field, &formstate.Node{Shape: formstate.ShapeScalar, Value: value})
		if errs.Message != want {
			t.Fatalf("value %q: expected %q, got %q", value, want, errs.Message)
		}
	}
}

func TestAmountDecimalPlaces(t *testing.T) {
	engine := validation.New()
	field := model.Field{
		Key: "price", Label: "Price",
		Type: model.ValueTypeAmount, Cardinality: model.CardinalitySingle,
		Bounds: model.Bounds{Decimals: intPtr(2)},
	}

	errs := engine.Validate(field, &formstate.Node{Shape: formstate.ShapeScalar, Value: "12.345"})
	if errs.Message != "Price must have at most 2 decimal places" {
		t.Fatalf("expected decimals message, got %q", errs.Message)
	}
	errs = engine.Validate(field, &formstate.Node{Shape: formstate.ShapeScalar, Value: "12.34"})
	if errs.Message != "" {
		t.Fatalf("expected 12.34 to pass, got %q", errs.Message)
	}
	errs = engine.Validate(field, &formstate.Node{Shape: formstate.ShapeScalar, Value: "abc"})
	if errs.Message != "Price must be a valid number" {
		t.Fatalf("expected number message, got %q", errs.Message)
	}
}

func TestMultiFieldEntryMessages(t *testing.T) {
	engine := validation.New()
	field := model.Field{
		Key: "tags", Label: "Tags",
		Type: model.ValueTypeString, Cardinality: model.CardinalityMulti,
		Required: true,
		Bounds:   model.Bounds{MinLength: intPtr(2), MaxEntries: 3},
	}

	// All entries blank on a required field: every slot reports.
	errs := engine.Validate(field, &formstate.Node{Shape: formstate.ShapeMulti, Entries: []string{"", ""}})
	want := []string{"Entry 1: Tags is required", "Entry 2: Tags is required"}
	if diff := cmp.Diff(want, errs.Entries); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}

	// Entries validate independently with index-qualified messages.
	errs = engine.Validate(field, &formstate.Node{Shape: formstate.ShapeMulti, Entries: []string{"ok", "x", ""}})
	want = []string{"", "Entry 2: Tags must be at least 2 characters", ""}
	if diff := cmp.Diff(want, errs.Entries); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
}

func TestMultiFieldCapOverwritesSlotZero(t *testing.T) {
	engine := validation.New()
	field := model.Field{
		Key: "tags", Label: "Tags",
		Type: model.ValueTypeString, Cardinality: model.CardinalityMulti,
		Bounds: model.Bounds{MinLength: intPtr(2), MaxEntries: 3},
	}

	errs := engine.Validate(field, &formstate.Node{
		Shape:   formstate.ShapeMulti,
		Entries: []string{"x", "ok", "ok", "ok"},
	})
	if got := errs.Entries[0]; got != "Tags cannot have more than 3 entries" {
		t.Fatalf("expected array-level message in slot 0, got %q", got)
	}
}

func TestMultiFieldCapAppliesWhenAllEntriesBlank(t *testing.T) {
	engine := validation.New()
	field := model.Field{
		Key: "tags", Label: "Tags",
		Type: model.ValueTypeString, Cardinality: model.CardinalityMulti,
		Required: true,
		Bounds:   model.Bounds{MaxEntries: 2},
	}

	// Loaded state can exceed the cap with blank slots; the array-level
	// message still wins slot 0, per-entry findings keep the rest.
	errs := engine.Validate(field, &formstate.Node{
		Shape:   formstate.ShapeMulti,
		Entries: []string{"", "", ""},
	})
	want := []string{
		"Tags cannot have more than 2 entries",
		"Entry 2: Tags is required",
		"Entry 3: Tags is required",
	}
	if diff := cmp.Diff(want, errs.Entries); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
}

func TestGroupInstanceErrors(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{
			Key: "contact", Label: "Contact",
			Type: model.ValueTypeGroup, Cardinality: model.CardinalityGroupMulti,
			Required: true,
			Children: []model.Field{
				{Key: "phone", Label: "Phone", Type: model.ValueTypeTel, Cardinality: model.CardinalitySingle, Required: true},
				{Key: "email", Label: "Email", Type: model.ValueTypeEmail, Cardinality: model.CardinalitySingle},
			},
		},
	}}
	engine := validation.New()

	tree := formstate.Initialize(form)
	tree, err := tree.SetValue(formstate.FieldPath("contact").At(0).ChildAt("email", -1), "x@y.com")
	if err != nil {
		t.Fatalf("set value: %v", err)
	}

	result := engine.ValidateAll(form, tree)
	if result.OK {
		t.Fatalf("expected missing phone to fail")
	}
	instance := result.Errors["contact"].Instances[0]
	if got := instance["phone"].Message; got != "Phone is required" {
		t.Fatalf("expected phone required, got %q", got)
	}
	if got := instance["email"].Message; got != "" {
		t.Fatalf("expected valid email to pass, got %q", got)
	}
}

func TestValidateAllIsIdempotent(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{Key: "short_name", Label: "Short Name", Type: model.ValueTypeString, Cardinality: model.CardinalitySingle, Required: true},
		{Key: "tags", Label: "Tags", Type: model.ValueTypeString, Cardinality: model.CardinalityMulti},
	}}
	engine := validation.New()
	tree := formstate.Initialize(form)

	first := engine.ValidateAll(form, tree)
	second := engine.ValidateAll(form, tree)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validateAll not idempotent (-first +second):\n%s", diff)
	}
}
