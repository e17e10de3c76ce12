package render_test

import (
	"testing"

	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/render"
)

func TestControlRegistryBuiltins(t *testing.T) {
	t.Parallel()

	registry := render.NewControlRegistry()

	cases := []struct {
		name  string
		field model.Field
		want  string
	}{
		{"plain string", model.Field{Type: model.ValueTypeString, Cardinality: model.CardinalitySingle}, render.ControlInput},
		{"textarea", model.Field{Type: model.ValueTypeTextarea, Cardinality: model.CardinalitySingle}, render.ControlTextarea},
		{"boolean", model.Field{Type: model.ValueTypeBoolean, Cardinality: model.CardinalitySingle}, render.ControlCheckbox},
		{"dropdown", model.Field{Type: model.ValueTypeDropdown, Cardinality: model.CardinalitySingle}, render.ControlSelect},
		{"radio", model.Field{Type: model.ValueTypeRadio, Cardinality: model.CardinalitySingle}, render.ControlRadioGroup},
		{"multiselect", model.Field{Type: model.ValueTypeMultiselect, Cardinality: model.CardinalitySingle}, render.ControlMultiSelect},
		{"repeated select", model.Field{Type: model.ValueTypeSelect, Cardinality: model.CardinalityMulti}, render.ControlMultiSelect},
		{"repeated string", model.Field{Type: model.ValueTypeString, Cardinality: model.CardinalityMulti}, render.ControlEntryList},
		{"amount", model.Field{Type: model.ValueTypeAmount, Cardinality: model.CardinalitySingle}, render.ControlNumber},
		{"date", model.Field{Type: model.ValueTypeDate, Cardinality: model.CardinalitySingle}, render.ControlDateInput},
		{"group", model.Field{Type: model.ValueTypeGroup, Cardinality: model.CardinalityGroupMulti}, render.ControlGroupEditor},
		{"file", model.Field{Type: model.ValueTypeFile, Cardinality: model.CardinalitySingle}, render.ControlFilePicker},
	}

	for _, tc := range cases {
		got, ok := registry.Resolve(tc.field)
		if !ok {
			t.Fatalf("%s: no control resolved", tc.name)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestControlRegistryExplicitHint(t *testing.T) {
	t.Parallel()

	registry := render.NewControlRegistry()
	field := model.Field{
		Type:        model.ValueTypeString,
		Cardinality: model.CardinalitySingle,
		Extensions:  map[string]any{"control": "markdown-editor"},
	}

	got, ok := registry.Resolve(field)
	if !ok || got != "markdown-editor" {
		t.Fatalf("expected explicit hint to win, got %q %v", got, ok)
	}
}

func TestControlRegistryCustomPriority(t *testing.T) {
	t.Parallel()

	registry := render.NewControlRegistry()
	registry.Register("currency-input", 110, func(field model.Field) bool {
		return field.Type == model.ValueTypeAmount
	})

	got, ok := registry.Resolve(model.Field{Type: model.ValueTypeAmount, Cardinality: model.CardinalitySingle})
	if !ok || got != "currency-input" {
		t.Fatalf("expected custom matcher to outrank builtin, got %q %v", got, ok)
	}
}
