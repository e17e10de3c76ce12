package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/render"
)

func subsetForm() model.Form {
	return model.Form{
		Name: "content_type",
		Fields: []model.Field{
			{
				Key: "short_name", Label: "Short Name",
				Type: model.ValueTypeString, Cardinality: model.CardinalitySingle,
				Extensions: map[string]any{"section": "Basics", "tags": []any{"admin", "core"}},
			},
			{
				Key: "description", Label: "Description",
				Type: model.ValueTypeTextarea, Cardinality: model.CardinalitySingle,
				Extensions: map[string]any{"section": "basics"},
			},
			{
				Key: "tags", Label: "Tags",
				Type: model.ValueTypeString, Cardinality: model.CardinalityMulti,
				Extensions: map[string]any{"tags": "taxonomy, core"},
			},
			{Key: "active", Label: "Active", Type: model.ValueTypeBoolean, Cardinality: model.CardinalitySingle},
		},
	}
}

func fieldKeys(form model.Form) []string {
	keys := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		keys = append(keys, field.Key)
	}
	return keys
}

func TestApplySubsetEmptySelectsEverything(t *testing.T) {
	t.Parallel()

	form := subsetForm()
	filtered := render.ApplySubset(form, render.FieldSubset{})
	if diff := cmp.Diff(fieldKeys(form), fieldKeys(filtered)); diff != "" {
		t.Fatalf("empty subset altered fields (-want +got):\n%s", diff)
	}
}

func TestApplySubsetFilters(t *testing.T) {
	t.Parallel()

	form := subsetForm()
	cases := []struct {
		name   string
		subset render.FieldSubset
		want   []string
	}{
		{"by key", render.FieldSubset{Keys: []string{"Active"}}, []string{"active"}},
		{"by section case-insensitive", render.FieldSubset{Sections: []string{"BASICS"}}, []string{"short_name", "description"}},
		{"by list tag", render.FieldSubset{Tags: []string{"admin"}}, []string{"short_name"}},
		{"by comma tag", render.FieldSubset{Tags: []string{"core"}}, []string{"short_name", "tags"}},
		{"union of filters", render.FieldSubset{Keys: []string{"active"}, Tags: []string{"taxonomy"}}, []string{"tags", "active"}},
	}
	for _, tc := range cases {
		filtered := render.ApplySubset(form, tc.subset)
		if diff := cmp.Diff(tc.want, fieldKeys(filtered)); diff != "" {
			t.Fatalf("%s: unexpected fields (-want +got):\n%s", tc.name, diff)
		}
	}

	if diff := cmp.Diff([]string{"short_name", "description", "tags", "active"}, fieldKeys(form)); diff != "" {
		t.Fatalf("input form mutated (-want +got):\n%s", diff)
	}
}

func TestApplySubsetNoMatchesDropsEveryField(t *testing.T) {
	t.Parallel()

	filtered := render.ApplySubset(subsetForm(), render.FieldSubset{Keys: []string{"missing"}})
	if filtered.Fields != nil {
		t.Fatalf("expected nil fields, got %v", fieldKeys(filtered))
	}
}
