package metaform_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	metaform "github.com/goliatone/go-metaform"
	"github.com/goliatone/go-metaform/pkg/formstate"
	"github.com/goliatone/go-metaform/pkg/model"
)

const articleDoc = `
short_name:
  label: Short Name
  type: string
  mandatory: yes
  min_length: 2
tags:
  label: Tags
  multivalued: yes
authors:
  label: Authors
  type: group
  multivalued: yes
  fields:
    - name: name
      mandatory: yes
    - name: role
`

func buildFixture(t *testing.T) metaform.Form {
	t.Helper()
	doc, err := metaform.LoadBytes("article", []byte(articleDoc))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	form, err := metaform.BuildForm(doc)
	if err != nil {
		t.Fatalf("BuildForm: %v", err)
	}
	return form
}

func TestBuildFormNormalizesDocument(t *testing.T) {
	form := buildFixture(t)

	if len(form.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(form.Fields))
	}

	short, ok := form.Field("short_name")
	if !ok || !short.Required || short.Type != model.ValueTypeString {
		t.Fatalf("unexpected short_name descriptor: %+v", short)
	}
	tags, _ := form.Field("tags")
	if tags.Cardinality != model.CardinalityMulti {
		t.Fatalf("tags cardinality = %v", tags.Cardinality)
	}
	authors, _ := form.Field("authors")
	if authors.Cardinality != model.CardinalityGroupMulti || len(authors.Children) != 2 {
		t.Fatalf("unexpected authors descriptor: %+v", authors)
	}
	if !authors.Children[0].Anchor {
		t.Fatal("name child should be an anchor")
	}
}

func TestSubmitRejectsInvalidState(t *testing.T) {
	form := buildFixture(t)
	tree := metaform.Initialize(form)

	payload, result := metaform.Submit(form, tree)
	if result.OK {
		t.Fatal("expected validation failure for empty required fields")
	}
	if payload != nil {
		t.Fatalf("payload should be nil on failure, got %v", payload)
	}
	if _, ok := result.Errors["short_name"]; !ok {
		t.Fatalf("missing short_name errors: %v", result.Errors)
	}
}

func TestSubmitProducesWirePayload(t *testing.T) {
	form := buildFixture(t)
	tree := metaform.Initialize(form)

	var err error
	set := func(path formstate.Path, value string) {
		t.Helper()
		tree, err = tree.SetValue(path, value)
		if err != nil {
			t.Fatalf("SetValue(%s): %v", path, err)
		}
	}
	set(formstate.FieldPath("short_name"), "Article")
	set(formstate.FieldPath("tags").At(0), "news")
	set(formstate.FieldPath("authors").At(0).ChildAt("name", 0), "Alice")
	set(formstate.FieldPath("authors").At(0).ChildAt("role", 0), "editor")

	payload, result := metaform.Submit(form, tree)
	if !result.OK {
		t.Fatalf("unexpected validation errors: %v", result.Errors)
	}

	want := map[string]any{
		"short_name": "Article",
		"tags":       []string{"news"},
		"authors": map[string]any{
			"Alice": map[string]any{
				"role.1": "editor",
			},
		},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry, err := metaform.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry: %v", err)
	}
	for _, name := range []string{"htmlform", "tui"} {
		if !registry.Has(name) {
			t.Fatalf("registry missing %q renderer", name)
		}
	}
}
