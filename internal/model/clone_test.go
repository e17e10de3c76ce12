package model

import "testing"

func TestCloneTemplateAnchorKeepsLabel(t *testing.T) {
	tpl := Field{
		Key:             "field.name.1",
		Label:           "Name",
		Type:            ValueTypeString,
		Cardinality:     CardinalitySingle,
		Required:        true,
		Anchor:          true,
		TemplateBase:    "field.name",
		TemplateOrdinal: 1,
	}

	clone, err := CloneTemplate(tpl, 2)
	if err != nil {
		t.Fatalf("clone template: %v", err)
	}
	if clone.Key != "field.name.2" {
		t.Fatalf("expected renumbered key field.name.2, got %q", clone.Key)
	}
	if clone.Label != "Name" {
		t.Fatalf("expected anchor label to stay Name, got %q", clone.Label)
	}
	if clone.TemplateOrdinal != 2 {
		t.Fatalf("expected ordinal 2, got %d", clone.TemplateOrdinal)
	}
	if !clone.Required {
		t.Fatalf("expected required to carry over")
	}
}

func TestCloneTemplateNonAnchorSuffixesLabel(t *testing.T) {
	tpl := Field{
		Key:             "field.comment.1",
		Label:           "Comment",
		Type:            ValueTypeTextarea,
		Cardinality:     CardinalitySingle,
		TemplateBase:    "field.comment",
		TemplateOrdinal: 1,
		Bounds:          Bounds{MaxLength: intPtr(255)},
	}

	clone, err := CloneTemplate(tpl, 2)
	if err != nil {
		t.Fatalf("clone template: %v", err)
	}
	if clone.Label != "Comment 2" {
		t.Fatalf("expected suffixed label, got %q", clone.Label)
	}
	if clone.Bounds.MaxLength == nil || *clone.Bounds.MaxLength != 255 {
		t.Fatalf("expected bounds to carry over")
	}

	// Bounds must be independent copies, not aliases of the template.
	*clone.Bounds.MaxLength = 10
	if *tpl.Bounds.MaxLength != 255 {
		t.Fatalf("clone aliased the template bounds")
	}
}

func TestCloneTemplateDoesNotAccumulateSuffixes(t *testing.T) {
	tpl := Field{
		Key:             "field.comment.2",
		Label:           "Comment 2",
		Type:            ValueTypeTextarea,
		TemplateBase:    "field.comment",
		TemplateOrdinal: 2,
	}

	clone, err := CloneTemplate(tpl, 3)
	if err != nil {
		t.Fatalf("clone template: %v", err)
	}
	if clone.Label != "Comment 3" {
		t.Fatalf("expected label Comment 3, got %q", clone.Label)
	}
}

func TestCloneTemplateRejectsNonTemplate(t *testing.T) {
	if _, err := CloneTemplate(Field{Key: "plain"}, 2); err == nil {
		t.Fatalf("expected error cloning a non-template field")
	}
}
