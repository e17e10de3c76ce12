package schema_test

import (
	"testing"

	"github.com/goliatone/go-metaform/pkg/schema"
)

func TestParseDocumentMappingKeepsOrder(t *testing.T) {
	raw := []byte(`{
		"field.name.1": {"field_name": "name", "type": "string", "mandatory": true, "max_length": 35},
		"field.email.1": {"field_name": "email", "type": "email", "min_length": 3},
		"field.tags.1": {"field_name": "tags", "multivalued": "yes", "max_multifield": 5}
	}`)
	doc := schema.MustNewDocument(schema.SourceFromBytes("fixture"), raw)

	parsed, err := schema.ParseDocument(doc)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if got := len(parsed.Fields); got != 3 {
		t.Fatalf("expected 3 fields, got %d", got)
	}
	if got := parsed.Fields[0].Path; got != "field.name.1" {
		t.Fatalf("expected first path field.name.1, got %q", got)
	}
	if !parsed.Fields[0].Mandatory {
		t.Fatalf("expected mandatory field")
	}
	if parsed.Fields[0].MaxLength == nil || *parsed.Fields[0].MaxLength != 35 {
		t.Fatalf("expected max_length 35, got %v", parsed.Fields[0].MaxLength)
	}
	if !parsed.Fields[2].Multivalued {
		t.Fatalf("expected multivalued field from yes spelling")
	}
	if parsed.Fields[2].MaxEntries == nil || *parsed.Fields[2].MaxEntries != 5 {
		t.Fatalf("expected max_multifield 5, got %v", parsed.Fields[2].MaxEntries)
	}
}

func TestParseDocumentYAMLListWithGroup(t *testing.T) {
	raw := []byte(`
- field_name: contact
  type: group
  mandatory: true
  multivalued: true
  fields:
    - field_name: phone
      type: tel
      mandatory: true
    - field_name: email
      type: email
- field_name: color
  type: color
  swatch: wide
`)
	doc := schema.MustNewDocument(schema.SourceFromBytes("fixture"), raw)

	parsed, err := schema.ParseDocument(doc)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if got := len(parsed.Fields); got != 2 {
		t.Fatalf("expected 2 fields, got %d", got)
	}

	contact := parsed.Fields[0]
	if contact.Type != "group" || len(contact.Fields) != 2 {
		t.Fatalf("expected group with 2 children, got %q with %d", contact.Type, len(contact.Fields))
	}
	if contact.Fields[0].Name != "phone" || !contact.Fields[0].Mandatory {
		t.Fatalf("expected mandatory phone child, got %+v", contact.Fields[0])
	}

	color := parsed.Fields[1]
	if got, ok := color.Extra["swatch"]; !ok || got != "wide" {
		t.Fatalf("expected swatch extra to pass through, got %v", color.Extra)
	}
}

func TestParseDocumentDropdownShapes(t *testing.T) {
	raw := []byte(`{
		"field.country.1": {"field_name": "country", "dropdown": {"source": "countries"}},
		"field.region.1": {"field_name": "region", "dropdown.source": "regions"}
	}`)
	doc := schema.MustNewDocument(schema.SourceFromBytes("fixture"), raw)

	parsed, err := schema.ParseDocument(doc)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if got := parsed.Fields[0].OptionSource; got != "countries" {
		t.Fatalf("expected nested dropdown source, got %q", got)
	}
	if got := parsed.Fields[1].OptionSource; got != "regions" {
		t.Fatalf("expected flat dropdown source, got %q", got)
	}
}

func TestParseDocumentRejectsScalarRoot(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromBytes("fixture"), []byte(`"just a string"`))
	if _, err := schema.ParseDocument(doc); err == nil {
		t.Fatalf("expected error for scalar document root")
	}
}
