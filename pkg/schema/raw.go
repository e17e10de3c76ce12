package schema

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawField is one unnormalized field definition exactly as found in a
// metadata document. Recognized keys are lifted into typed attributes; every
// other key is preserved opaquely in Extra so downstream descriptors can pass
// it through without interpretation.
type RawField struct {
	// Path is the dotted source path the definition was keyed by, e.g.
	// "field.name.1". Empty when the document supplied a plain list.
	Path string

	Name         string
	Label        string
	Type         string
	Mandatory    bool
	Multivalued  bool
	Anchor       bool
	MinLength    *int
	MaxLength    *int
	Min          *float64
	Max          *float64
	Decimals     *int
	MaxEntries   *int
	Pattern      string
	OptionSource string
	WireKey      string
	Fields       []RawField
	Extra        map[string]any
}

// RawSchema is the ordered set of raw field definitions decoded from one
// document. Mapping-keyed documents preserve their document order.
type RawSchema struct {
	Fields []RawField
}

// ParseDocument decodes a JSON or YAML metadata document into a RawSchema.
// Documents are either a list of field definitions or a mapping keyed by
// dotted field path. JSON is parsed through the YAML decoder, which accepts
// it as a subset and keeps mapping entries in document order.
func ParseDocument(doc Document) (RawSchema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc.Raw(), &root); err != nil {
		return RawSchema{}, fmt.Errorf("schema: parse %s: %w", doc.Location(), err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return RawSchema{}, fmt.Errorf("schema: document %s is empty", doc.Location())
		}
		node = node.Content[0]
	}

	fields, err := fieldsFromNode(node)
	if err != nil {
		return RawSchema{}, fmt.Errorf("schema: document %s: %w", doc.Location(), err)
	}
	return RawSchema{Fields: fields}, nil
}

func fieldsFromNode(node *yaml.Node) ([]RawField, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		fields := make([]RawField, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.MappingNode {
				// Malformed entries are skipped, not fatal.
				continue
			}
			fields = append(fields, rawFieldFromNode("", item))
		}
		return fields, nil
	case yaml.MappingNode:
		fields := make([]RawField, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			value := node.Content[i+1]
			if value.Kind != yaml.MappingNode {
				continue
			}
			fields = append(fields, rawFieldFromNode(key, value))
		}
		return fields, nil
	default:
		return nil, fmt.Errorf("expected a mapping or a list of field definitions")
	}
}

func rawFieldFromNode(path string, node *yaml.Node) RawField {
	field := RawField{Path: path}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		switch key {
		case "field_name", "name":
			field.Name = scalarString(value)
		case "label":
			field.Label = scalarString(value)
		case "type":
			field.Type = scalarString(value)
		case "mandatory", "required":
			field.Mandatory = scalarBool(value)
		case "multivalued", "multi":
			field.Multivalued = scalarBool(value)
		case "anchor":
			field.Anchor = scalarBool(value)
		case "min_length":
			field.MinLength = scalarInt(value)
		case "max_length":
			field.MaxLength = scalarInt(value)
		case "min":
			field.Min = scalarFloat(value)
		case "max":
			field.Max = scalarFloat(value)
		case "decimals":
			field.Decimals = scalarInt(value)
		case "max_multifield", "max_entries":
			field.MaxEntries = scalarInt(value)
		case "pattern":
			field.Pattern = scalarString(value)
		case "wire_name":
			field.WireKey = scalarString(value)
		case "dropdown":
			field.OptionSource = optionSourceFromNode(value)
		case "dropdown.source":
			field.OptionSource = scalarString(value)
		case "fields":
			children, err := fieldsFromNode(value)
			if err == nil {
				field.Fields = children
			}
		default:
			var extra any
			if err := value.Decode(&extra); err != nil {
				continue
			}
			if field.Extra == nil {
				field.Extra = make(map[string]any)
			}
			field.Extra[key] = extra
		}
	}

	return field
}

// optionSourceFromNode accepts both shapes the wild metadata uses: a nested
// mapping `dropdown: {source: countries}` and a bare scalar source id.
func optionSourceFromNode(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return strings.TrimSpace(node.Value)
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "source" {
				return scalarString(node.Content[i+1])
			}
		}
	}
	return ""
}

func scalarString(node *yaml.Node) string {
	if node.Kind != yaml.ScalarNode {
		return ""
	}
	return strings.TrimSpace(node.Value)
}

// scalarBool tolerates the boolean spellings metadata documents actually
// contain: true/false, yes/no, y/n, 1/0.
func scalarBool(node *yaml.Node) bool {
	raw := strings.ToLower(scalarString(node))
	switch raw {
	case "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}

func scalarInt(node *yaml.Node) *int {
	raw := scalarString(node)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func scalarFloat(node *yaml.Node) *float64 {
	raw := scalarString(node)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
