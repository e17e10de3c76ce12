package model

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-metaform/pkg/schema"
)

// Normalizer converts raw field-metadata definitions into canonical Field
// descriptors. Malformed definitions never abort the run; the normalizer
// repairs what it can, logs what it dropped, and keeps going.
type Normalizer struct {
	opts Options
}

// New creates a Normalizer with the supplied options.
func New(options Options) *Normalizer {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.Logger != nil {
		opts.Logger = options.Logger
	}
	return &Normalizer{opts: opts}
}

// Normalize produces the ordered descriptor list for a raw schema.
func (n *Normalizer) Normalize(raw schema.RawSchema) (Form, error) {
	fields := n.normalizeFields(raw.Fields)
	return Form{Fields: fields}, nil
}

func (n *Normalizer) normalizeFields(raws []schema.RawField) []Field {
	var fields []Field
	seen := make(map[string]struct{}, len(raws))

	for _, raw := range raws {
		field, ok := n.normalizeField(raw)
		if !ok {
			continue
		}
		if _, dup := seen[field.Key]; dup {
			n.opts.Logger.Warn("schema normalizer: duplicate field key, definition dropped",
				zap.String("key", field.Key))
			continue
		}
		seen[field.Key] = struct{}{}
		fields = append(fields, field)
	}
	return fields
}

func (n *Normalizer) normalizeField(raw schema.RawField) (Field, bool) {
	field := Field{
		Pattern:      raw.Pattern,
		OptionSource: raw.OptionSource,
		WireKey:      raw.WireKey,
		Required:     raw.Mandatory,
		Bounds: Bounds{
			MinLength: raw.MinLength,
			MaxLength: raw.MaxLength,
			Minimum:   raw.Min,
			Maximum:   raw.Max,
			Decimals:  raw.Decimals,
		},
	}
	if raw.MaxEntries != nil && *raw.MaxEntries > 0 {
		field.Bounds.MaxEntries = *raw.MaxEntries
	}

	base, ordinal := splitTemplatePath(raw.Path)
	switch {
	case ordinal > 0:
		field.TemplateBase = base
		field.TemplateOrdinal = ordinal
		field.Key = templateKey(base, ordinal)
	case raw.Name != "":
		field.Key = raw.Name
	case raw.Path != "":
		field.Key = strings.ReplaceAll(raw.Path, ".", "_")
	default:
		n.opts.Logger.Warn("schema normalizer: definition without name or path dropped")
		return Field{}, false
	}

	field.Type = n.resolveType(raw, &field)
	field.Cardinality = resolveCardinality(raw, field.Type)
	field.Anchor = raw.Anchor || isAnchorName(labelSeed(raw, field.Key))

	field.Label = strings.TrimSpace(raw.Label)
	if field.Label == "" {
		field.Label = n.opts.Labeler(labelSeed(raw, field.Key))
	}

	if field.Type == ValueTypeGroup {
		field.Children = n.normalizeChildren(raw)
	} else if len(raw.Fields) > 0 {
		// Children on a non-group definition violate the descriptor
		// invariant; the group shape wins.
		n.opts.Logger.Warn("schema normalizer: children on non-group field, coercing to group",
			zap.String("key", field.Key), zap.String("type", string(field.Type)))
		field.Type = ValueTypeGroup
		field.Cardinality = resolveCardinality(raw, field.Type)
		field.Children = n.normalizeChildren(raw)
	}

	if len(raw.Extra) > 0 {
		field.Extensions = make(map[string]any, len(raw.Extra))
		for key, value := range raw.Extra {
			field.Extensions[key] = value
		}
	}

	return field, true
}

func (n *Normalizer) normalizeChildren(raw schema.RawField) []Field {
	children := n.normalizeFields(raw.Fields)
	for i := range children {
		if isAnchorName(children[i].Key) {
			children[i].Anchor = true
		}
	}
	return children
}

func (n *Normalizer) resolveType(raw schema.RawField, field *Field) ValueType {
	declared := ValueType(strings.ToLower(strings.TrimSpace(raw.Type)))
	switch {
	case declared == "":
		if raw.OptionSource != "" {
			return ValueTypeDropdown
		}
		if len(raw.Fields) > 0 {
			return ValueTypeGroup
		}
		return ValueTypeString
	case declared.Valid():
		return declared
	default:
		n.opts.Logger.Warn("schema normalizer: unknown value type, falling back to string",
			zap.String("key", field.Key), zap.String("type", raw.Type))
		if field.Extensions == nil {
			field.Extensions = make(map[string]any, 1)
		}
		field.Extensions["type"] = raw.Type
		return ValueTypeString
	}
}

func resolveCardinality(raw schema.RawField, valueType ValueType) Cardinality {
	if valueType == ValueTypeGroup {
		if raw.Multivalued {
			return CardinalityGroupMulti
		}
		return CardinalityGroupSingle
	}
	if raw.Multivalued {
		return CardinalityMulti
	}
	return CardinalitySingle
}

// splitTemplatePath recognizes dotted paths ending in a numeric repeat suffix
// such as "field.name.1". The suffix marks the definition as a cloneable
// template block.
func splitTemplatePath(path string) (base string, ordinal int) {
	idx := strings.LastIndex(path, ".")
	if idx <= 0 || idx == len(path)-1 {
		return "", 0
	}
	suffix := path[idx+1:]
	n := 0
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return "", 0
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return "", 0
	}
	return path[:idx], n
}

func labelSeed(raw schema.RawField, key string) string {
	if raw.Name != "" {
		return raw.Name
	}
	base, ordinal := splitTemplatePath(raw.Path)
	if ordinal > 0 {
		if idx := strings.LastIndex(base, "."); idx >= 0 {
			return base[idx+1:]
		}
		return base
	}
	return key
}

func isAnchorName(name string) bool {
	switch strings.ToLower(name) {
	case "name", "type":
		return true
	default:
		return false
	}
}
