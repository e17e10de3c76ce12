// Package submission flattens validated form state into the wire payload the
// backend collaborator accepts: a flat map of wire keys to values, with group
// fields nested one level as an instance-name keyed object. The transformer
// never mutates the descriptors or the tree and is idempotent for a given
// snapshot.
package submission

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-metaform/pkg/formstate"
	"github.com/goliatone/go-metaform/pkg/model"
)

// Option customises a Transformer.
type Option func(*Transformer)

// WithLogger attaches a logger for skipped-instance diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Transformer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Transformer builds submission payloads from descriptors plus a state tree.
type Transformer struct {
	logger *zap.Logger
}

// New constructs a Transformer.
func New(options ...Option) *Transformer {
	t := &Transformer{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

// Transform builds the payload with a default Transformer.
func Transform(form model.Form, tree *formstate.Tree) map[string]any {
	return New().Transform(form, tree)
}

// Transform walks every descriptor and emits the populated slots. Empty
// trimmed values are omitted, as are multi arrays whose every entry is blank
// and group instances whose name child is unpopulated.
func (t *Transformer) Transform(form model.Form, tree *formstate.Tree) map[string]any {
	payload := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		var node *formstate.Node
		if tree != nil {
			node, _ = tree.Node(field.Key)
		}
		key := WireKey(field)
		switch field.Cardinality {
		case model.CardinalityMulti:
			if entries := t.encodeEntries(field, node); len(entries) > 0 {
				payload[key] = entries
			}
		case model.CardinalityGroupSingle:
			if entry := t.encodeSingleGroup(field, node); len(entry) > 0 {
				payload[key] = entry
			}
		case model.CardinalityGroupMulti:
			if instances := t.encodeGroup(field, node); len(instances) > 0 {
				payload[key] = instances
			}
		default:
			if value := t.encodeScalar(field, scalarValue(node)); value != "" {
				payload[key] = value
			}
		}
	}
	return payload
}

func (t *Transformer) encodeScalar(field model.Field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if field.Type == model.ValueTypeBoolean {
		return encodeBoolean(trimmed)
	}
	return trimmed
}

func (t *Transformer) encodeEntries(field model.Field, node *formstate.Node) []string {
	if node == nil {
		return nil
	}
	var out []string
	for _, entry := range node.Entries {
		if value := t.encodeScalar(field, entry); value != "" {
			out = append(out, value)
		}
	}
	return out
}

// encodeSingleGroup emits the sole instance of a single-cardinality group as
// a map of plain child wire keys. No name keying and no ordinal suffixes:
// those address repeated instances, and a single group has exactly one.
func (t *Transformer) encodeSingleGroup(field model.Field, node *formstate.Node) map[string]any {
	if node == nil || len(node.Instances) == 0 {
		return nil
	}
	instance := node.Instances[0]
	entry := make(map[string]any, len(field.Children))
	for _, child := range field.Children {
		childNode := instance[child.Key]
		childKey := WireKey(child)
		if child.Cardinality == model.CardinalityMulti {
			if values := t.encodeEntries(child, childNode); len(values) > 0 {
				entry[childKey] = values
			}
			continue
		}
		if value := t.encodeScalar(child, scalarValue(childNode)); value != "" {
			entry[childKey] = value
		}
	}
	return entry
}

// encodeGroup flattens group instances into a map keyed by each instance's
// name child value. Every other child is emitted under its wire key suffixed
// with the 1-based instance ordinal, except the type child which stays bare.
// Instances without a populated name child cannot be addressed on the wire
// and are skipped.
func (t *Transformer) encodeGroup(field model.Field, node *formstate.Node) map[string]any {
	if node == nil {
		return nil
	}
	instances := make(map[string]any, len(node.Instances))
	for i, instance := range node.Instances {
		ordinal := i + 1
		name := strings.TrimSpace(childScalar(instance, field, "name"))
		if name == "" {
			t.logger.Warn("skipping group instance without name child",
				zap.String("field", field.Key),
				zap.Int("ordinal", ordinal))
			continue
		}
		entry := make(map[string]any, len(field.Children))
		for _, child := range field.Children {
			childNode := instance[child.Key]
			switch segment := lastSegment(child.Key); segment {
			case "name":
				// Carried as the instance key.
			case "type":
				if value := t.encodeScalar(child, scalarValue(childNode)); value != "" {
					entry["type"] = value
				}
			default:
				childKey := WireKey(child) + "." + strconv.Itoa(ordinal)
				if child.Cardinality == model.CardinalityMulti {
					if values := t.encodeEntries(child, childNode); len(values) > 0 {
						entry[childKey] = values
					}
					continue
				}
				if value := t.encodeScalar(child, scalarValue(childNode)); value != "" {
					entry[childKey] = value
				}
			}
		}
		instances[name] = entry
	}
	return instances
}

// WireKey returns the key a descriptor's value travels under: the explicit
// wire key when the schema supplied one, otherwise the descriptor key with
// non-identifier characters folded to underscores. Dots survive, templated
// keys such as "field.name.1" already match the wire's ordinal convention.
func WireKey(field model.Field) string {
	if field.WireKey != "" {
		return field.WireKey
	}
	return normalizeKey(field.Key)
}

func normalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func encodeBoolean(value string) string {
	switch strings.ToLower(value) {
	case "true", "yes", "y", "1", "on":
		return "Y"
	default:
		return "N"
	}
}

func scalarValue(node *formstate.Node) string {
	if node == nil {
		return ""
	}
	return node.Value
}

func childScalar(instance formstate.Instance, field model.Field, segment string) string {
	for _, child := range field.Children {
		if lastSegment(child.Key) != segment {
			continue
		}
		return scalarValue(instance[child.Key])
	}
	return ""
}

func lastSegment(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[i+1:]
	}
	return key
}
