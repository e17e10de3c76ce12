// Package optionsource resolves a field's named option source into a
// normalized list of selectable options. Resolution is a pure function of the
// descriptor and a caller-supplied table; there is no process-wide option
// cache.
package optionsource

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-metaform/pkg/model"
)

// Option is one selectable entry. Raw keeps the original record so renderers
// can lay options out in tabular form when a source shares an object shape.
type Option struct {
	Value string
	Label string
	Raw   any
}

// Table maps option-source ids to their heterogeneous option records. Records
// are commonly maps, but bare strings and numbers are accepted too.
type Table map[string][]any

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithLogger attaches a logger for resolution diagnostics. Unknown sources
// and undecodable records are logged and degrade to empty results, never
// errors.
func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver normalizes option records for selection fields.
type Resolver struct {
	logger *zap.Logger
}

// New constructs a Resolver.
func New(options ...ResolverOption) *Resolver {
	r := &Resolver{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Resolve returns the normalized options for a field. It never fails: a
// missing source id or unknown source yields an empty list.
func (r *Resolver) Resolve(field model.Field, table Table) []Option {
	sourceID := strings.TrimSpace(field.OptionSource)
	if sourceID == "" {
		return nil
	}

	records, ok := lookupSource(table, sourceID)
	if !ok {
		r.logger.Warn("option resolver: unknown option source",
			zap.String("field", field.Key), zap.String("source", sourceID))
		return nil
	}

	options := make([]Option, 0, len(records))
	for _, record := range records {
		option, ok := normalizeRecord(record)
		if !ok {
			continue
		}
		options = append(options, option)
	}
	return options
}

// lookupSource tries an exact id match before falling back to a
// case-insensitive scan.
func lookupSource(table Table, id string) ([]any, bool) {
	if records, ok := table[id]; ok {
		return records, true
	}
	for key, records := range table {
		if strings.EqualFold(key, id) {
			return records, true
		}
	}
	return nil, false
}

var (
	valueKeys = []string{"value", "id", "code"}
	labelKeys = []string{"label", "description", "name"}
)

func normalizeRecord(record any) (Option, bool) {
	switch typed := record.(type) {
	case map[string]any:
		value := firstString(typed, valueKeys)
		label := firstString(typed, labelKeys)
		if value == "" && label == "" {
			if composite := compositeName(typed); composite != "" {
				value, label = composite, composite
			}
		}
		if value == "" {
			value = label
		}
		if label == "" {
			label = value
		}
		if value == "" {
			return Option{}, false
		}
		return Option{Value: value, Label: label, Raw: typed}, true
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return Option{}, false
		}
		return Option{Value: trimmed, Label: trimmed, Raw: typed}, true
	case nil:
		return Option{}, false
	default:
		rendered := strings.TrimSpace(fmt.Sprint(typed))
		if rendered == "" {
			return Option{}, false
		}
		return Option{Value: rendered, Label: rendered, Raw: typed}, true
	}
}

func firstString(record map[string]any, keys []string) string {
	for _, key := range keys {
		raw, ok := record[key]
		if !ok || raw == nil {
			continue
		}
		if str, ok := raw.(string); ok {
			if trimmed := strings.TrimSpace(str); trimmed != "" {
				return trimmed
			}
			continue
		}
		if rendered := strings.TrimSpace(fmt.Sprint(raw)); rendered != "" {
			return rendered
		}
	}
	return ""
}

// compositeName assembles a display name from split name fields, the way
// person-shaped option records tend to arrive.
func compositeName(record map[string]any) string {
	first := firstString(record, []string{"first_name", "firstname", "given_name"})
	last := firstString(record, []string{"last_name", "lastname", "surname", "family_name"})
	return strings.TrimSpace(strings.Join(trimEmpty([]string{first, last}), " "))
}

func trimEmpty(in []string) []string {
	out := in[:0]
	for _, item := range in {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
