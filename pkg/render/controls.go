package render

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-metaform/pkg/model"
)

// Control identifiers resolvable by the registry.
const (
	ControlInput       = "input"
	ControlTextarea    = "textarea"
	ControlNumber      = "number"
	ControlPassword    = "password"
	ControlCheckbox    = "checkbox"
	ControlSelect      = "select"
	ControlRadioGroup  = "radio-group"
	ControlMultiSelect = "multi-select"
	ControlFilePicker  = "file-picker"
	ControlColorPicker = "color-picker"
	ControlDateInput   = "date-input"
	ControlEntryList   = "entry-list"
	ControlGroupEditor = "group-editor"
)

// ControlMatcher decides whether a control should handle the supplied
// descriptor.
type ControlMatcher func(field model.Field) bool

type controlRule struct {
	name     string
	priority int
	match    ControlMatcher
	order    int
}

// ControlRegistry resolves the control kind for a descriptor through
// priority-ordered matchers. Higher priority wins; ties fall back to
// registration order. An explicit Extensions["control"] hint on the
// descriptor short-circuits matching, so schemas can pin a control without
// code changes.
type ControlRegistry struct {
	mu    sync.RWMutex
	rules []controlRule
}

// NewControlRegistry constructs a registry with the built-in matchers, which
// cover every value type and cardinality.
func NewControlRegistry() *ControlRegistry {
	reg := &ControlRegistry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority. Duplicate
// names are allowed; the highest-priority match wins during resolution.
func (r *ControlRegistry) Register(name string, priority int, matcher ControlMatcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, controlRule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the control name for a descriptor.
func (r *ControlRegistry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitControl(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]controlRule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

func explicitControl(field model.Field) string {
	if field.Extensions == nil {
		return ""
	}
	if hint, ok := field.Extensions["control"].(string); ok {
		return strings.TrimSpace(hint)
	}
	return ""
}

func (r *ControlRegistry) registerBuiltins() {
	r.Register(ControlGroupEditor, 100, func(field model.Field) bool {
		return field.Cardinality.Grouped()
	})

	r.Register(ControlEntryList, 95, func(field model.Field) bool {
		return field.Cardinality == model.CardinalityMulti && !field.Type.Selection()
	})

	r.Register(ControlMultiSelect, 90, func(field model.Field) bool {
		if field.Type == model.ValueTypeMultiselect {
			return true
		}
		return field.Type.Selection() && field.Cardinality == model.CardinalityMulti
	})

	r.Register(ControlRadioGroup, 85, func(field model.Field) bool {
		return field.Type == model.ValueTypeRadio
	})

	r.Register(ControlSelect, 80, func(field model.Field) bool {
		return field.Type.Selection()
	})

	r.Register(ControlCheckbox, 75, func(field model.Field) bool {
		return field.Type == model.ValueTypeBoolean
	})

	r.Register(ControlTextarea, 70, func(field model.Field) bool {
		return field.Type == model.ValueTypeText || field.Type == model.ValueTypeTextarea
	})

	r.Register(ControlFilePicker, 65, func(field model.Field) bool {
		return field.Type == model.ValueTypeFile || field.Type == model.ValueTypeImage
	})

	r.Register(ControlColorPicker, 60, func(field model.Field) bool {
		return field.Type == model.ValueTypeColor
	})

	r.Register(ControlDateInput, 55, func(field model.Field) bool {
		switch field.Type {
		case model.ValueTypeDate, model.ValueTypeDateTime, model.ValueTypeTime:
			return true
		}
		return false
	})

	r.Register(ControlNumber, 50, func(field model.Field) bool {
		return field.Type.Numeric()
	})

	r.Register(ControlPassword, 45, func(field model.Field) bool {
		return field.Type == model.ValueTypePassword
	})

	// Everything else is a plain text input.
	r.Register(ControlInput, 0, func(model.Field) bool {
		return true
	})
}
