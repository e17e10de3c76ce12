package model

// ValueType is the closed vocabulary of field shapes the engine understands.
// Every engine that dispatches on field type (option resolution, validation,
// submission) keys a single table by ValueType so adding a type is a
// localized, compile-checked change.
type ValueType string

const (
	ValueTypeString      ValueType = "string"
	ValueTypeText        ValueType = "text"
	ValueTypeTextarea    ValueType = "textarea"
	ValueTypeInteger     ValueType = "integer"
	ValueTypeDecimal     ValueType = "decimal"
	ValueTypeAmount      ValueType = "amount"
	ValueTypeDate        ValueType = "date"
	ValueTypeDateTime    ValueType = "datetime"
	ValueTypeTime        ValueType = "time"
	ValueTypeEmail       ValueType = "email"
	ValueTypeTel         ValueType = "tel"
	ValueTypeURL         ValueType = "url"
	ValueTypePassword    ValueType = "password"
	ValueTypeBoolean     ValueType = "boolean"
	ValueTypeDropdown    ValueType = "dropdown"
	ValueTypeSelect      ValueType = "select"
	ValueTypeRadio       ValueType = "radio"
	ValueTypeMultiselect ValueType = "multiselect"
	ValueTypeFile        ValueType = "file"
	ValueTypeImage       ValueType = "image"
	ValueTypeColor       ValueType = "color"
	ValueTypeReference   ValueType = "reference"
	ValueTypeGroup       ValueType = "group"
)

// KnownValueTypes lists every member of the closed ValueType set in a stable
// order. Dispatch tables are checked against it in tests so a new type cannot
// be added without extending every engine.
func KnownValueTypes() []ValueType {
	return []ValueType{
		ValueTypeString, ValueTypeText, ValueTypeTextarea,
		ValueTypeInteger, ValueTypeDecimal, ValueTypeAmount,
		ValueTypeDate, ValueTypeDateTime, ValueTypeTime,
		ValueTypeEmail, ValueTypeTel, ValueTypeURL, ValueTypePassword,
		ValueTypeBoolean,
		ValueTypeDropdown, ValueTypeSelect, ValueTypeRadio, ValueTypeMultiselect,
		ValueTypeFile, ValueTypeImage, ValueTypeColor,
		ValueTypeReference, ValueTypeGroup,
	}
}

// Valid reports whether the value type belongs to the closed set.
func (t ValueType) Valid() bool {
	for _, known := range KnownValueTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Selection reports whether the type draws its values from an option source.
func (t ValueType) Selection() bool {
	switch t {
	case ValueTypeDropdown, ValueTypeSelect, ValueTypeRadio, ValueTypeMultiselect, ValueTypeReference:
		return true
	default:
		return false
	}
}

// Numeric reports whether the type is validated as a number.
func (t ValueType) Numeric() bool {
	switch t {
	case ValueTypeInteger, ValueTypeDecimal, ValueTypeAmount:
		return true
	default:
		return false
	}
}

// Cardinality describes how many values a field holds and whether they are
// scalars or group instances.
type Cardinality string

const (
	CardinalitySingle      Cardinality = "single"
	CardinalityMulti       Cardinality = "multi"
	CardinalityGroupSingle Cardinality = "group-single"
	CardinalityGroupMulti  Cardinality = "group-multi"
)

// Grouped reports whether the cardinality owns nested child descriptors.
func (c Cardinality) Grouped() bool {
	return c == CardinalityGroupSingle || c == CardinalityGroupMulti
}

// Repeated reports whether the cardinality holds an ordered sequence.
func (c Cardinality) Repeated() bool {
	return c == CardinalityMulti || c == CardinalityGroupMulti
}

// Bounds carries the optional constraints attached to a field. Length limits
// apply to the string family, Minimum/Maximum to the numeric family, and
// MaxEntries caps repeated fields. Nil pointers mean unconstrained.
type Bounds struct {
	MinLength  *int
	MaxLength  *int
	Minimum    *float64
	Maximum    *float64
	Decimals   *int
	MaxEntries int
}

// Empty reports whether no constraint is set.
func (b Bounds) Empty() bool {
	return b.MinLength == nil && b.MaxLength == nil &&
		b.Minimum == nil && b.Maximum == nil &&
		b.Decimals == nil && b.MaxEntries == 0
}

// Field is the canonical descriptor for one form field: its identity, shape,
// constraints, and, for group fields, its ordered child descriptors.
type Field struct {
	Key         string
	Label       string
	Type        ValueType
	Cardinality Cardinality
	Required    bool
	Bounds      Bounds
	Pattern     string

	// OptionSource names the option table consulted for selection types.
	OptionSource string

	// WireKey overrides the submission key; empty means derive from Key.
	WireKey string

	// Anchor fields keep their base label when cloned from a template.
	// "name" and "type" children of repeating definition blocks are the
	// canonical anchors.
	Anchor bool

	// TemplateBase and TemplateOrdinal identify descriptors spawned from a
	// dotted template path such as "field.name.1". Ordinal is 1-based and 0
	// for non-templated fields; Key is always TemplateBase + "." + ordinal
	// when set, so renumbering a clone never parses identifier strings.
	TemplateBase    string
	TemplateOrdinal int

	Children []Field

	// Extensions holds unrecognized schema properties passed through
	// untouched.
	Extensions map[string]any
}

// Templated reports whether the descriptor was spawned from a template path.
func (f Field) Templated() bool {
	return f.TemplateOrdinal > 0 && f.TemplateBase != ""
}

// Child returns the child descriptor with the given key.
func (f Field) Child(key string) (Field, bool) {
	for _, child := range f.Children {
		if child.Key == key {
			return child, true
		}
	}
	return Field{}, false
}

// Form is the ordered descriptor list produced by normalizing one schema
// document.
type Form struct {
	Name   string
	Fields []Field
}

// Field returns the top-level descriptor with the given key.
func (f Form) Field(key string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// Keys returns the top-level field keys in descriptor order.
func (f Form) Keys() []string {
	keys := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		keys = append(keys, field.Key)
	}
	return keys
}
