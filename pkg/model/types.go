package model

import internalmodel "github.com/goliatone/go-metaform/internal/model"

// ValueType re-exports the internal value-type enumeration.
type ValueType = internalmodel.ValueType

const (
	ValueTypeString      = internalmodel.ValueTypeString
	ValueTypeText        = internalmodel.ValueTypeText
	ValueTypeTextarea    = internalmodel.ValueTypeTextarea
	ValueTypeInteger     = internalmodel.ValueTypeInteger
	ValueTypeDecimal     = internalmodel.ValueTypeDecimal
	ValueTypeAmount      = internalmodel.ValueTypeAmount
	ValueTypeDate        = internalmodel.ValueTypeDate
	ValueTypeDateTime    = internalmodel.ValueTypeDateTime
	ValueTypeTime        = internalmodel.ValueTypeTime
	ValueTypeEmail       = internalmodel.ValueTypeEmail
	ValueTypeTel         = internalmodel.ValueTypeTel
	ValueTypeURL         = internalmodel.ValueTypeURL
	ValueTypePassword    = internalmodel.ValueTypePassword
	ValueTypeBoolean     = internalmodel.ValueTypeBoolean
	ValueTypeDropdown    = internalmodel.ValueTypeDropdown
	ValueTypeSelect      = internalmodel.ValueTypeSelect
	ValueTypeRadio       = internalmodel.ValueTypeRadio
	ValueTypeMultiselect = internalmodel.ValueTypeMultiselect
	ValueTypeFile        = internalmodel.ValueTypeFile
	ValueTypeImage       = internalmodel.ValueTypeImage
	ValueTypeColor       = internalmodel.ValueTypeColor
	ValueTypeReference   = internalmodel.ValueTypeReference
	ValueTypeGroup       = internalmodel.ValueTypeGroup
)

// Cardinality re-exports the internal cardinality enumeration.
type Cardinality = internalmodel.Cardinality

const (
	CardinalitySingle      = internalmodel.CardinalitySingle
	CardinalityMulti       = internalmodel.CardinalityMulti
	CardinalityGroupSingle = internalmodel.CardinalityGroupSingle
	CardinalityGroupMulti  = internalmodel.CardinalityGroupMulti
)

type Bounds = internalmodel.Bounds
type Field = internalmodel.Field
type Form = internalmodel.Form
type Issue = internalmodel.Issue

// KnownValueTypes lists the closed ValueType set in stable order.
func KnownValueTypes() []ValueType {
	return internalmodel.KnownValueTypes()
}

// CloneTemplate spawns a renumbered descriptor from a templated field.
func CloneTemplate(tpl Field, ordinal int) (Field, error) {
	return internalmodel.CloneTemplate(tpl, ordinal)
}

// Check reports structural defects in a normalized form.
func Check(form Form) []Issue {
	return internalmodel.Check(form)
}

// DefaultLabeler converts a field key into a display label.
func DefaultLabeler(key string) string {
	return internalmodel.DefaultLabeler(key)
}
