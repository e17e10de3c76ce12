// Package openapi converts OpenAPI 3 component schemas into raw form
// schemas, so metadata documents and API specifications feed the same
// normalization pipeline.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-metaform/pkg/schema"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger attaches a logger for skipped-property diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithExternalRefs allows the loader to resolve references outside the
// document. Off unless the caller opts in.
func WithExternalRefs() Option {
	return func(a *Adapter) {
		a.externalRefs = true
	}
}

// Adapter extracts raw field definitions from OpenAPI documents.
type Adapter struct {
	logger       *zap.Logger
	externalRefs bool
}

// New constructs an Adapter.
func New(options ...Option) *Adapter {
	a := &Adapter{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// RawSchema loads the document and converts the named component schema. The
// component must be an object schema; its properties become the raw fields
// in sorted name order (OpenAPI objects carry no property order).
func (a *Adapter) RawSchema(ctx context.Context, data []byte, component string) (schema.RawSchema, error) {
	if err := ctx.Err(); err != nil {
		return schema.RawSchema{}, err
	}
	if len(data) == 0 {
		return schema.RawSchema{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: a.externalRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return schema.RawSchema{}, fmt.Errorf("openapi: load document: %w", err)
	}

	if spec.Components == nil || spec.Components.Schemas == nil {
		return schema.RawSchema{}, fmt.Errorf("openapi: document has no component schemas")
	}
	ref, ok := spec.Components.Schemas[component]
	if !ok {
		return schema.RawSchema{}, fmt.Errorf("openapi: component schema %q not found", component)
	}
	target := deref(ref)
	if target == nil || !target.Type.Is(openapi3.TypeObject) {
		return schema.RawSchema{}, fmt.Errorf("openapi: component schema %q is not an object", component)
	}

	return schema.RawSchema{Fields: a.objectFields(target)}, nil
}

func (a *Adapter) objectFields(object *openapi3.Schema) []schema.RawField {
	required := make(map[string]bool, len(object.Required))
	for _, name := range object.Required {
		required[name] = true
	}

	names := make([]string, 0, len(object.Properties))
	for name := range object.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]schema.RawField, 0, len(names))
	for _, name := range names {
		property := deref(object.Properties[name])
		if property == nil {
			a.logger.Warn("skipping unresolvable property", zap.String("property", name))
			continue
		}
		fields = append(fields, a.field(name, property, required[name]))
	}
	return fields
}

func (a *Adapter) field(name string, property *openapi3.Schema, required bool) schema.RawField {
	field := schema.RawField{
		Name:      name,
		Label:     strings.TrimSpace(property.Title),
		Mandatory: required,
	}

	if items := deref(property.Items); property.Type.Is(openapi3.TypeArray) && items != nil {
		field.Multivalued = true
		if property.MaxItems != nil {
			max := int(*property.MaxItems)
			field.MaxEntries = &max
		}
		property = items
	}

	if property.Type.Is(openapi3.TypeObject) && len(property.Properties) > 0 {
		field.Type = "group"
		field.Fields = a.objectFields(property)
		return field
	}

	field.Type = valueType(property)
	applyConstraints(&field, property)

	if description := strings.TrimSpace(property.Description); description != "" {
		field.Extra = map[string]any{"help": description}
	}
	if len(property.Enum) > 0 {
		if field.Extra == nil {
			field.Extra = make(map[string]any, 1)
		}
		field.Extra["enum"] = append([]any(nil), property.Enum...)
	}
	return field
}

func valueType(property *openapi3.Schema) string {
	if len(property.Enum) > 0 {
		return "dropdown"
	}
	switch {
	case property.Type.Is(openapi3.TypeBoolean):
		return "boolean"
	case property.Type.Is(openapi3.TypeInteger):
		return "integer"
	case property.Type.Is(openapi3.TypeNumber):
		return "decimal"
	}

	switch strings.ToLower(strings.TrimSpace(property.Format)) {
	case "date":
		return "date"
	case "date-time":
		return "datetime"
	case "time":
		return "time"
	case "email":
		return "email"
	case "password":
		return "password"
	case "uri", "url":
		return "url"
	case "binary", "byte":
		return "file"
	}
	return "string"
}

func applyConstraints(field *schema.RawField, property *openapi3.Schema) {
	if property.MinLength > 0 {
		min := int(property.MinLength)
		field.MinLength = &min
	}
	if property.MaxLength != nil {
		max := int(*property.MaxLength)
		field.MaxLength = &max
	}
	if property.Min != nil {
		field.Min = property.Min
	}
	if property.Max != nil {
		field.Max = property.Max
	}
	if pattern := strings.TrimSpace(property.Pattern); pattern != "" {
		field.Pattern = pattern
	}
}

func deref(ref *openapi3.SchemaRef) *openapi3.Schema {
	if ref == nil {
		return nil
	}
	return ref.Value
}
