// Package metaform turns declarative field-metadata documents into form
// descriptors, hierarchical form state, validation results, and wire-format
// submission payloads. The subpackages under pkg/ expose each stage; this
// package wires them together for callers that want the whole pipeline.
package metaform

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-metaform/internal/openapi"
	"github.com/goliatone/go-metaform/pkg/formstate"
	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/optionsource"
	"github.com/goliatone/go-metaform/pkg/render"
	"github.com/goliatone/go-metaform/pkg/renderers/htmlform"
	"github.com/goliatone/go-metaform/pkg/renderers/tui"
	"github.com/goliatone/go-metaform/pkg/schema"
	"github.com/goliatone/go-metaform/pkg/submission"
	"github.com/goliatone/go-metaform/pkg/validation"
)

// Form is the canonical descriptor tree produced by normalization.
type Form = model.Form

// Field is one normalized descriptor.
type Field = model.Field

// Tree holds hierarchical form state for a Form.
type Tree = formstate.Tree

// Path addresses one value slot inside a Tree.
type Path = formstate.Path

// RenderOptions carries per-request state into renderers.
type RenderOptions = render.RenderOptions

// Renderer is the rendering dispatch contract.
type Renderer = render.Renderer

// Result aggregates validation errors for a whole form.
type Result = validation.Result

// ErrorNode mirrors the state shape of one field's errors.
type ErrorNode = validation.ErrorNode

// OptionTable maps option-source ids to their records.
type OptionTable = optionsource.Table

// LoadFile reads a metadata document from disk.
func LoadFile(path string) (schema.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, fmt.Errorf("metaform: read %s: %w", path, err)
	}
	return schema.NewDocument(schema.SourceFromFile(path), raw)
}

// LoadFS reads a metadata document from an fs.FS.
func LoadFS(fsys fs.FS, name string) (schema.Document, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return schema.Document{}, fmt.Errorf("metaform: read %s: %w", name, err)
	}
	return schema.NewDocument(schema.SourceFromFS(name), raw)
}

// LoadBytes wraps an in-memory payload. The label only shows up in errors.
func LoadBytes(label string, raw []byte) (schema.Document, error) {
	return schema.NewDocument(schema.SourceFromBytes(label), raw)
}

// BuildForm parses a metadata document and normalizes it into descriptors.
func BuildForm(doc schema.Document, options ...model.NormalizerOption) (model.Form, error) {
	raw, err := schema.ParseDocument(doc)
	if err != nil {
		return model.Form{}, err
	}
	return model.NewNormalizer(options...).Normalize(raw)
}

// BuildFormFromOpenAPI derives descriptors from an OpenAPI 3 component
// schema instead of a native metadata document.
func BuildFormFromOpenAPI(ctx context.Context, data []byte, component string, options ...model.NormalizerOption) (model.Form, error) {
	raw, err := openapi.New().RawSchema(ctx, data, component)
	if err != nil {
		return model.Form{}, err
	}
	return model.NewNormalizer(options...).Normalize(raw)
}

// Initialize seeds an empty state tree for the form.
func Initialize(form model.Form) *formstate.Tree {
	return formstate.Initialize(form)
}

// Validate runs the full validation pass over the tree.
func Validate(form model.Form, tree *formstate.Tree) validation.Result {
	return validation.New().ValidateAll(form, tree)
}

// Submit validates the tree and, when it passes, builds the wire payload.
// On failure the Result carries per-field errors and the payload is nil.
func Submit(form model.Form, tree *formstate.Tree) (map[string]any, validation.Result) {
	result := validation.New().ValidateAll(form, tree)
	if !result.OK {
		return nil, result
	}
	return submission.Transform(form, tree), result
}

// Payload builds the wire payload without validating first. Callers that
// validated already, or that want draft persistence, use this directly.
func Payload(form model.Form, tree *formstate.Tree) map[string]any {
	return submission.Transform(form, tree)
}

// DefaultRegistry returns a renderer registry with the built-in renderers
// registered under their canonical names.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := htmlform.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(tui.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderForm renders an already-built form with the HTML renderer.
func RenderForm(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	renderer, err := htmlform.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, opts)
}

// RenderHTML builds the form from a document and renders it with the HTML
// renderer in one call.
func RenderHTML(ctx context.Context, doc schema.Document, opts render.RenderOptions, options ...model.NormalizerOption) ([]byte, error) {
	form, err := BuildForm(doc, options...)
	if err != nil {
		return nil, err
	}
	return RenderForm(ctx, form, opts)
}
