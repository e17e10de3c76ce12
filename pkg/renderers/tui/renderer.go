// Package tui renders a form as an interactive terminal session: each
// descriptor becomes a survey prompt, answers flow into a state tree, and the
// validation engine gates every answer before the session moves on. The
// session's output is the serialized submission payload.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-metaform/pkg/formstate"
	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/optionsource"
	"github.com/goliatone/go-metaform/pkg/render"
	"github.com/goliatone/go-metaform/pkg/submission"
	"github.com/goliatone/go-metaform/pkg/validation"
	"github.com/goliatone/go-metaform/pkg/visibility"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	engine       *validation.Engine
	resolver     *optionsource.Resolver
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		engine:       validation.New(),
		resolver:     optionsource.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every visible field and returns the serialized
// submission payload.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := opts.Tree
	if tree == nil {
		tree = formstate.Initialize(form)
	}
	form = render.LocalizeForm(form, opts)
	form = render.ApplySubset(form, opts.Subset)

	for _, field := range form.Fields {
		visible, err := visibility.Visible(field, opts.Visibility, visibility.Context{
			Values: scalarSnapshot(form, tree),
			Extras: opts.Extras,
		})
		if err != nil {
			return nil, fmt.Errorf("tui: visibility rule for %q: %w", field.Key, err)
		}
		if !visible {
			continue
		}

		tree, err = r.promptField(ctx, field, tree, opts)
		if err != nil {
			return nil, err
		}
	}

	return r.serialize(submission.Transform(form, tree))
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, tree *formstate.Tree, opts render.RenderOptions) (*formstate.Tree, error) {
	switch field.Cardinality {
	case model.CardinalityMulti:
		return r.promptMulti(ctx, field, tree, opts)
	case model.CardinalityGroupSingle, model.CardinalityGroupMulti:
		return r.promptGroup(ctx, field, tree, opts)
	default:
		return r.promptScalar(ctx, field, formstate.FieldPath(field.Key), tree, opts)
	}
}

// promptScalar asks until the validation engine accepts the answer.
func (r *Renderer) promptScalar(ctx context.Context, field model.Field, path formstate.Path, tree *formstate.Tree, opts render.RenderOptions) (*formstate.Tree, error) {
	current, _ := tree.Get(path)

	for {
		value, err := r.ask(ctx, field, current, opts)
		if err != nil {
			return nil, err
		}

		next, err := tree.SetValue(path, value)
		if err != nil {
			return nil, fmt.Errorf("tui: set %s: %w", path, err)
		}

		scalar := field
		scalar.Cardinality = model.CardinalitySingle
		errs := r.engine.Validate(scalar, &formstate.Node{Shape: formstate.ShapeScalar, Value: value})
		if errs.Message == "" {
			return next, nil
		}
		if err := r.driver.Info(ctx, "✗ "+errs.Message); err != nil {
			return nil, err
		}
		current = value
	}
}

func (r *Renderer) promptMulti(ctx context.Context, field model.Field, tree *formstate.Tree, opts render.RenderOptions) (*formstate.Tree, error) {
	path := formstate.FieldPath(field.Key)
	index := 0
	for {
		next, err := r.promptScalar(ctx, field, path.At(index), tree, opts)
		if err != nil {
			return nil, err
		}
		tree = next

		if max := field.Bounds.MaxEntries; max > 0 && index+1 >= max {
			return tree, nil
		}
		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add another %s?", strings.ToLower(field.Label)),
		})
		if err != nil {
			return nil, err
		}
		if !more {
			return tree, nil
		}
		tree, err = tree.AddEntry(path)
		if err != nil {
			return nil, fmt.Errorf("tui: add entry %s: %w", field.Key, err)
		}
		index++
	}
}

func (r *Renderer) promptGroup(ctx context.Context, field model.Field, tree *formstate.Tree, opts render.RenderOptions) (*formstate.Tree, error) {
	path := formstate.FieldPath(field.Key)
	index := 0
	for {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s #%d", field.Label, index+1)); err != nil {
			return nil, err
		}
		for _, child := range field.Children {
			var err error
			tree, err = r.promptChild(ctx, child, path.At(index), tree, opts)
			if err != nil {
				return nil, err
			}
		}

		if field.Cardinality != model.CardinalityGroupMulti {
			return tree, nil
		}
		if max := field.Bounds.MaxEntries; max > 0 && index+1 >= max {
			return tree, nil
		}
		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add another %s?", strings.ToLower(field.Label)),
		})
		if err != nil {
			return nil, err
		}
		if !more {
			return tree, nil
		}
		tree, err = tree.AddGroupInstance(path)
		if err != nil {
			return nil, fmt.Errorf("tui: add instance %s: %w", field.Key, err)
		}
		index++
	}
}

func (r *Renderer) promptChild(ctx context.Context, child model.Field, instance formstate.Path, tree *formstate.Tree, opts render.RenderOptions) (*formstate.Tree, error) {
	if child.Cardinality == model.CardinalityMulti {
		base := instance.ChildAt(child.Key, -1)
		index := 0
		for {
			next, err := r.promptScalar(ctx, child, instance.ChildAt(child.Key, index), tree, opts)
			if err != nil {
				return nil, err
			}
			tree = next

			if max := child.Bounds.MaxEntries; max > 0 && index+1 >= max {
				return tree, nil
			}
			more, err := r.driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("Add another %s?", strings.ToLower(child.Label)),
			})
			if err != nil {
				return nil, err
			}
			if !more {
				return tree, nil
			}
			tree, err = tree.AddEntry(base)
			if err != nil {
				return nil, fmt.Errorf("tui: add entry %s: %w", child.Key, err)
			}
			index++
		}
	}
	return r.promptScalar(ctx, child, instance.ChildAt(child.Key, -1), tree, opts)
}

// ask dispatches on the value type to pick a prompt shape.
func (r *Renderer) ask(ctx context.Context, field model.Field, current string, opts render.RenderOptions) (string, error) {
	label := promptLabel(field)
	help := helpText(field)

	switch {
	case field.Type == model.ValueTypeBoolean:
		confirmed, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: truthy(current),
			Help:    help,
		})
		if err != nil {
			return "", err
		}
		if confirmed {
			return "yes", nil
		}
		return "no", nil

	case field.Type.Selection():
		options := r.resolver.Resolve(field, opts.Options)
		if len(options) == 0 {
			break
		}
		labels := make([]string, len(options))
		defaultIndex := -1
		for i, option := range options {
			labels[i] = option.Label
			if option.Value == current {
				defaultIndex = i
			}
		}
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIndex,
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		if choice < 0 || choice >= len(options) {
			return "", nil
		}
		return options[choice].Value, nil

	case field.Type == model.ValueTypeText || field.Type == model.ValueTypeTextarea:
		return r.driver.TextArea(ctx, InputConfig{Message: label, Default: current, Help: help})

	case field.Type == model.ValueTypePassword:
		return r.driver.Password(ctx, InputConfig{Message: label, Help: help})
	}

	return r.driver.Input(ctx, InputConfig{Message: label, Default: current, Help: help})
}

func (r *Renderer) serialize(payload map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for key, value := range payload {
			switch typed := value.(type) {
			case string:
				values.Set(key, typed)
			case []string:
				for _, entry := range typed {
					values.Add(key, entry)
				}
			default:
				encoded, err := json.Marshal(typed)
				if err != nil {
					return nil, fmt.Errorf("tui: encode %s: %w", key, err)
				}
				values.Set(key, string(encoded))
			}
		}
		return []byte(values.Encode()), nil

	case OutputFormatPrettyText:
		keys := make([]string, 0, len(payload))
		for key := range payload {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&b, "%s: %v\n", key, payload[key])
		}
		return []byte(b.String()), nil

	default:
		return json.MarshalIndent(payload, "", "  ")
	}
}

func promptLabel(field model.Field) string {
	if field.Required {
		return field.Label + " *"
	}
	return field.Label
}

func helpText(field model.Field) string {
	if field.Extensions == nil {
		return ""
	}
	if help, ok := field.Extensions["help"].(string); ok {
		return strings.TrimSpace(help)
	}
	return ""
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y", "1", "on":
		return true
	}
	return false
}

// scalarSnapshot exposes current top-level values to visibility rules.
func scalarSnapshot(form model.Form, tree *formstate.Tree) map[string]any {
	values := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		node, ok := tree.Node(field.Key)
		if !ok || node == nil {
			continue
		}
		switch node.Shape {
		case formstate.ShapeScalar:
			if field.Type == model.ValueTypeBoolean {
				values[field.Key] = truthy(node.Value)
				continue
			}
			values[field.Key] = node.Value
		case formstate.ShapeMulti:
			values[field.Key] = append([]string(nil), node.Entries...)
		}
	}
	return values
}
