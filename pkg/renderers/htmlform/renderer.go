// Package htmlform renders normalized descriptors into a server-side HTML
// form: state and error trees become prefilled controls with inline
// feedback, theme CSS variables are inlined, and grouped fields render as
// repeatable fieldsets.
package htmlform

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-metaform/pkg/formstate"
	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/optionsource"
	"github.com/goliatone/go-metaform/pkg/render"
	rendertemplate "github.com/goliatone/go-metaform/pkg/render/template"
	gotemplate "github.com/goliatone/go-metaform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-metaform/pkg/visibility"
)

const templateName = "templates/form"

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	resolver         *optionsource.Resolver
	controls         *render.ControlRegistry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithOptionResolver overrides the resolver used for selection fields.
func WithOptionResolver(resolver *optionsource.Resolver) Option {
	return func(cfg *config) {
		if resolver != nil {
			cfg.resolver = resolver
		}
	}
}

// WithControlRegistry overrides the control dispatch table.
func WithControlRegistry(controls *render.ControlRegistry) Option {
	return func(cfg *config) {
		if controls != nil {
			cfg.controls = controls
		}
	}
}

// Renderer turns descriptors plus state into an HTML document fragment.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	resolver  *optionsource.Resolver
	controls  *render.ControlRegistry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		resolver:   optionsource.New(),
		controls:   render.NewControlRegistry(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templateRenderer := cfg.templateRenderer
	if templateRenderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("htmlform: configure template renderer: %w", err)
		}
		templateRenderer = engine
	}

	return &Renderer{
		templates: templateRenderer,
		resolver:  cfg.resolver,
		controls:  cfg.controls,
	}, nil
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return "htmlform"
}

// ContentType returns the MIME type for generated documents.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the HTML form.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := opts.Tree
	if tree == nil {
		tree = formstate.Initialize(form)
	}
	form = render.LocalizeForm(form, opts)
	form = render.ApplySubset(form, opts.Subset)
	flat := render.FlattenErrors(opts.Errors)

	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = "POST"
	}
	browserMethod := method
	hidden := opts.Hidden
	if method != "GET" && method != "POST" {
		browserMethod = "POST"
		hidden = render.MergeHiddenFields(hidden, render.MethodOverride(method))
	}

	var fields []map[string]any
	for _, field := range form.Fields {
		visible, err := visibility.Visible(field, opts.Visibility, visibility.Context{
			Values: valuesSnapshot(form, tree),
			Extras: opts.Extras,
		})
		if err != nil {
			return nil, fmt.Errorf("htmlform: visibility rule for %q: %w", field.Key, err)
		}
		if !visible {
			continue
		}
		node, _ := tree.Node(field.Key)
		fields = append(fields, r.fieldContext(field, node, flat, opts))
	}

	data := map[string]any{
		"form_name":      form.Name,
		"action":         opts.Action,
		"browser_method": browserMethod,
		"hidden_fields":  hiddenContext(hidden),
		"fields":         fields,
		"css_vars_style": cssVarsStyle(opts.Theme),
	}

	rendered, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("htmlform: render template: %w", err)
	}
	return []byte(rendered), nil
}

func (r *Renderer) fieldContext(field model.Field, node *formstate.Node, flat map[string][]string, opts render.RenderOptions) map[string]any {
	control, _ := r.controls.Resolve(field)
	errors := collectErrors(flat, field.Key, node)

	ctx := map[string]any{
		"key":          field.Key,
		"id":           controlID(field.Key),
		"label":        render.SanitizeText(field.Label),
		"control":      control,
		"required":     field.Required,
		"help":         helpText(field),
		"errors":       flat[field.Key],
		"invalid":      len(errors) > 0,
		"control_html": r.controlHTML(field, control, field.Key, node, flat, opts),
	}
	return ctx
}

// controlHTML builds the markup for one control. Values are HTML-escaped
// here; the template injects the result with |safe.
func (r *Renderer) controlHTML(field model.Field, control, path string, node *formstate.Node, flat map[string][]string, opts render.RenderOptions) string {
	switch control {
	case render.ControlGroupEditor:
		return r.groupHTML(field, path, node, flat, opts)
	case render.ControlEntryList:
		return r.entryListHTML(field, path, node, flat)
	case render.ControlSelect, render.ControlMultiSelect, render.ControlRadioGroup:
		return r.selectionHTML(field, control, path, node, opts)
	case render.ControlCheckbox:
		checked := ""
		if node != nil && truthy(node.Value) {
			checked = " checked"
		}
		return fmt.Sprintf(`<input class="metaform-input" type="checkbox" id=%q name=%q value="yes"%s>`,
			controlID(path), path, checked)
	case render.ControlTextarea:
		return fmt.Sprintf(`<textarea class="metaform-input" id=%q name=%q%s>%s</textarea>`,
			controlID(path), path, requiredAttr(field), html.EscapeString(scalarValue(node)))
	default:
		return r.inputHTML(field, path, scalarValue(node))
	}
}

func (r *Renderer) inputHTML(field model.Field, path, value string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<input class="metaform-input" type=%q id=%q name=%q value=%q`,
		inputType(field.Type), controlID(path), path, html.EscapeString(value))
	if field.Required {
		b.WriteString(" required")
	}
	if field.Pattern != "" {
		fmt.Fprintf(&b, ` pattern=%q`, html.EscapeString(field.Pattern))
	}
	b.WriteString(">")
	return b.String()
}

func (r *Renderer) entryListHTML(field model.Field, path string, node *formstate.Node, flat map[string][]string) string {
	entries := []string{""}
	if node != nil && len(node.Entries) > 0 {
		entries = node.Entries
	}

	var b strings.Builder
	for i, entry := range entries {
		slot := fmt.Sprintf("%s[%d]", path, i)
		scalar := field
		scalar.Required = false
		b.WriteString(r.inputHTML(scalar, slot, entry))
		b.WriteString("\n")
		for _, message := range flat[slot] {
			fmt.Fprintf(&b, `<p class="metaform-error">%s</p>`+"\n", html.EscapeString(message))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Renderer) selectionHTML(field model.Field, control, path string, node *formstate.Node, opts render.RenderOptions) string {
	options := r.resolver.Resolve(field, opts.Options)
	selected := selectedValues(node)

	var b strings.Builder
	switch control {
	case render.ControlRadioGroup:
		for _, option := range options {
			checked := ""
			if selected[option.Value] {
				checked = " checked"
			}
			fmt.Fprintf(&b, `<label class="metaform-radio"><input type="radio" name=%q value=%q%s> %s</label>`+"\n",
				path, html.EscapeString(option.Value), checked, html.EscapeString(render.SanitizeText(option.Label)))
		}
		return strings.TrimRight(b.String(), "\n")
	case render.ControlMultiSelect:
		fmt.Fprintf(&b, `<select class="metaform-input" id=%q name=%q multiple>`+"\n", controlID(path), path)
	default:
		fmt.Fprintf(&b, `<select class="metaform-input" id=%q name=%q%s>`+"\n", controlID(path), path, requiredAttr(field))
		b.WriteString(`<option value=""></option>` + "\n")
	}
	for _, option := range options {
		marker := ""
		if selected[option.Value] {
			marker = " selected"
		}
		fmt.Fprintf(&b, `<option value=%q%s>%s</option>`+"\n",
			html.EscapeString(option.Value), marker, html.EscapeString(render.SanitizeText(option.Label)))
	}
	b.WriteString("</select>")
	return b.String()
}

func (r *Renderer) groupHTML(field model.Field, path string, node *formstate.Node, flat map[string][]string, opts render.RenderOptions) string {
	var instances []formstate.Instance
	if node != nil {
		instances = node.Instances
	}

	var b strings.Builder
	for i, instance := range instances {
		fmt.Fprintf(&b, `<fieldset class="metaform-instance" data-instance="%d">`+"\n", i)
		fmt.Fprintf(&b, `<legend>%s #%d</legend>`+"\n", html.EscapeString(render.SanitizeText(field.Label)), i+1)
		for _, child := range field.Children {
			childPath := fmt.Sprintf("%s[%d].%s", path, i, child.Key)
			childControl, _ := r.controls.Resolve(child)
			childErrors := collectErrors(flat, childPath, instance[child.Key])

			invalid := ""
			if len(childErrors) > 0 {
				invalid = " metaform-field--invalid"
			}
			fmt.Fprintf(&b, `<div class="metaform-field metaform-control-%s%s" data-field=%q>`+"\n", childControl, invalid, childPath)
			fmt.Fprintf(&b, `<label class="metaform-label" for=%q>%s%s</label>`+"\n",
				controlID(childPath), html.EscapeString(render.SanitizeText(child.Label)), requiredMark(child))
			b.WriteString(r.controlHTML(child, childControl, childPath, instance[child.Key], flat, opts))
			b.WriteString("\n")
			for _, message := range flat[childPath] {
				fmt.Fprintf(&b, `<p class="metaform-error">%s</p>`+"\n", html.EscapeString(message))
			}
			b.WriteString("</div>\n")
		}
		b.WriteString("</fieldset>\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func hiddenContext(hidden map[string]string) []map[string]string {
	fields := render.SortedHiddenFields(hidden)
	out := make([]map[string]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}

func collectErrors(flat map[string][]string, path string, node *formstate.Node) []string {
	out := append([]string(nil), flat[path]...)
	if node == nil {
		return out
	}
	for i := range node.Entries {
		out = append(out, flat[fmt.Sprintf("%s[%d]", path, i)]...)
	}
	return out
}

func selectedValues(node *formstate.Node) map[string]bool {
	selected := make(map[string]bool)
	if node == nil {
		return selected
	}
	if node.Value != "" {
		selected[node.Value] = true
	}
	for _, entry := range node.Entries {
		if entry != "" {
			selected[entry] = true
		}
	}
	return selected
}

func scalarValue(node *formstate.Node) string {
	if node == nil {
		return ""
	}
	return node.Value
}

func helpText(field model.Field) string {
	if field.Extensions == nil {
		return ""
	}
	if help, ok := field.Extensions["help"].(string); ok {
		return render.SanitizeHelp(help)
	}
	return ""
}

func requiredAttr(field model.Field) string {
	if field.Required {
		return " required"
	}
	return ""
}

func requiredMark(field model.Field) string {
	if field.Required {
		return ` <span class="metaform-required">*</span>`
	}
	return ""
}

func controlID(path string) string {
	var b strings.Builder
	b.Grow(len(path) + len("metaform-"))
	b.WriteString("metaform-")
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

func inputType(valueType model.ValueType) string {
	switch valueType {
	case model.ValueTypeEmail:
		return "email"
	case model.ValueTypeTel:
		return "tel"
	case model.ValueTypeURL:
		return "url"
	case model.ValueTypePassword:
		return "password"
	case model.ValueTypeDate:
		return "date"
	case model.ValueTypeDateTime:
		return "datetime-local"
	case model.ValueTypeTime:
		return "time"
	case model.ValueTypeInteger, model.ValueTypeDecimal, model.ValueTypeAmount:
		return "number"
	case model.ValueTypeColor:
		return "color"
	case model.ValueTypeFile, model.ValueTypeImage:
		return "file"
	default:
		return "text"
	}
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y", "1", "on":
		return true
	}
	return false
}

func valuesSnapshot(form model.Form, tree *formstate.Tree) map[string]any {
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

func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
