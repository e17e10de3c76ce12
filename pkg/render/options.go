package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-metaform/pkg/formstate"
	"github.com/goliatone/go-metaform/pkg/optionsource"
	"github.com/goliatone/go-metaform/pkg/validation"
	"github.com/goliatone/go-metaform/pkg/visibility"
)

// RenderOptions carry per-request data a renderer may use without touching
// the descriptor pipeline.
type RenderOptions struct {
	// Action and Method describe the submission target. Renderers translate
	// non-browser verbs (PUT/PATCH/DELETE) into POST plus a hidden _method
	// input when needed.
	Action string
	Method string
	// Tree pre-populates rendered controls. A nil tree renders seeded
	// defaults.
	Tree *formstate.Tree
	// Errors surfaces validation feedback keyed by field key, shaped exactly
	// like the state nodes they describe.
	Errors map[string]validation.ErrorNode
	// Options supplies the source tables selection fields resolve against.
	Options optionsource.Table
	// Hidden fields are emitted alongside the visible controls; see the
	// HiddenField helpers.
	Hidden map[string]string
	// Visibility evaluates per-field visibility rules. A nil evaluator shows
	// every field. Extras feed caller context (roles, flags) to the rules.
	Visibility visibility.Evaluator
	Extras     map[string]any
	// Theme carries resolved theme tokens and CSS variables for HTML
	// renderers.
	Theme *theme.RendererConfig
	// Locale and Translator localize descriptors flagged with *_key extension
	// hints; see LocalizeForm. OnMissing handles unresolved catalog keys and
	// defaults to keeping the untranslated text.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
	// Subset restricts rendering to matching top-level descriptors; see
	// ApplySubset. An empty subset renders every field.
	Subset FieldSubset
}
