package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-metaform/pkg/model"
)

const (
	labelKeyHint = "label_key"
	helpKeyHint  = "help_key"

	helpExtension = "help"
)

// ErrMissingTranslator is routed through OnMissing when a descriptor carries
// translation hints but no Translator was configured.
var ErrMissingTranslator = errors.New("render: no translator configured")

// Translator resolves catalog keys into localized strings.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the text emitted when a catalog key
// cannot be resolved. args carries a map with a "default" entry holding the
// untranslated fallback.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(locale, key string, args []any, err error) string {
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			if fallback := strings.TrimSpace(anyToString(m["default"])); fallback != "" {
				return fallback
			}
		}
	}
	return key
}

// LocalizeForm returns a copy of the form with any label_key and help_key
// extension hints translated through opts.Translator. Descriptors without
// hints pass through untouched; the input form is never mutated.
//
// Best-effort: translation failures are routed through opts.OnMissing, which
// defaults to keeping the untranslated text.
func LocalizeForm(form model.Form, opts RenderOptions) model.Form {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	localized := form
	localized.Fields = make([]model.Field, len(form.Fields))
	for i, field := range form.Fields {
		localized.Fields[i] = localizeField(field, opts.Locale, opts.Translator, onMissing)
	}
	return localized
}

func localizeField(field model.Field, locale string, t Translator, onMissing MissingTranslationHandler) model.Field {
	if key := extensionString(field, labelKeyHint); key != "" {
		field.Label = translate(locale, key, strings.TrimSpace(field.Label), t, onMissing)
	}
	if key := extensionString(field, helpKeyHint); key != "" {
		fallback := extensionString(field, helpExtension)
		field.Extensions = cloneExtensions(field.Extensions)
		field.Extensions[helpExtension] = translate(locale, key, fallback, t, onMissing)
	}

	if len(field.Children) > 0 {
		children := make([]model.Field, len(field.Children))
		for i, child := range field.Children {
			children[i] = localizeField(child, locale, t, onMissing)
		}
		field.Children = children
	}
	return field
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
}

func extensionString(field model.Field, key string) string {
	if field.Extensions == nil {
		return ""
	}
	return strings.TrimSpace(anyToString(field.Extensions[key]))
}

func cloneExtensions(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

func anyToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
