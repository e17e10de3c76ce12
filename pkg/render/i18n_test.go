package render_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/render"
)

type catalogTranslator map[string]map[string]string

func (c catalogTranslator) Translate(locale, key string, args ...any) (string, error) {
	if msg, ok := c[locale][key]; ok {
		return msg, nil
	}
	return "", fmt.Errorf("missing %s/%s", locale, key)
}

func localizableForm() model.Form {
	return model.Form{
		Name: "content_type",
		Fields: []model.Field{
			{
				Key: "short_name", Label: "Short Name",
				Type: model.ValueTypeString, Cardinality: model.CardinalitySingle,
				Extensions: map[string]any{"label_key": "fields.short_name", "help_key": "help.short_name", "help": "Internal identifier"},
			},
			{
				Key: "contact", Label: "Contact",
				Type: model.ValueTypeGroup, Cardinality: model.CardinalityGroupMulti,
				Children: []model.Field{
					{
						Key: "phone", Label: "Phone",
						Type: model.ValueTypeTel, Cardinality: model.CardinalitySingle,
						Extensions: map[string]any{"label_key": "fields.phone"},
					},
				},
			},
			{Key: "active", Label: "Active", Type: model.ValueTypeBoolean, Cardinality: model.CardinalitySingle},
		},
	}
}

func TestLocalizeFormTranslatesHintedDescriptors(t *testing.T) {
	t.Parallel()

	translator := catalogTranslator{
		"es": {
			"fields.short_name": "Nombre corto",
			"help.short_name":   "Identificador interno",
			"fields.phone":      "Telefono",
		},
	}

	form := localizableForm()
	localized := render.LocalizeForm(form, render.RenderOptions{Locale: "es", Translator: translator})

	if got := localized.Fields[0].Label; got != "Nombre corto" {
		t.Fatalf("expected translated label, got %q", got)
	}
	if got := localized.Fields[0].Extensions["help"]; got != "Identificador interno" {
		t.Fatalf("expected translated help, got %q", got)
	}
	if got := localized.Fields[1].Children[0].Label; got != "Telefono" {
		t.Fatalf("expected nested child translated, got %q", got)
	}
	if got := localized.Fields[2].Label; got != "Active" {
		t.Fatalf("field without hints should pass through, got %q", got)
	}

	if got := form.Fields[0].Label; got != "Short Name" {
		t.Fatalf("input form mutated: %q", got)
	}
	if got := form.Fields[0].Extensions["help"]; got != "Internal identifier" {
		t.Fatalf("input extensions mutated: %q", got)
	}
}

func TestLocalizeFormFallsBackOnMissingKeys(t *testing.T) {
	t.Parallel()

	form := localizableForm()
	localized := render.LocalizeForm(form, render.RenderOptions{Locale: "fr", Translator: catalogTranslator{}})
	if got := localized.Fields[0].Label; got != "Short Name" {
		t.Fatalf("expected untranslated fallback, got %q", got)
	}
}

func TestLocalizeFormRoutesMissingTranslator(t *testing.T) {
	t.Parallel()

	var seenErr error
	opts := render.RenderOptions{
		Locale: "es",
		OnMissing: func(locale, key string, args []any, err error) string {
			seenErr = err
			return "[" + key + "]"
		},
	}
	localized := render.LocalizeForm(localizableForm(), opts)
	if got := localized.Fields[0].Label; got != "[fields.short_name]" {
		t.Fatalf("expected handler output, got %q", got)
	}
	if !errors.Is(seenErr, render.ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", seenErr)
	}
}
