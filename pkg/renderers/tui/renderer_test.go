package tui_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/optionsource"
	"github.com/goliatone/go-metaform/pkg/render"
	"github.com/goliatone/go-metaform/pkg/renderers/tui"
	"github.com/goliatone/go-metaform/pkg/visibility"
)

// scriptDriver replays queued answers and records informational output.
type scriptDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
	infos    []string
}

func (d *scriptDriver) pop() (string, error) {
	if len(d.inputs) == 0 {
		return "", fmt.Errorf("script: input queue exhausted")
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *scriptDriver) Input(_ context.Context, _ tui.InputConfig) (string, error) {
	return d.pop()
}

func (d *scriptDriver) Password(_ context.Context, _ tui.InputConfig) (string, error) {
	return d.pop()
}

func (d *scriptDriver) TextArea(_ context.Context, _ tui.InputConfig) (string, error) {
	return d.pop()
}

func (d *scriptDriver) Confirm(_ context.Context, _ tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, fmt.Errorf("script: confirm queue exhausted")
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *scriptDriver) Select(_ context.Context, _ tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, fmt.Errorf("script: select queue exhausted")
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *scriptDriver) MultiSelect(_ context.Context, _ tui.SelectConfig) ([]int, error) {
	return nil, fmt.Errorf("script: multi-select not expected")
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func intPtr(v int) *int { return &v }

func fixtureForm() model.Form {
	return model.Form{
		Name: "content_type",
		Fields: []model.Field{
			{
				Key: "short_name", Label: "Short Name",
				Type: model.ValueTypeString, Cardinality: model.CardinalitySingle,
				Required: true,
				Bounds:   model.Bounds{MinLength: intPtr(2)},
			},
			{
				Key: "status", Label: "Status",
				Type: model.ValueTypeDropdown, Cardinality: model.CardinalitySingle,
				OptionSource: "statuses",
			},
			{
				Key: "active", Label: "Active",
				Type: model.ValueTypeBoolean, Cardinality: model.CardinalitySingle,
			},
			{
				Key: "tags", Label: "Tags",
				Type: model.ValueTypeString, Cardinality: model.CardinalityMulti,
				Bounds: model.Bounds{MaxEntries: 2},
			},
			{
				Key: "contact", Label: "Contact",
				Type: model.ValueTypeGroup, Cardinality: model.CardinalityGroupMulti,
				Required: true,
				Children: []model.Field{
					{Key: "name", Label: "Name", Type: model.ValueTypeString, Cardinality: model.CardinalitySingle, Required: true, Anchor: true},
					{Key: "phone", Label: "Phone", Type: model.ValueTypeTel, Cardinality: model.CardinalitySingle},
				},
			},
		},
	}
}

func TestRenderSessionProducesPayload(t *testing.T) {
	driver := &scriptDriver{
		inputs:   []string{"A", "Article", "news", "tech", "Alice", "555-1234"},
		confirms: []bool{true, true, false},
		selects:  []int{1},
	}
	renderer := tui.New(tui.WithPromptDriver(driver))

	payload, err := renderer.Render(context.Background(), fixtureForm(), render.RenderOptions{
		Options: optionsource.Table{
			"statuses": {
				map[string]any{"value": "draft", "label": "Draft"},
				map[string]any{"value": "published", "label": "Published"},
			},
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	want := map[string]any{
		"short_name": "Article",
		"status":     "published",
		"active":     "Y",
		"tags":       []any{"news", "tech"},
		"contact": map[string]any{
			"Alice": map[string]any{"phone.1": "555-1234"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected payload (-want +got):\n%s", diff)
	}

	// The rejected first answer surfaced through Info.
	foundRejection := false
	for _, info := range driver.infos {
		if strings.Contains(info, "Short Name must be at least 2 characters") {
			foundRejection = true
		}
	}
	if !foundRejection {
		t.Fatalf("expected validation feedback in infos, got %v", driver.infos)
	}

	if len(driver.inputs) != 0 || len(driver.confirms) != 0 || len(driver.selects) != 0 {
		t.Fatalf("script not fully consumed: %+v", driver)
	}
}

func TestRenderSkipsHiddenFields(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{
			Key: "status", Label: "Status",
			Type: model.ValueTypeString, Cardinality: model.CardinalitySingle,
		},
		{
			Key: "publish_date", Label: "Publish Date",
			Type: model.ValueTypeDate, Cardinality: model.CardinalitySingle,
			Extensions: map[string]any{"visible_when": `status == "published"`},
		},
	}}

	driver := &scriptDriver{inputs: []string{"draft"}}
	renderer := tui.New(tui.WithPromptDriver(driver))

	payload, err := renderer.Render(context.Background(), form, render.RenderOptions{
		Visibility: visibility.EvaluatorFunc(func(_, rule string, ctx visibility.Context) (bool, error) {
			return ctx.Values["status"] == "published", nil
		}),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if _, present := got["publish_date"]; present {
		t.Fatalf("hidden field should not be prompted or emitted: %v", got)
	}
	if len(driver.inputs) != 0 {
		t.Fatalf("hidden field consumed an input")
	}
}
