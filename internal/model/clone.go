package model

import (
	"fmt"
	"strings"
)

func templateKey(base string, ordinal int) string {
	return fmt.Sprintf("%s.%d", base, ordinal)
}

// CloneTemplate spawns the descriptor for another definition block from a
// templated field. The clone carries the requested ordinal, a renumbered key,
// and, for non-anchor fields, an ordinal-suffixed label; every other
// property is copied untouched. Values are not part of descriptors, so a
// clone always starts out empty once the state store seeds it.
func CloneTemplate(tpl Field, ordinal int) (Field, error) {
	if !tpl.Templated() {
		return Field{}, fmt.Errorf("model: field %q is not a template", tpl.Key)
	}
	if ordinal < 1 {
		return Field{}, fmt.Errorf("model: template ordinal %d out of range", ordinal)
	}

	clone := copyField(tpl)
	clone.TemplateOrdinal = ordinal
	clone.Key = templateKey(tpl.TemplateBase, ordinal)
	if !tpl.Anchor {
		clone.Label = ordinalLabel(tpl, ordinal)
	}
	return clone, nil
}

// ordinalLabel derives "<base label> <n>" without accumulating suffixes when
// the clone source is itself a renumbered block.
func ordinalLabel(tpl Field, ordinal int) string {
	base := strings.TrimSuffix(tpl.Label, fmt.Sprintf(" %d", tpl.TemplateOrdinal))
	if ordinal == 1 {
		return base
	}
	return fmt.Sprintf("%s %d", base, ordinal)
}

func copyField(f Field) Field {
	out := f
	out.Bounds = copyBounds(f.Bounds)
	if len(f.Children) > 0 {
		out.Children = make([]Field, len(f.Children))
		for i, child := range f.Children {
			out.Children[i] = copyField(child)
		}
	}
	if len(f.Extensions) > 0 {
		out.Extensions = make(map[string]any, len(f.Extensions))
		for key, value := range f.Extensions {
			out.Extensions[key] = value
		}
	}
	return out
}

func copyBounds(b Bounds) Bounds {
	out := b
	if b.MinLength != nil {
		v := *b.MinLength
		out.MinLength = &v
	}
	if b.MaxLength != nil {
		v := *b.MaxLength
		out.MaxLength = &v
	}
	if b.Minimum != nil {
		v := *b.Minimum
		out.Minimum = &v
	}
	if b.Maximum != nil {
		v := *b.Maximum
		out.Maximum = &v
	}
	if b.Decimals != nil {
		v := *b.Decimals
		out.Decimals = &v
	}
	return out
}
