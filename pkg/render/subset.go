package render

import (
	"strings"

	"github.com/goliatone/go-metaform/pkg/model"
)

const (
	sectionExtension = "section"
	tagsExtension    = "tags"
)

// FieldSubset selects which top-level descriptors a renderer should emit.
// A field matches when any populated filter accepts it; an empty subset
// selects everything. Matching is case-insensitive.
type FieldSubset struct {
	// Keys selects descriptors by field key.
	Keys []string
	// Sections selects descriptors whose "section" extension matches.
	Sections []string
	// Tags selects descriptors whose "tags" extension (a list or a
	// comma-separated string) contains a match.
	Tags []string
}

// Empty reports whether no filter is populated.
func (s FieldSubset) Empty() bool {
	return len(s.Keys) == 0 && len(s.Sections) == 0 && len(s.Tags) == 0
}

// ApplySubset returns a copy of the form holding only the top-level
// descriptors the subset selects. Child descriptors of a selected group are
// kept whole. When the subset is empty the form passes through unchanged.
func ApplySubset(form model.Form, subset FieldSubset) model.Form {
	matcher := newSubsetMatcher(subset)
	if matcher.empty() {
		return form
	}

	filtered := form
	filtered.Fields = make([]model.Field, 0, len(form.Fields))
	for _, field := range form.Fields {
		if matcher.matches(field) {
			filtered.Fields = append(filtered.Fields, field)
		}
	}
	if len(filtered.Fields) == 0 {
		filtered.Fields = nil
	}
	return filtered
}

type subsetMatcher struct {
	keys     map[string]struct{}
	sections map[string]struct{}
	tags     map[string]struct{}
}

func newSubsetMatcher(subset FieldSubset) subsetMatcher {
	return subsetMatcher{
		keys:     tokenSet(subset.Keys),
		sections: tokenSet(subset.Sections),
		tags:     tokenSet(subset.Tags),
	}
}

func (m subsetMatcher) empty() bool {
	return len(m.keys) == 0 && len(m.sections) == 0 && len(m.tags) == 0
}

func (m subsetMatcher) matches(field model.Field) bool {
	if len(m.keys) > 0 {
		if _, ok := m.keys[normalizeToken(field.Key)]; ok {
			return true
		}
	}
	if len(m.sections) > 0 {
		if section := normalizeToken(extensionString(field, sectionExtension)); section != "" {
			if _, ok := m.sections[section]; ok {
				return true
			}
		}
	}
	if len(m.tags) > 0 {
		for _, tag := range fieldTags(field) {
			if _, ok := m.tags[tag]; ok {
				return true
			}
		}
	}
	return false
}

// fieldTags reads the "tags" extension, accepting either a list value from
// YAML/JSON schemas or a comma-separated string.
func fieldTags(field model.Field) []string {
	if field.Extensions == nil {
		return nil
	}
	switch raw := field.Extensions[tagsExtension].(type) {
	case []any:
		tags := make([]string, 0, len(raw))
		for _, entry := range raw {
			if tag := normalizeToken(anyToString(entry)); tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	case []string:
		tags := make([]string, 0, len(raw))
		for _, entry := range raw {
			if tag := normalizeToken(entry); tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	case string:
		var tags []string
		for _, part := range strings.Split(raw, ",") {
			if tag := normalizeToken(part); tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	default:
		return nil
	}
}

func tokenSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		if token := normalizeToken(value); token != "" {
			set[token] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

func normalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
