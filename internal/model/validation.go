package model

import "fmt"

// Issue reports a structural defect in a normalized form. Issues are
// advisory: the engines tolerate every one of them, but callers authoring
// schemas usually want to see them.
type Issue struct {
	Key     string
	Message string
}

// Check walks a form and reports descriptor-invariant violations.
func Check(form Form) []Issue {
	var issues []Issue
	for _, field := range form.Fields {
		issues = append(issues, checkField(field)...)
	}
	return issues
}

func checkField(field Field) []Issue {
	var issues []Issue

	if field.Cardinality == CardinalityMulti && len(field.Children) > 0 {
		issues = append(issues, Issue{
			Key:     field.Key,
			Message: "multi-valued field must not carry child descriptors",
		})
	}
	if len(field.Children) > 0 && field.Type != ValueTypeGroup {
		issues = append(issues, Issue{
			Key:     field.Key,
			Message: fmt.Sprintf("field with children must have type group, not %q", field.Type),
		})
	}
	if field.Type == ValueTypeGroup && len(field.Children) == 0 {
		issues = append(issues, Issue{
			Key:     field.Key,
			Message: "group field has no child descriptors",
		})
	}
	if field.Type.Selection() && field.OptionSource == "" {
		issues = append(issues, Issue{
			Key:     field.Key,
			Message: fmt.Sprintf("%s field has no option source", field.Type),
		})
	}

	seen := make(map[string]struct{}, len(field.Children))
	for _, child := range field.Children {
		if _, dup := seen[child.Key]; dup {
			issues = append(issues, Issue{
				Key:     field.Key,
				Message: fmt.Sprintf("duplicate child key %q", child.Key),
			})
			continue
		}
		seen[child.Key] = struct{}{}
		issues = append(issues, checkField(child)...)
	}
	return issues
}
