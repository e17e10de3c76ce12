// Package visibility defines the contract renderers use to decide whether a
// field should be shown. Rules travel on descriptors as the "visible_when"
// extension; evaluation is pluggable.
package visibility

import (
	"strings"

	"github.com/goliatone/go-metaform/pkg/model"
)

// RuleExtension is the descriptor extension key carrying a visibility rule.
const RuleExtension = "visible_when"

// Evaluator decides whether a field is visible given a rule string and the
// current context.
type Evaluator interface {
	Eval(fieldKey, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values typically holds the current
// form values keyed by field key; Extras lets callers inject arbitrary
// context such as user roles or feature flags.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldKey, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldKey, rule string, ctx Context) (bool, error) {
	return fn(fieldKey, rule, ctx)
}

// RuleFor extracts the visibility rule a descriptor carries, or "" when the
// field is unconditionally visible.
func RuleFor(field model.Field) string {
	if field.Extensions == nil {
		return ""
	}
	if rule, ok := field.Extensions[RuleExtension].(string); ok {
		return strings.TrimSpace(rule)
	}
	return ""
}

// Visible reports whether a field should be rendered. Fields without a rule
// are always visible; a nil evaluator shows everything. Evaluation errors are
// returned so callers can decide between failing and defaulting to visible.
func Visible(field model.Field, evaluator Evaluator, ctx Context) (bool, error) {
	rule := RuleFor(field)
	if rule == "" || evaluator == nil {
		return true, nil
	}
	return evaluator.Eval(field.Key, rule, ctx)
}
