// Package validation maps field descriptors plus current form state onto
// error structures that mirror the state's cardinality exactly: a string per
// scalar, a string slice per multi field, a child-keyed map per group
// instance. Findings are recoverable data; the engine itself never fails.
package validation

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-metaform/pkg/formstate"
	"github.com/goliatone/go-metaform/pkg/model"
)

// Option customises an Engine.
type Option func(*Engine)

// WithLogger attaches a logger for resolution diagnostics such as malformed
// patterns.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine validates form state against descriptors.
type Engine struct {
	logger *zap.Logger
	checks map[model.ValueType]scalarCheck
}

// New constructs a validation engine.
func New(options ...Option) *Engine {
	e := &Engine{
		logger: zap.NewNop(),
		checks: scalarChecks(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// ValidateAll validates every descriptor against the tree and aggregates the
// outcome. OK is true iff no field produced a non-empty leaf anywhere.
func (e *Engine) ValidateAll(form model.Form, tree *formstate.Tree) Result {
	result := Result{
		Errors: make(map[string]ErrorNode, len(form.Fields)),
		OK:     true,
	}
	for _, field := range form.Fields {
		var node *formstate.Node
		if tree != nil {
			node, _ = tree.Node(field.Key)
		}
		errs := e.Validate(field, node)
		result.Errors[field.Key] = errs
		if !errs.Empty() {
			result.OK = false
		}
	}
	return result
}

// Validate produces the error node for one descriptor. The node may be nil,
// which validates like a freshly seeded empty value.
func (e *Engine) Validate(field model.Field, node *formstate.Node) ErrorNode {
	switch field.Cardinality {
	case model.CardinalityMulti:
		return e.validateMulti(field, node)
	case model.CardinalityGroupSingle, model.CardinalityGroupMulti:
		return e.validateGroup(field, node)
	default:
		return ErrorNode{Message: e.validateScalar(field, scalarValue(node))}
	}
}

func (e *Engine) validateScalar(field model.Field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if field.Required {
			return requiredMessage(field.Label)
		}
		return ""
	}
	check := e.checks[field.Type]
	if check == nil {
		return ""
	}
	return check(e, field, trimmed)
}

func (e *Engine) validateMulti(field model.Field, node *formstate.Node) ErrorNode {
	entries := multiEntries(node)
	errs := ErrorNode{Entries: make([]string, len(entries))}

	if field.Required && allBlank(entries) {
		for i := range entries {
			errs.Entries[i] = entryMessage(i, requiredMessage(field.Label))
		}
	} else {
		for i, entry := range entries {
			if strings.TrimSpace(entry) == "" {
				continue
			}
			if msg := e.validateScalar(field, entry); msg != "" {
				errs.Entries[i] = entryMessage(i, msg)
			}
		}
	}

	if max := field.Bounds.MaxEntries; max > 0 && len(entries) > max {
		// Slot 0 carries the array-level message, overwriting any per-entry
		// finding that was already there (see ErrorNode).
		errs.Entries[0] = tooManyEntriesMessage(field.Label, max)
	}
	return errs
}

func (e *Engine) validateGroup(field model.Field, node *formstate.Node) ErrorNode {
	instances := groupInstances(node)
	if len(instances) == 0 {
		if field.Required {
			return ErrorNode{Message: requiredMessage(field.Label)}
		}
		return ErrorNode{}
	}

	errs := ErrorNode{Instances: make([]InstanceErrors, len(instances))}
	for i, instance := range instances {
		instanceErrs := make(InstanceErrors, len(field.Children))
		for _, child := range field.Children {
			instanceErrs[child.Key] = e.Validate(child, instance[child.Key])
		}
		errs.Instances[i] = instanceErrs
	}

	if max := field.Bounds.MaxEntries; max > 0 && len(instances) > max {
		errs.Message = tooManyEntriesMessage(field.Label, max)
	}
	return errs
}

func scalarValue(node *formstate.Node) string {
	if node == nil {
		return ""
	}
	return node.Value
}

func multiEntries(node *formstate.Node) []string {
	if node == nil || len(node.Entries) == 0 {
		return []string{""}
	}
	return node.Entries
}

func groupInstances(node *formstate.Node) []formstate.Instance {
	if node == nil {
		return nil
	}
	return node.Instances
}

func allBlank(entries []string) bool {
	for _, entry := range entries {
		if strings.TrimSpace(entry) != "" {
			return false
		}
	}
	return true
}
