// Package expr evaluates visibility rules with github.com/expr-lang/expr.
// Rules see the current form values as top-level variables plus a "values"
// map and an "extras" map: `status == "draft" && extras.role == "admin"`.
package expr

import (
	"fmt"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-metaform/pkg/visibility"
)

// Evaluator compiles rules once and caches the programs by expression.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*exprvm.Program
}

// New constructs an Evaluator with an empty program cache.
func New() *Evaluator {
	return &Evaluator{programs: make(map[string]*exprvm.Program)}
}

// Eval runs the rule against the context. An empty rule is always visible.
// The result must be a boolean or something coercible to one; nil evaluates
// to false.
func (e *Evaluator) Eval(fieldKey, rule string, ctx visibility.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}

	program, err := e.program(trimmed)
	if err != nil {
		return false, fmt.Errorf("visibility/expr: field %q: %w", fieldKey, err)
	}

	result, err := exprlang.Run(program, environment(ctx))
	if err != nil {
		return false, fmt.Errorf("visibility/expr: field %q: run %q: %w", fieldKey, trimmed, err)
	}
	return coerceBool(result), nil
}

func (e *Evaluator) program(rule string) (*exprvm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[rule]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := exprlang.Compile(rule,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", rule, err)
	}

	e.mu.Lock()
	e.programs[rule] = program
	e.mu.Unlock()
	return program, nil
}

func environment(ctx visibility.Context) map[string]any {
	env := make(map[string]any, len(ctx.Values)+2)
	for key, value := range ctx.Values {
		env[key] = value
	}
	env["values"] = ctx.Values
	env["extras"] = ctx.Extras
	return env
}

func coerceBool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
