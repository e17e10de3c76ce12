package expr

import (
	"testing"

	"github.com/goliatone/go-metaform/pkg/visibility"
)

func TestEvalComparison(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("publish_date", `status == "published"`, visibility.Context{
		Values: map[string]any{"status": "published"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected visible")
	}

	ok, err = eval.Eval("publish_date", `status == "published"`, visibility.Context{
		Values: map[string]any{"status": "draft"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected hidden for draft")
	}
}

func TestEvalExtrasAndComposition(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("audit_log", `extras.role == "admin" && enabled`, visibility.Context{
		Values: map[string]any{"enabled": true},
		Extras: map[string]any{"role": "admin"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected visible for admin with enabled flag")
	}
}

func TestEvalUndefinedVariablesAndEmptyRule(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("anything", "", visibility.Context{})
	if err != nil || !ok {
		t.Fatalf("empty rule must be visible, got %v %v", ok, err)
	}

	// Undefined names evaluate to nil, which is falsy, not an error.
	ok, err = eval.Eval("anything", "missing_flag", visibility.Context{})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected undefined variable to hide the field")
	}
}

func TestEvalMalformedRule(t *testing.T) {
	t.Parallel()

	eval := New()

	if _, err := eval.Eval("anything", "status ==", visibility.Context{}); err == nil {
		t.Fatalf("expected compile error")
	}
}
