// Package record defines the backend collaborator contract the form engine
// submits to: send a payload, receive success or a typed error. Transport
// details live behind the Service interface; the engine only needs to keep
// its in-memory state intact so a rejected submission can be re-edited and
// resubmitted.
package record

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors callers can branch on with errors.Is.
var (
	ErrNotFound = errors.New("record: not found")
	ErrConflict = errors.New("record: already exists")
)

// Kind classifies a transport failure beyond the sentinel cases.
type Kind string

const (
	KindNotFound  Kind = "not_found"
	KindConflict  Kind = "conflict"
	KindTransport Kind = "transport"
)

// Error carries the failure class plus the backend's message.
type Error struct {
	Kind    Kind
	Name    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("record: %s %q: %s", e.Kind, e.Name, e.Message)
	}
	return fmt.Sprintf("record: %s: %s", e.Kind, e.Message)
}

// Unwrap maps the kind onto the matching sentinel so errors.Is works across
// the taxonomy.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	}
	return e.Cause
}

// Service is the CRUD surface consumed from the backend. Payloads are the
// flat submission maps produced by the transformer.
type Service interface {
	Get(ctx context.Context, name string) (map[string]any, error)
	Create(ctx context.Context, name string, payload map[string]any) error
	Update(ctx context.Context, name string, payload map[string]any) error
	Delete(ctx context.Context, name string) error
}
