package record

import (
	"context"
	"sync"
)

// Memory is an in-process Service used by tests, examples, and local
// development. Records are keyed by name; payloads are copied on the way in
// and out so callers never alias stored state.
type Memory struct {
	mu      sync.RWMutex
	records map[string]map[string]any
}

var _ Service = (*Memory)(nil)

// NewMemory constructs an empty in-memory service.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]map[string]any)}
}

// Get fetches a stored payload by name.
func (m *Memory) Get(ctx context.Context, name string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.records[name]
	if !ok {
		return nil, &Error{Kind: KindNotFound, Name: name, Message: "no such record"}
	}
	return copyPayload(payload), nil
}

// Create stores a new payload, failing on duplicates.
func (m *Memory) Create(ctx context.Context, name string, payload map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[name]; exists {
		return &Error{Kind: KindConflict, Name: name, Message: "duplicate record"}
	}
	m.records[name] = copyPayload(payload)
	return nil
}

// Update replaces an existing payload.
func (m *Memory) Update(ctx context.Context, name string, payload map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[name]; !exists {
		return &Error{Kind: KindNotFound, Name: name, Message: "no such record"}
	}
	m.records[name] = copyPayload(payload)
	return nil
}

// Delete removes a payload by name.
func (m *Memory) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[name]; !exists {
		return &Error{Kind: KindNotFound, Name: name, Message: "no such record"}
	}
	delete(m.records, name)
	return nil
}

// Names lists the stored record names. Handy for example programs.
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.records))
	for name := range m.records {
		names = append(names, name)
	}
	return names
}

func copyPayload(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		switch typed := value.(type) {
		case map[string]any:
			out[key] = copyPayload(typed)
		case []string:
			out[key] = append([]string(nil), typed...)
		case []any:
			out[key] = append([]any(nil), typed...)
		default:
			out[key] = value
		}
	}
	return out
}
