package formstate

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-metaform/pkg/model"
)

// Session owns one form's state tree for the lifetime of an editing session.
// Edits swap in fresh snapshots; nothing is shared across sessions. The
// lookup generation lets callers discard responses from record loads that
// were superseded by a newer request.
type Session struct {
	id uuid.UUID

	mu        sync.Mutex
	tree      *Tree
	lookupGen uint64
}

// NewSession seeds a session for the given form.
func NewSession(form model.Form) *Session {
	return &Session{
		id:   uuid.New(),
		tree: Initialize(form),
	}
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Tree returns the current snapshot.
func (s *Session) Tree() *Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Apply runs one state operation and installs the resulting snapshot. When
// the operation returns an error the current snapshot stays in place.
func (s *Session) Apply(op func(*Tree) (*Tree, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := op(s.tree)
	if err != nil {
		return err
	}
	s.tree = next
	return nil
}

// BeginLookup marks the start of a record load and returns its generation
// token. Tokens increase monotonically; a newer BeginLookup supersedes every
// earlier one.
func (s *Session) BeginLookup() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookupGen++
	return s.lookupGen
}

// AcceptLookup installs the tree produced by a completed record load, but
// only when the load's generation is still current. It reports whether the
// result was accepted; stale results are dropped without touching state.
func (s *Session) AcceptLookup(gen uint64, tree *Tree) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.lookupGen || tree == nil {
		return false
	}
	s.tree = tree
	return true
}
