package formstate

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-metaform/pkg/model"
)

var (
	// ErrUnknownField reports a path whose field key has no node.
	ErrUnknownField = errors.New("formstate: unknown field")
	// ErrShapeMismatch reports a path that does not fit the node's shape.
	ErrShapeMismatch = errors.New("formstate: path does not match field shape")
	// ErrIndexOutOfRange reports an entry or instance index beyond the node.
	ErrIndexOutOfRange = errors.New("formstate: index out of range")
	// ErrMinEntries guards the one-visible-row minimum of multi fields.
	ErrMinEntries = errors.New("formstate: cannot remove the last entry")
	// ErrMaxEntries guards the maxEntries bound of repeated fields.
	ErrMaxEntries = errors.New("formstate: entry limit reached")
	// ErrMinInstances guards required group fields against depopulation.
	ErrMinInstances = errors.New("formstate: cannot remove the last instance")
)

// Tree is the state snapshot for one form session. A Tree is never mutated
// in place; operations deep-copy first and return the copy.
type Tree struct {
	form  model.Form
	nodes map[string]*Node
}

// Initialize seeds a tree with the default node for every descriptor.
func Initialize(form model.Form) *Tree {
	nodes := make(map[string]*Node, len(form.Fields))
	for _, field := range form.Fields {
		nodes[field.Key] = seedNode(field)
	}
	return &Tree{form: form, nodes: nodes}
}

// Form returns the descriptors this tree mirrors.
func (t *Tree) Form() model.Form {
	return t.form
}

// Node returns the state node for a top-level field key.
func (t *Tree) Node(key string) (*Node, bool) {
	node, ok := t.nodes[key]
	return node, ok
}

// Get resolves a path to its current scalar value.
func (t *Tree) Get(path Path) (string, error) {
	node, ok := t.nodes[path.Field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, path.Field)
	}
	switch node.Shape {
	case ShapeScalar:
		return node.Value, nil
	case ShapeMulti:
		idx := entryIndex(path.Index)
		if idx >= len(node.Entries) {
			return "", fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
		}
		return node.Entries[idx], nil
	case ShapeGroup:
		child, err := childNode(node, path)
		if err != nil {
			return "", err
		}
		switch child.Shape {
		case ShapeMulti:
			idx := entryIndex(path.ChildIndex)
			if idx >= len(child.Entries) {
				return "", fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
			}
			return child.Entries[idx], nil
		default:
			return child.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrShapeMismatch, path)
}

// SetValue writes one scalar slot and returns the resulting snapshot. The
// receiver is left untouched.
func (t *Tree) SetValue(path Path, value string) (*Tree, error) {
	next := t.clone()
	node, ok := next.nodes[path.Field]
	if !ok {
		return t, fmt.Errorf("%w: %q", ErrUnknownField, path.Field)
	}

	switch node.Shape {
	case ShapeScalar:
		if path.Child != "" {
			return t, fmt.Errorf("%w: %s", ErrShapeMismatch, path)
		}
		node.Value = value
	case ShapeMulti:
		idx := entryIndex(path.Index)
		if idx >= len(node.Entries) {
			return t, fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
		}
		node.Entries[idx] = value
	case ShapeGroup:
		child, err := childNode(node, path)
		if err != nil {
			return t, err
		}
		switch child.Shape {
		case ShapeMulti:
			idx := entryIndex(path.ChildIndex)
			if idx >= len(child.Entries) {
				return t, fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
			}
			child.Entries[idx] = value
		case ShapeScalar:
			child.Value = value
		default:
			return t, fmt.Errorf("%w: %s", ErrShapeMismatch, path)
		}
	default:
		return t, fmt.Errorf("%w: %s", ErrShapeMismatch, path)
	}
	return next, nil
}

// AddEntry appends a blank slot to a multi field, or to a multi child inside
// a group instance when the path descends. Refused when the field's
// maxEntries bound is already met.
func (t *Tree) AddEntry(path Path) (*Tree, error) {
	field, ok := t.form.Field(path.Field)
	if !ok {
		return t, fmt.Errorf("%w: %q", ErrUnknownField, path.Field)
	}

	next := t.clone()
	node := next.nodes[path.Field]

	if path.Child == "" {
		if node.Shape != ShapeMulti {
			return t, fmt.Errorf("%w: %s", ErrShapeMismatch, path)
		}
		if max := field.Bounds.MaxEntries; max > 0 && len(node.Entries) >= max {
			return t, fmt.Errorf("%w: %s has %d entries", ErrMaxEntries, path.Field, len(node.Entries))
		}
		node.Entries = append(node.Entries, "")
		return next, nil
	}

	child, err := childNode(node, path)
	if err != nil {
		return t, err
	}
	if child.Shape != ShapeMulti {
		return t, fmt.Errorf("%w: %s", ErrShapeMismatch, path)
	}
	childField, ok := field.Child(path.Child)
	if ok {
		if max := childField.Bounds.MaxEntries; max > 0 && len(child.Entries) >= max {
			return t, fmt.Errorf("%w: %s has %d entries", ErrMaxEntries, path, len(child.Entries))
		}
	}
	child.Entries = append(child.Entries, "")
	return next, nil
}

// RemoveEntry deletes one slot from a multi field, refusing to drop below the
// single visible row every rendered multi field keeps.
func (t *Tree) RemoveEntry(path Path, index int) (*Tree, error) {
	next := t.clone()
	node, ok := next.nodes[path.Field]
	if !ok {
		return t, fmt.Errorf("%w: %q", ErrUnknownField, path.Field)
	}

	target := node
	if path.Child != "" {
		child, err := childNode(node, path)
		if err != nil {
			return t, err
		}
		target = child
	}
	if target.Shape != ShapeMulti {
		return t, fmt.Errorf("%w: %s", ErrShapeMismatch, path)
	}
	if len(target.Entries) <= 1 {
		return t, fmt.Errorf("%w: %s", ErrMinEntries, path)
	}
	if index < 0 || index >= len(target.Entries) {
		return t, fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, path, index)
	}
	target.Entries = append(target.Entries[:index], target.Entries[index+1:]...)
	return next, nil
}

// AddGroupInstance appends a freshly seeded instance to a group-multi field.
func (t *Tree) AddGroupInstance(path Path) (*Tree, error) {
	field, ok := t.form.Field(path.Field)
	if !ok {
		return t, fmt.Errorf("%w: %q", ErrUnknownField, path.Field)
	}
	if field.Cardinality != model.CardinalityGroupMulti {
		return t, fmt.Errorf("formstate: field %q is not a repeatable group", path.Field)
	}

	next := t.clone()
	node := next.nodes[path.Field]
	if max := field.Bounds.MaxEntries; max > 0 && len(node.Instances) >= max {
		return t, fmt.Errorf("%w: %s has %d instances", ErrMaxEntries, path.Field, len(node.Instances))
	}
	node.Instances = append(node.Instances, seedInstance(field))
	return next, nil
}

// RemoveGroupInstance deletes one instance. A required group keeps at least
// one instance; optional groups may empty out completely.
func (t *Tree) RemoveGroupInstance(path Path, index int) (*Tree, error) {
	field, ok := t.form.Field(path.Field)
	if !ok {
		return t, fmt.Errorf("%w: %q", ErrUnknownField, path.Field)
	}

	next := t.clone()
	node := next.nodes[path.Field]
	if node.Shape != ShapeGroup {
		return t, fmt.Errorf("%w: %s", ErrShapeMismatch, path)
	}
	if field.Required && len(node.Instances) <= 1 {
		return t, fmt.Errorf("%w: %s", ErrMinInstances, path.Field)
	}
	if index < 0 || index >= len(node.Instances) {
		return t, fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, path, index)
	}
	node.Instances = append(node.Instances[:index], node.Instances[index+1:]...)
	return next, nil
}

func (t *Tree) clone() *Tree {
	nodes := make(map[string]*Node, len(t.nodes))
	for key, node := range t.nodes {
		nodes[key] = node.clone()
	}
	return &Tree{form: t.form, nodes: nodes}
}

func childNode(node *Node, path Path) (*Node, error) {
	if node.Shape != ShapeGroup || path.Child == "" {
		return nil, fmt.Errorf("%w: %s", ErrShapeMismatch, path)
	}
	idx := entryIndex(path.Index)
	if idx >= len(node.Instances) {
		return nil, fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
	}
	child, ok := node.Instances[idx][path.Child]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	return child, nil
}

// entryIndex treats an unset index as slot zero so single-entry access does
// not force callers to spell out [0].
func entryIndex(index int) int {
	if index < 0 {
		return 0
	}
	return index
}
