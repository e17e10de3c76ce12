// Package formstate holds the session-scoped value tree for one form: a node
// per descriptor, mirroring its cardinality. Trees are immutable from the
// caller's point of view: every mutating operation returns a fresh tree, so
// each edit is an independent, observable snapshot.
package formstate

import "github.com/goliatone/go-metaform/pkg/model"

// Shape discriminates the three node layouts.
type Shape string

const (
	ShapeScalar Shape = "scalar"
	ShapeMulti  Shape = "multi"
	ShapeGroup  Shape = "group"
)

// Node holds the current value(s) for one descriptor. Exactly one of Value,
// Entries, or Instances is meaningful, selected by Shape. All leaf values are
// strings: form input is textual, and the validation and submission engines
// parse typed lexemes out of it.
type Node struct {
	Shape     Shape
	Value     string
	Entries   []string
	Instances []Instance
}

// Instance is one repetition of a group field's child set, keyed by child
// descriptor key.
type Instance map[string]*Node

// Empty reports whether the node carries no non-blank leaf value.
func (n *Node) Empty() bool {
	if n == nil {
		return true
	}
	switch n.Shape {
	case ShapeScalar:
		return n.Value == ""
	case ShapeMulti:
		for _, entry := range n.Entries {
			if entry != "" {
				return false
			}
		}
		return true
	case ShapeGroup:
		for _, instance := range n.Instances {
			for _, child := range instance {
				if !child.Empty() {
					return false
				}
			}
		}
		return true
	default:
		return true
	}
}

func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Shape: n.Shape, Value: n.Value}
	if n.Entries != nil {
		out.Entries = append([]string(nil), n.Entries...)
	}
	if n.Instances != nil {
		out.Instances = make([]Instance, len(n.Instances))
		for i, instance := range n.Instances {
			out.Instances[i] = instance.clone()
		}
	}
	return out
}

func (inst Instance) clone() Instance {
	out := make(Instance, len(inst))
	for key, node := range inst {
		out[key] = node.clone()
	}
	return out
}

// seedNode builds the default node for a descriptor: scalars seed to "",
// multi fields to a single blank entry, and groups to one empty instance.
// A group-multi field seeds zero instances only when its schema explicitly
// opted out of the editability seed via the seed_empty extension.
func seedNode(field model.Field) *Node {
	switch field.Cardinality {
	case model.CardinalityMulti:
		return &Node{Shape: ShapeMulti, Entries: []string{""}}
	case model.CardinalityGroupSingle:
		return &Node{Shape: ShapeGroup, Instances: []Instance{seedInstance(field)}}
	case model.CardinalityGroupMulti:
		if seedEmpty(field) {
			return &Node{Shape: ShapeGroup, Instances: []Instance{}}
		}
		return &Node{Shape: ShapeGroup, Instances: []Instance{seedInstance(field)}}
	default:
		return &Node{Shape: ShapeScalar, Value: ""}
	}
}

func seedInstance(field model.Field) Instance {
	instance := make(Instance, len(field.Children))
	for _, child := range field.Children {
		instance[child.Key] = seedNode(child)
	}
	return instance
}

func seedEmpty(field model.Field) bool {
	raw, ok := field.Extensions["seed_empty"]
	if !ok {
		return false
	}
	switch typed := raw.(type) {
	case bool:
		return typed
	case string:
		return typed == "true" || typed == "yes"
	default:
		return false
	}
}
