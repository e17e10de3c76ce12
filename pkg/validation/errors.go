package validation

// ErrorNode mirrors the shape of the state node it describes: Message for
// scalar fields, Entries for multi fields (one slot per entry), Instances for
// group fields (one child-keyed map per instance). Validation findings are
// data, never Go errors; an all-empty node means the value passed.
//
// Entries slot 0 doubles as the array-level channel: when a multi field
// exceeds its entry cap, the cap message lands in slot 0 and may overwrite a
// per-entry message already there. That shared slot is long-standing observed
// behaviour; revisit before relying on slot 0 carrying per-entry detail.
type ErrorNode struct {
	Message   string
	Entries   []string
	Instances []InstanceErrors
}

// InstanceErrors maps child keys to their error nodes for one group instance.
type InstanceErrors map[string]ErrorNode

// Empty reports whether the node and everything below it is error-free.
func (e ErrorNode) Empty() bool {
	if e.Message != "" {
		return false
	}
	for _, entry := range e.Entries {
		if entry != "" {
			return false
		}
	}
	for _, instance := range e.Instances {
		for _, child := range instance {
			if !child.Empty() {
				return false
			}
		}
	}
	return true
}

// Result aggregates a whole-form validation pass.
type Result struct {
	Errors map[string]ErrorNode
	OK     bool
}
