package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-metaform/pkg/validation"
)

// FlattenErrors converts an error tree into messages keyed by the bracketed
// paths renderers attach to controls: "tags[1]", "contact[0].phone". Array
// and group level messages land under the bare field key. Empty leaves are
// skipped, so an all-clear tree flattens to an empty map.
func FlattenErrors(errors map[string]validation.ErrorNode) map[string][]string {
	if len(errors) == 0 {
		return nil
	}
	flat := make(map[string][]string)
	for key, node := range errors {
		flattenNode(key, node, flat)
	}
	if len(flat) == 0 {
		return nil
	}
	return flat
}

func flattenNode(path string, node validation.ErrorNode, flat map[string][]string) {
	if message := strings.TrimSpace(node.Message); message != "" {
		flat[path] = append(flat[path], message)
	}
	for i, entry := range node.Entries {
		if message := strings.TrimSpace(entry); message != "" {
			flat[path+"["+strconv.Itoa(i)+"]"] = append(flat[path+"["+strconv.Itoa(i)+"]"], message)
		}
	}
	for i, instance := range node.Instances {
		prefix := path + "[" + strconv.Itoa(i) + "]."
		for child, childNode := range instance {
			flattenNode(prefix+child, childNode, flat)
		}
	}
}

// MergeFormErrors concatenates form-level error slices, trimming whitespace
// and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)

	seen := make(map[string]struct{}, len(combined))
	out := make([]string, 0, len(combined))
	for _, message := range combined {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
