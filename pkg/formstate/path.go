package formstate

import (
	"fmt"
	"strings"
)

// Path addresses one value slot inside a tree: a field by key, optionally an
// entry or group-instance index, optionally a nested child key with its own
// entry index. Whether Index means "entry" or "instance" follows from the
// addressed node's shape. Unset indexes are -1.
type Path struct {
	Field      string
	Index      int
	Child      string
	ChildIndex int
}

// FieldPath starts a path at a top-level field.
func FieldPath(field string) Path {
	return Path{Field: field, Index: -1, ChildIndex: -1}
}

// At returns a copy of the path with the entry/instance index set.
func (p Path) At(index int) Path {
	p.Index = index
	return p
}

// ChildAt returns a copy of the path descending into a group child.
func (p Path) ChildAt(child string, index int) Path {
	p.Child = child
	p.ChildIndex = index
	return p
}

// String renders the path in bracket form, e.g. "contact[1].phone[0]".
func (p Path) String() string {
	var b strings.Builder
	b.WriteString(p.Field)
	if p.Index >= 0 {
		fmt.Fprintf(&b, "[%d]", p.Index)
	}
	if p.Child != "" {
		b.WriteString(".")
		b.WriteString(p.Child)
		if p.ChildIndex >= 0 {
			fmt.Fprintf(&b, "[%d]", p.ChildIndex)
		}
	}
	return b.String()
}

// ParsePath reads the bracket form produced by String. Field keys may contain
// dots (templated keys such as "field.name.1"), so the child separator is
// only recognized after a bracketed index.
func ParsePath(raw string) (Path, error) {
	path := Path{Index: -1, ChildIndex: -1}
	rest := strings.TrimSpace(raw)
	if rest == "" {
		return Path{}, fmt.Errorf("formstate: empty path")
	}

	open := strings.Index(rest, "[")
	if open < 0 {
		path.Field = rest
		return path, nil
	}

	path.Field = rest[:open]
	index, tail, err := readIndex(rest[open:])
	if err != nil {
		return Path{}, fmt.Errorf("formstate: path %q: %w", raw, err)
	}
	path.Index = index

	if tail == "" {
		return path, nil
	}
	if !strings.HasPrefix(tail, ".") {
		return Path{}, fmt.Errorf("formstate: path %q: expected child segment after index", raw)
	}
	tail = tail[1:]

	open = strings.Index(tail, "[")
	if open < 0 {
		path.Child = tail
		return path, nil
	}
	path.Child = tail[:open]
	index, tail, err = readIndex(tail[open:])
	if err != nil {
		return Path{}, fmt.Errorf("formstate: path %q: %w", raw, err)
	}
	path.ChildIndex = index
	if tail != "" {
		return Path{}, fmt.Errorf("formstate: path %q: trailing segment %q", raw, tail)
	}
	return path, nil
}

func readIndex(rest string) (int, string, error) {
	if !strings.HasPrefix(rest, "[") {
		return 0, "", fmt.Errorf("expected index")
	}
	close := strings.Index(rest, "]")
	if close < 0 {
		return 0, "", fmt.Errorf("unterminated index")
	}
	digits := rest[1:close]
	if digits == "" {
		return 0, "", fmt.Errorf("empty index")
	}
	index := 0
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, "", fmt.Errorf("non-numeric index %q", digits)
		}
		index = index*10 + int(r-'0')
	}
	return index, rest[close+1:], nil
}
