// File: fragment.go
// Title: AST Fragment Definitions
// Description: Defines the named fragment that parsers attach to match
//              results. A fragment value is a tagged union of a leaf string
//              or an ordered list of child fragments; the two cases are only
//              reachable through tag-checking accessors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2026-10-18 v0.2.0: Replaced command nodes with generic named fragments

package ast

import (
	"fmt"
	"strings"
)

// Kind tags the value held by a Fragment
type Kind int

const (
	// KindLeaf marks a fragment holding matched text
	KindLeaf Kind = iota

	// KindGroup marks a fragment holding child fragments
	KindGroup
)

// String returns string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Fragment is one named node of the output tree.
// Fragments are immutable values: constructors and accessors copy slices.
type Fragment struct {
	Name string

	kind     Kind
	leaf     string
	children []Fragment
}

// NewLeaf creates a leaf fragment
func NewLeaf(name, value string) Fragment {
	return Fragment{Name: name, kind: KindLeaf, leaf: value}
}

// NewGroup creates a group fragment over a copy of children
func NewGroup(name string, children []Fragment) Fragment {
	return Fragment{Name: name, kind: KindGroup, children: Clone(children)}
}

// Kind returns the tag of the fragment value
func (f Fragment) Kind() Kind {
	return f.kind
}

// IsLeaf reports whether the fragment holds matched text
func (f Fragment) IsLeaf() bool {
	return f.kind == KindLeaf
}

// IsGroup reports whether the fragment holds child fragments
func (f Fragment) IsGroup() bool {
	return f.kind == KindGroup
}

// Leaf returns the leaf text; ok is false for groups
func (f Fragment) Leaf() (value string, ok bool) {
	if f.kind != KindLeaf {
		return "", false
	}
	return f.leaf, true
}

// Children returns a copy of the child fragments; ok is false for leaves
func (f Fragment) Children() (children []Fragment, ok bool) {
	if f.kind != KindGroup {
		return nil, false
	}
	return Clone(f.children), true
}

// Len returns the number of direct children, 0 for leaves
func (f Fragment) Len() int {
	return len(f.children)
}

// Child returns the first direct child named name
func (f Fragment) Child(name string) (Fragment, bool) {
	for _, c := range f.children {
		if c.Name == name {
			return c, true
		}
	}
	return Fragment{}, false
}

// Text returns the leaf text of the first direct child named name
func (f Fragment) Text(name string) string {
	c, ok := f.Child(name)
	if !ok {
		return ""
	}
	v, _ := c.Leaf()
	return v
}

// Equal reports whether two fragments have the same name and value tree
func (f Fragment) Equal(other Fragment) bool {
	if f.Name != other.Name || f.kind != other.kind {
		return false
	}
	if f.kind == KindLeaf {
		return f.leaf == other.leaf
	}
	return EqualAll(f.children, other.children)
}

// String renders the fragment on one line, e.g. const: {type: "const", name: "x"}
func (f Fragment) String() string {
	var sb strings.Builder
	writeCompact(&sb, f)
	return sb.String()
}

func writeCompact(sb *strings.Builder, f Fragment) {
	if f.kind == KindLeaf {
		fmt.Fprintf(sb, "%s: %q", f.Name, f.leaf)
		return
	}
	sb.WriteString(f.Name)
	sb.WriteString(": {")
	for i, c := range f.children {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeCompact(sb, c)
	}
	sb.WriteString("}")
}

// Clone returns a shallow copy of a fragment list; nil stays nil
func Clone(fragments []Fragment) []Fragment {
	if fragments == nil {
		return nil
	}
	out := make([]Fragment, len(fragments))
	copy(out, fragments)
	return out
}

// Concat returns a new list holding a followed by b
func Concat(a, b []Fragment) []Fragment {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]Fragment, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// EqualAll compares two fragment lists element by element
func EqualAll(a, b []Fragment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
