// File: visitor.go
// Title: AST Visitor and Queries
// Description: Implements depth-first traversal over fragment trees with a
//              visitor interface, plus the small query helpers used by the
//              CLI summary and the explorer (Find, First, Count, Depth).
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial visitor pattern implementation
// - 2026-10-18 v0.2.0: Visitor over named fragments, query helpers

package ast

// Visitor receives callbacks during a depth-first walk.
// EnterGroup returns false to skip the group's children; LeaveGroup is
// still called for a skipped group.
type Visitor interface {
	VisitLeaf(f Fragment, depth int)
	EnterGroup(f Fragment, depth int) bool
	LeaveGroup(f Fragment, depth int)
}

// BaseVisitor provides no-op implementations for embedding
type BaseVisitor struct{}

func (BaseVisitor) VisitLeaf(Fragment, int)        {}
func (BaseVisitor) EnterGroup(Fragment, int) bool { return true }
func (BaseVisitor) LeaveGroup(Fragment, int)       {}

// Walk traverses fragments depth-first in order
func Walk(v Visitor, fragments []Fragment) {
	walk(v, fragments, 0)
}

func walk(v Visitor, fragments []Fragment, depth int) {
	for _, f := range fragments {
		if f.IsLeaf() {
			v.VisitLeaf(f, depth)
			continue
		}
		if v.EnterGroup(f, depth) {
			walk(v, f.children, depth+1)
		}
		v.LeaveGroup(f, depth)
	}
}

// Inspect calls fn for every fragment in pre-order. Returning false from fn
// skips the children of that fragment.
func Inspect(fragments []Fragment, fn func(f Fragment, depth int) bool) {
	inspect(fragments, 0, fn)
}

func inspect(fragments []Fragment, depth int, fn func(Fragment, int) bool) {
	for _, f := range fragments {
		if fn(f, depth) && f.IsGroup() {
			inspect(f.children, depth+1, fn)
		}
	}
}

// Find returns every fragment named name, in pre-order
func Find(fragments []Fragment, name string) []Fragment {
	var found []Fragment
	Inspect(fragments, func(f Fragment, _ int) bool {
		if f.Name == name {
			found = append(found, f)
		}
		return true
	})
	return found
}

// First returns the first fragment named name, in pre-order
func First(fragments []Fragment, name string) (Fragment, bool) {
	var (
		found Fragment
		ok    bool
	)
	Inspect(fragments, func(f Fragment, _ int) bool {
		if ok {
			return false
		}
		if f.Name == name {
			found, ok = f, true
			return false
		}
		return true
	})
	return found, ok
}

// Count returns the total number of fragments in the tree
func Count(fragments []Fragment) int {
	n := 0
	Inspect(fragments, func(Fragment, int) bool {
		n++
		return true
	})
	return n
}

// Depth returns the nesting depth of the tree; 0 for an empty list
func Depth(fragments []Fragment) int {
	max := 0
	Inspect(fragments, func(_ Fragment, depth int) bool {
		if depth+1 > max {
			max = depth + 1
		}
		return true
	})
	return max
}

// Names returns a histogram of fragment names
func Names(fragments []Fragment) map[string]int {
	names := make(map[string]int)
	Inspect(fragments, func(f Fragment, _ int) bool {
		names[f.Name]++
		return true
	})
	return names
}
