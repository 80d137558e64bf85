// File: fragment_test.go
// Title: AST Fragment Unit Tests
// Description: Tests for fragment construction, tag-checked accessors,
//              immutability of child lists and equality.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial test suite

package ast

import "testing"

func sampleTree() []Fragment {
	return []Fragment{
		NewGroup("const", []Fragment{
			NewLeaf("type", "const"),
			NewLeaf("name", "x"),
			NewLeaf("value", "100"),
		}),
		NewGroup("struct", []Fragment{
			NewLeaf("type", "struct"),
			NewLeaf("name", "Point"),
			NewGroup("item", []Fragment{
				NewLeaf("name", "int"),
				NewLeaf("field", "x"),
			}),
		}),
	}
}

func TestFragmentAccessors(t *testing.T) {
	leaf := NewLeaf("name", "x")
	if !leaf.IsLeaf() || leaf.IsGroup() || leaf.Kind() != KindLeaf {
		t.Fatalf("leaf tag wrong: %v", leaf.Kind())
	}
	if v, ok := leaf.Leaf(); !ok || v != "x" {
		t.Errorf("Leaf() = %q, %v", v, ok)
	}
	if _, ok := leaf.Children(); ok {
		t.Error("Children() on a leaf should report false")
	}

	group := NewGroup("const", []Fragment{leaf})
	if !group.IsGroup() || group.Kind() != KindGroup {
		t.Fatalf("group tag wrong: %v", group.Kind())
	}
	if _, ok := group.Leaf(); ok {
		t.Error("Leaf() on a group should report false")
	}
	children, ok := group.Children()
	if !ok || len(children) != 1 || !children[0].Equal(leaf) {
		t.Errorf("Children() = %v, %v", children, ok)
	}
	if group.Text("name") != "x" || group.Text("missing") != "" {
		t.Errorf("Text() lookup wrong")
	}
}

func TestFragmentChildrenAreCopied(t *testing.T) {
	src := []Fragment{NewLeaf("a", "1"), NewLeaf("b", "2")}
	group := NewGroup("g", src)

	src[0] = NewLeaf("z", "9")
	if group.Text("a") != "1" {
		t.Error("NewGroup must copy its input slice")
	}

	children, _ := group.Children()
	children[1] = NewLeaf("z", "9")
	if group.Text("b") != "2" {
		t.Error("Children() must return a copy")
	}
}

func TestFragmentEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Fragment
		want bool
	}{
		{"same leaf", NewLeaf("n", "x"), NewLeaf("n", "x"), true},
		{"different value", NewLeaf("n", "x"), NewLeaf("n", "y"), false},
		{"different name", NewLeaf("n", "x"), NewLeaf("m", "x"), false},
		{"leaf vs group", NewLeaf("n", ""), NewGroup("n", nil), false},
		{"same tree", sampleTree()[1], sampleTree()[1], true},
		{"different tree", sampleTree()[0], sampleTree()[1], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFragmentString(t *testing.T) {
	got := sampleTree()[0].String()
	want := `const: {type: "const", name: "x", value: "100"}`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestConcat(t *testing.T) {
	a := []Fragment{NewLeaf("a", "1")}
	b := []Fragment{NewLeaf("b", "2")}

	got := Concat(a, b)
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "b" {
		t.Fatalf("Concat() = %v", got)
	}
	got[0] = NewLeaf("z", "0")
	if a[0].Name != "a" {
		t.Error("Concat() must not alias its inputs")
	}
	if Concat(nil, nil) != nil {
		t.Error("Concat(nil, nil) should be nil")
	}
}
