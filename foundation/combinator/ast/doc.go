// File: doc.go
// Title: Combinator AST Package Documentation
// Description: Defines the named fragments that make up the output tree of
//              a parse, with printing, traversal and serialization helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST implementation
// - 2026-10-18 v0.2.0: Named fragment trees for the combinator engine

/*
Package ast defines the output tree produced by the combinator engine.

A parse produces an ordered list of Fragments. Each fragment has a name
chosen by the grammar author and a value that is either a leaf string or an
ordered list of child fragments, never both:

	const: {
	    type: "const"
	    name: "x"
	}

The package provides:
  • Fragment construction and tag-checked accessors
  • The indented text dump (Print, Format)
  • Depth-first traversal (Walk, Inspect) and queries (Find, First, Count)
  • JSON and YAML encodings
*/
package ast
