// File: doc.go
// Title: Grammar Registry Package Documentation
// Description: Builds named grammars: rules are declared through forward
//              references, defined in any order and wired together once.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial registry implementation
// - 2026-10-18 v0.2.0: Grammar rule registry for the combinator engine

/*
Package registry assembles grammars from named rules.

A Builder hands out forward references by rule name, so rules can refer to
each other before they are defined. Build binds every reference to its
definition exactly once, checks that nothing is left unbound and returns an
immutable Grammar:

	b := registry.NewBuilder(registry.Options{})
	expr := b.Ref("expr")
	parens := b.Define("parens", parser.Sequence(parser.Char('('), expr, parser.Char(')')))
	b.Define("expr", parser.Opt(parens))
	g, err := b.Build("expr")

The Grammar can be shared between goroutines.
*/
package registry
