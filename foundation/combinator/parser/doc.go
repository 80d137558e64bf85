// File: doc.go
// Title: Combinator Parser Package Documentation
// Description: Backtracking parser combinators over in-memory strings with
//              a naming layer that builds a labeled AST while parsing.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-18 v0.2.0: Parser combinator engine

/*
Package parser implements a backtracking parser-combinator engine.

Grammars are assembled bottom-up from primitives (Char, CharIn, CharInRange,
String, Null) and combinators (AndThen, Sequence, OrElse, Choice, Many,
Many1, Opt, ListOf). MapTo attaches a name to what a parser matched, which is
how the AST is built:

	ws := parser.Opt(parser.Many(parser.CharIn(" \t\r\n")))
	ident := parser.Many1(parser.CharInRange('a', 'z'))
	decl := parser.MapTo(parser.Sequence(
		parser.MapTo(parser.String("const"), "type"), ws,
		parser.MapTo(ident, "name"),
	), "const")

	result := decl.Parse("const x")
	// result.Results: const: {type: "const", name: "x"}

Every attempt returns a Result value. Failures are values too: a failed
sequence reports the innermost primitive's message unchanged, alternation
reports the last alternative's failure, and repetition never fails (Many1
excepted).

Recursive rules use a Ref, a forward reference that is bound exactly once
after the referenced rule has been built. Validate reports references that
were never bound.

Evaluation is a recursive walk over the tree. Parse is unbounded; the
ParseWithLimits entry point caps nesting depth and total steps for untrusted
input. There is no memoization, so ambiguous grammars may re-parse the same
prefix many times.
*/
package parser
