// File: doc.go
// Title: Combinator Engine Package Documentation
// Description: Entry point that runs a grammar over input with limits,
//              completeness checks, logging and timing.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial TCOL engine package
// - 2026-10-18 v0.2.0: Engine facade over the parser combinators

/*
Package combinator runs parser-combinator grammars.

The building blocks live in the sub-packages:

  • parser   - match results, primitives, combinators and references
  • ast      - the named fragment tree a parse produces
  • registry - named rules wired into a Grammar

An Engine wraps the start rule of a grammar and adds what callers of a
library usually need around a parse: an input size limit, depth and step
limits, an optional check that the whole input was consumed, and structured
logging through core/log. Options can be read from a core/config file:

	[engine]
	max_input_length = 1048576
	max_depth        = 10000
	max_steps        = 0
	require_complete = false

Example:

	engine, err := combinator.NewFromGrammar(grammar, combinator.DefaultOptions())
	if err != nil {
		return err
	}
	outcome, err := engine.Parse(source)
*/
package combinator
