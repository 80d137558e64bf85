// File: example_test.go
// Title: Parser Examples
// Description: Example usage of primitives, naming and forward references.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial examples

package parser_test

import (
	"fmt"
	"os"

	"github.com/msto63/pcomb/foundation/combinator/ast"
	"github.com/msto63/pcomb/foundation/combinator/parser"
)

// ExampleMapTo names the text matched by a rule
func ExampleMapTo() {
	number := parser.MapTo(parser.Many1(parser.CharInRange('0', '9')), "number")

	r := number.Parse("42+x")
	fmt.Println(r.Status, r.Matched, r.Rest)
	fmt.Println(r.Results[0])

	// Output:
	// Success 42 +x
	// number: "42"
}

// ExampleListOf shows that every list element ends up in an "item" group
func ExampleListOf() {
	ws := parser.Many(parser.Char(' '))
	name := parser.MapTo(parser.Many1(parser.CharInRange('a', 'z')), "name")

	r := parser.ListOf(',', name, ws).Parse("a, bc,d)")
	fmt.Printf("matched %q, rest %q\n", r.Matched, r.Rest)
	_ = ast.Print(os.Stdout, r.Results)

	// Output:
	// matched "a, bc,d", rest ")"
	// item: {
	//     name: "a"
	// }
	// item: {
	//     name: "bc"
	// }
	// item: {
	//     name: "d"
	// }
}

// ExampleNewRef builds a recursive rule for nested parentheses
func ExampleNewRef() {
	nested := parser.NewRef("nested")
	if err := nested.Bind(parser.Opt(parser.Sequence(parser.Char('('), nested.Parser(), parser.Char(')')))); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(nested.Parser().Parse("(())x").Matched)
	fmt.Println(nested.Bind(parser.Null()))

	// Output:
	// (())
	// reference "nested" is already bound
}
