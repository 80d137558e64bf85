package integration

import (
	"strings"
	"testing"

	"github.com/msto63/pcomb/foundation/combinator/parser"
	"github.com/msto63/pcomb/foundation/combinator/registry"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
)

// arithmetic builds: expr = term (("+"|"-") term)*; term = number | "(" expr ")"
func arithmetic(tb testing.TB) *registry.Grammar {
	tb.Helper()

	b := registry.NewBuilder(registry.Options{Logger: mdwlog.NewNop(), Name: "arithmetic"})
	expr := b.Ref("expr")

	digit := b.Define("digit", parser.CharInRange('0', '9'))
	number := b.Define("number", parser.MapTo(parser.Many1(digit), "number"))
	parens := b.Define("parens", parser.Sequence(parser.Char('('), expr, parser.Char(')')))
	term := b.Define("term", parser.Choice(number, parens))
	b.Define("expr", parser.MapTo(parser.Sequence(
		parser.MapTo(term, "left"),
		parser.Many(parser.Sequence(parser.MapTo(parser.CharIn("+-"), "op"), parser.MapTo(term, "right"))),
	), "expr"))

	g, err := b.Build("expr")
	if err != nil {
		tb.Fatalf("Build() error = %v", err)
	}
	return g
}

// nested returns ((...(1+1)+1...)+1) with depth levels of parentheses
func nested(depth int) string {
	return strings.Repeat("(", depth) + "1" + strings.Repeat("+1)", depth)
}

// flat returns 1+1+...+1 with n terms
func flat(n int) string {
	return strings.TrimSuffix(strings.Repeat("1+", n), "+")
}
