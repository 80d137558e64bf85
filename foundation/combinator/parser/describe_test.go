// File: describe_test.go
// Title: Grammar Dump Unit Tests
// Description: Tests for the textual rendering of combinator trees.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial test suite

package parser

import "testing"

func TestParserString(t *testing.T) {
	expr := NewRef("expr")

	tests := []struct {
		name   string
		parser *Parser
		want   string
	}{
		{"char", Char('a'), `'a'`},
		{"control char", Char('\n'), `'\n'`},
		{"null", Null(), "null"},
		{"literal", String("if"), `"if"`},
		{"single char literal", String("x"), `'x'`},
		{"set", CharIn(" \t-"), `[ \t\-]`},
		{"range", CharInRange('a', 'z'), "[a-z]"},
		{"sequence is flattened", Sequence(Char('a'), Char('b'), Char('c')), "seq('a', 'b', 'c')"},
		{"choice is flattened", Choice(Char('a'), Char('b'), Char('c')), "alt('a', 'b', 'c')"},
		{"opt", Opt(String("ab")), `opt("ab")`},
		{"many", Many(CharIn("ab")), "many([ab])"},
		{"many1", Many1(CharInRange('0', '9')), "many1([0-9])"},
		{"named", MapTo(String("const"), "type"), `"type"<-"const"`},
		{"reference", Sequence(Char('('), expr.Parser(), Char(')')), "seq('(', &expr, ')')"},
		{"anonymous reference", RefTo(Char('a')), "'a'"},
		{"label", Label(Many(Char(' ')), "ws"), "<ws>"},
		{"nested", Sequence(Opt(Char('-')), Choice(String("0"), Many1(CharInRange('0', '9')))), "seq(opt('-'), alt('0', many1([0-9])))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.parser.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLabelDoesNotChangeMatching(t *testing.T) {
	p := Many1(CharInRange('0', '9'))
	l := Label(p, "integer")
	for _, in := range []string{"", "12a", "x"} {
		if got, want := l.Parse(in), p.Parse(in); got.String() != want.String() {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
}
