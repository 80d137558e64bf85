// File: builder_test.go
// Title: Grammar Builder Unit Tests
// Description: Tests for rule definition, reference wiring and the errors
//              reported by Build.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial registry tests
// - 2026-10-18 v0.2.0: Rewritten for the grammar builder

package registry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/msto63/pcomb/foundation/combinator/parser"
	mdwerror "github.com/msto63/pcomb/foundation/core/error"
	"github.com/msto63/pcomb/foundation/core/log"
)

func quietBuilder() *Builder {
	return NewBuilder(Options{Logger: log.NewNop(), Name: "test"})
}

// parensGrammar: expr = opt(parens); parens = '(' expr ')'
func parensGrammar(b *Builder) {
	expr := b.Ref("expr")
	parens := b.Define("parens", parser.MapTo(parser.Sequence(parser.Char('('), expr, parser.Char(')')), "parens"))
	b.Define("expr", parser.Opt(parens))
}

func TestBuildRecursiveGrammar(t *testing.T) {
	b := quietBuilder()
	parensGrammar(b)

	g, err := b.Build("expr")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.Name() != "test" || g.StartName() != "expr" {
		t.Errorf("Name/StartName = %q/%q", g.Name(), g.StartName())
	}
	if strings.Join(g.Rules(), ",") != "parens,expr" {
		t.Errorf("Rules() = %v", g.Rules())
	}

	r := g.Parse("(())rest")
	if !r.IsSuccess() || r.Matched != "(())" || r.Rest != "rest" {
		t.Fatalf("Parse() = %v", r)
	}
	// the inner parens has no fragments and becomes a leaf of the outer group
	if len(r.Results) != 1 || r.Results[0].Name != "parens" || r.Results[0].Text("parens") != "()" {
		t.Errorf("Results = %v", r.Results)
	}

	if _, ok := g.Rule("parens"); !ok {
		t.Error("Rule(parens) not found")
	}
	if _, ok := g.Rule("missing"); ok {
		t.Error("Rule(missing) found")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(b *Builder)
		start    string
		wantCode mdwerror.Code
	}{
		{
			name:     "unknown start rule",
			setup:    parensGrammar,
			start:    "program",
			wantCode: mdwerror.CodeUnknownRule,
		},
		{
			name: "reference to undefined rule",
			setup: func(b *Builder) {
				b.Define("main", parser.Sequence(parser.Char('x'), b.Ref("tail")))
			},
			start:    "main",
			wantCode: mdwerror.CodeUnknownRule,
		},
		{
			name: "duplicate rule",
			setup: func(b *Builder) {
				b.Define("main", parser.Char('a'))
				b.Define("main", parser.Char('b'))
			},
			start:    "main",
			wantCode: mdwerror.CodeDuplicateRule,
		},
		{
			name: "empty rule name",
			setup: func(b *Builder) {
				b.Define("", parser.Char('a'))
				b.Define("main", parser.Char('b'))
			},
			start:    "main",
			wantCode: mdwerror.CodeInvalidGrammar,
		},
		{
			name: "nil rule",
			setup: func(b *Builder) {
				b.Define("main", nil)
			},
			start:    "main",
			wantCode: mdwerror.CodeInvalidGrammar,
		},
		{
			name: "foreign unbound reference",
			setup: func(b *Builder) {
				b.Define("main", parser.NewRef("stray").Parser())
			},
			start:    "main",
			wantCode: mdwerror.CodeUnboundReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := quietBuilder()
			tt.setup(b)
			g, err := b.Build(tt.start)
			if g != nil {
				t.Error("Build() returned a grammar despite errors")
			}
			if !mdwerror.HasCode(err, tt.wantCode) {
				t.Errorf("Build() error = %v (code %s), want %s", err, mdwerror.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestBuildCollectsAllErrors(t *testing.T) {
	b := quietBuilder()
	b.Define("main", parser.Sequence(b.Ref("a"), b.Ref("b")))
	b.Define("main", parser.Char('x'))

	_, err := b.Build("main")
	if err == nil {
		t.Fatal("Build() succeeded")
	}
	for _, want := range []string{`"main" is already defined`, `undefined rule "a"`, `undefined rule "b"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err.Error(), want)
		}
	}
	if mdwerror.GetCode(err) != mdwerror.CodeDuplicateRule {
		t.Errorf("GetCode() = %v, want the first error's code", mdwerror.GetCode(err))
	}
}

func TestBuildOnce(t *testing.T) {
	b := quietBuilder()
	parensGrammar(b)
	if _, err := b.Build("expr"); err != nil {
		t.Fatalf("first Build() error = %v", err)
	}
	if _, err := b.Build("expr"); !mdwerror.HasCode(err, mdwerror.CodeInvalidGrammar) {
		t.Errorf("second Build() error = %v", err)
	}
}

func TestRefHandleIsShared(t *testing.T) {
	b := quietBuilder()
	if b.Ref("x") != b.Ref("x") {
		t.Error("Ref() should return one handle per name")
	}
}

func TestGrammarString(t *testing.T) {
	b := quietBuilder()
	ws := b.Define("ws", parser.Opt(parser.Many(parser.CharIn(" \t"))))
	ident := b.Define("ident", parser.Many1(parser.CharInRange('a', 'z')))
	b.Define("decl", parser.MapTo(parser.Sequence(parser.String("let"), ws, parser.MapTo(ident, "name")), "decl"))

	g, err := b.Build("decl")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "  ws    = opt(many([ \\t]))\n" +
		"  ident = many1([a-z])\n" +
		"* decl  = \"decl\"<-seq(\"let\", ws, \"name\"<-ident)\n"
	if got := g.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestGrammarDescribe(t *testing.T) {
	b := quietBuilder()
	ident := b.Define("ident", parser.Many1(parser.CharInRange('a', 'z')))
	b.Define("list", parser.ListOf(',', ident, parser.Null()))

	g, err := b.Build("list")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got, ok := g.Describe("ident"); !ok || got != "many1([a-z])" {
		t.Errorf("Describe(ident) = %q, %v", got, ok)
	}
	if got, _ := g.Describe("list"); !strings.Contains(got, "ident") || strings.Contains(got, "[a-z]") {
		t.Errorf("Describe(list) = %q, should refer to ident by name", got)
	}
	if _, ok := g.Describe("missing"); ok {
		t.Error("Describe(missing) should report false")
	}
}

func TestBuildLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatJSON, Output: &buf})
	b := NewBuilder(Options{Logger: logger})
	b.Define("main", b.Ref("missing"))

	if _, err := b.Build("main"); err == nil {
		t.Fatal("Build() succeeded")
	}
	if !strings.Contains(buf.String(), "UNKNOWN_RULE") {
		t.Errorf("log output %q should carry the error code", buf.String())
	}
}
