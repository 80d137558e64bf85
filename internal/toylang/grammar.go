// ============================================================================
// pcomb - Parser-Combinator Engine
// ============================================================================
//
// Package:     toylang
// Description: Grammar of a small demo language (const, struct, function,
//              if, for and binary expressions) built on the combinators
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package toylang

import (
	"github.com/msto63/pcomb/foundation/combinator/parser"
	"github.com/msto63/pcomb/foundation/combinator/registry"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
)

// GrammarName identifies the grammar in logs, dumps and history records
const GrammarName = "toylang"

// StartRule is the rule that parses a whole source file
const StartRule = "program"

// Fragment names produced by the grammar
const (
	NodeProgram    = "ast"
	NodeConst      = "const"
	NodeStruct     = "struct"
	NodeFunction   = "function"
	NodeParameter  = "parameter"
	NodeParameters = "parameters"
	NodeIf         = "if"
	NodeFor        = "for"
	NodeItem       = "item"

	NodeMul      = "MulExpression"
	NodeAdd      = "AddExpression"
	NodeEquality = "EqualityExpression"
)

// NewGrammar builds the toy language grammar. All rules are created here
// and every forward reference is bound before the grammar is returned.
func NewGrammar(logger *mdwlog.Logger) (*registry.Grammar, error) {
	b := registry.NewBuilder(registry.Options{Logger: logger, Name: GrammarName})

	ws := b.Define("whitespace", parser.Opt(parser.Many(parser.CharIn(" \t\r\n"))))
	digit := b.Define("digit", parser.CharInRange('0', '9'))
	letter := b.Define("letter", parser.Choice(parser.CharInRange('a', 'z'), parser.CharInRange('A', 'Z')))
	identifier := b.Define("identifier", parser.Sequence(letter, parser.Many(parser.Choice(letter, digit))))
	integer := b.Define("integer", parser.Many1(digit))

	// blocks and expressions are mutually recursive with the rules below
	expression := b.Ref("expression")
	block := b.Ref("block")

	keyword := func(name, text string) *parser.Parser {
		return parser.MapTo(parser.String(text), name)
	}
	braces := func(p *parser.Parser) *parser.Parser {
		return parser.Sequence(ws, parser.Char('{'), p, ws, parser.Char('}'))
	}
	binary := func(operand *parser.Parser, op1, op2, name string) *parser.Parser {
		return parser.MapTo(parser.Sequence(
			parser.MapTo(operand, "left"),
			parser.Many(parser.Sequence(
				ws,
				parser.MapTo(parser.Choice(parser.String(op1), parser.String(op2)), "operator"),
				ws,
				parser.MapTo(operand, "right"),
			)),
		), name)
	}

	parenExp := b.Define("parenExpression", parser.Sequence(
		ws, parser.Char('('),
		ws, expression,
		ws, parser.Char(')'),
	))
	value := b.Define("value", parser.Choice(integer, identifier, parenExp))

	mulExp := b.Define("mulExpression", binary(value, "*", "/", NodeMul))
	addExp := b.Define("addExpression", binary(mulExp, "+", "-", NodeAdd))
	b.Define("expression", binary(addExp, "==", "!=", NodeEquality))

	ifStmt := b.Define("if", parser.MapTo(parser.Sequence(
		ws, keyword("type", "if"),
		ws, parser.MapTo(expression, "condition"),
		braces(block),
	), NodeIf))

	forStmt := b.Define("for", parser.MapTo(parser.Sequence(
		ws, keyword("type", "for"),
		ws, parser.MapTo(identifier, "variable"),
		ws, parser.String("in"),
		ws, parser.MapTo(value, "iterable"),
		braces(block),
	), NodeFor))

	b.Define("block", parser.Many(parser.Choice(ifStmt, forStmt)))

	parameter := b.Define("parameter", parser.MapTo(parser.Sequence(
		ws, parser.MapTo(identifier, "type"),
		ws, parser.MapTo(identifier, "name"),
	), NodeParameter))

	constDecl := b.Define("const", parser.MapTo(parser.Sequence(
		ws, keyword("type", "const"),
		ws, parser.MapTo(identifier, "name"),
		ws, parser.Char('='),
		ws, parser.MapTo(integer, "value"),
	), NodeConst))

	field := b.Define("field", parser.Sequence(
		ws, parser.MapTo(identifier, "name"),
		ws, parser.MapTo(identifier, "field"),
		ws, parser.Char(';'),
	))

	function := b.Define("function", parser.MapTo(parser.Sequence(
		ws, keyword("type", "function"),
		ws, parser.MapTo(identifier, "name"),
		ws, parser.Char('('),
		parser.MapTo(parser.ListOf(',', parameter, ws), NodeParameters),
		ws, parser.Char(')'),
		braces(block),
	), NodeFunction))

	structDecl := b.Define("struct", parser.MapTo(parser.Sequence(
		ws, keyword("type", "struct"),
		ws, parser.MapTo(identifier, "name"),
		braces(parser.Many(parser.Choice(field, function))),
	), NodeStruct))

	b.Define(StartRule, parser.Sequence(
		parser.MapTo(parser.Many(parser.Choice(structDecl, constDecl, function)), NodeProgram),
		ws,
	))

	return b.Build(StartRule)
}
