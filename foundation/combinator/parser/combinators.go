// File: combinators.go
// Title: Primitive Parsers and Combinators
// Description: Constructors for the combinator tree: single characters,
//              character sets and ranges, literal strings, the null parser,
//              sequencing, alternation, repetition, optionality, naming and
//              separated lists. Misuse at construction time panics with an
//              INVALID_GRAMMAR error.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package parser

import (
	"fmt"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/pcomb/foundation/core/error"
	mdwstringx "github.com/msto63/pcomb/foundation/utils/stringx"
)

func invalidGrammar(operation, format string, args ...interface{}) {
	panic(mdwerror.Newf(format, args...).
		WithCode(mdwerror.CodeInvalidGrammar).
		WithOperation(operation))
}

func requireParsers(operation string, parsers ...*Parser) {
	for i, p := range parsers {
		if p == nil {
			invalidGrammar(operation, "parser argument %d is nil", i)
		}
	}
}

// Char matches exactly the byte c
func Char(c byte) *Parser {
	return &Parser{kind: kindChar, ch: c}
}

// CharIn matches any byte of set. The failure reported is the one of the
// last byte tried.
func CharIn(set string) *Parser {
	if set == "" {
		invalidGrammar("parser.CharIn", "character set is empty")
	}
	parsers := make([]*Parser, len(set))
	for i := 0; i < len(set); i++ {
		parsers[i] = Char(set[i])
	}
	p := Choice(parsers...)
	if len(set) > 1 {
		p = labeled(p, "["+classLabel(set)+"]")
	}
	return p
}

// CharInRange matches any byte in [lo, hi]
func CharInRange(lo, hi byte) *Parser {
	if lo > hi {
		invalidGrammar("parser.CharInRange", "range '%s'-'%s' is inverted",
			mdwstringx.DisplayByte(lo), mdwstringx.DisplayByte(hi))
	}
	parsers := make([]*Parser, 0, int(hi)-int(lo)+1)
	for c := lo; ; c++ {
		parsers = append(parsers, Char(c))
		if c == hi {
			break
		}
	}
	p := Choice(parsers...)
	if lo != hi {
		p = labeled(p, "["+mdwstringx.DisplayByte(lo)+"-"+mdwstringx.DisplayByte(hi)+"]")
	}
	return p
}

// String matches the literal s. Its failure is the one of the first byte
// that did not match. An empty literal is the null parser.
func String(s string) *Parser {
	if s == "" {
		return Null()
	}
	parsers := make([]*Parser, len(s))
	for i := 0; i < len(s); i++ {
		parsers[i] = Char(s[i])
	}
	p := Sequence(parsers...)
	if len(s) > 1 {
		p = labeled(p, strconv.Quote(s))
	}
	return p
}

// Null always succeeds without consuming input
func Null() *Parser {
	return &Parser{kind: kindNull}
}

// AndThen runs first, then second on the remaining input. Either failure
// is returned unchanged; fragments of both are concatenated in order.
func AndThen(first, second *Parser) *Parser {
	requireParsers("parser.AndThen", first, second)
	return &Parser{kind: kindAndThen, left: first, right: second}
}

// Sequence chains parsers with AndThen from left to right
func Sequence(parsers ...*Parser) *Parser {
	if len(parsers) == 0 {
		invalidGrammar("parser.Sequence", "sequence needs at least one parser")
	}
	requireParsers("parser.Sequence", parsers...)
	p := parsers[0]
	for _, next := range parsers[1:] {
		p = AndThen(p, next)
	}
	return p
}

// OrElse tries first and, if it fails, second at the same position.
// There is no memoization: nested alternatives may re-parse the same
// prefix many times.
func OrElse(first, second *Parser) *Parser {
	requireParsers("parser.OrElse", first, second)
	return &Parser{kind: kindOrElse, left: first, right: second}
}

// Choice chains parsers with OrElse. The first success wins; when all
// alternatives fail the last failure is returned.
func Choice(parsers ...*Parser) *Parser {
	if len(parsers) == 0 {
		invalidGrammar("parser.Choice", "choice needs at least one parser")
	}
	requireParsers("parser.Choice", parsers...)
	p := parsers[0]
	for _, next := range parsers[1:] {
		p = OrElse(p, next)
	}
	return p
}

// Many applies p until it fails and always succeeds. Each repetition that
// produced fragments contributes one group named "item". A repetition that
// succeeds without consuming input ends the loop.
func Many(p *Parser) *Parser {
	requireParsers("parser.Many", p)
	return &Parser{kind: kindMany, inner: p}
}

// Many1 is like Many but fails with p's failure when p does not match at
// least once. It keeps the matched text only, no "item" fragments.
func Many1(p *Parser) *Parser {
	requireParsers("parser.Many1", p)
	return &Parser{kind: kindMany1, inner: p}
}

// Opt matches p or nothing
func Opt(p *Parser) *Parser {
	return Choice(p, Null())
}

// MapTo names the output of p. Without inner fragments the matched text
// becomes a leaf named name (dropped when empty); otherwise the inner
// fragments become the children of a single group named name.
func MapTo(p *Parser, name string) *Parser {
	requireParsers("parser.MapTo", p)
	if mdwstringx.IsBlank(name) {
		invalidGrammar("parser.MapTo", "fragment name is empty")
	}
	return &Parser{kind: kindMapTo, inner: p, name: name}
}

// ListOf matches an optional element followed by any number of
// separator-element pairs, with whitespace around each separator. The first
// element is named "item" like the repetitions, so consumers treat every
// "item" the same way.
func ListOf(separator byte, element, whitespace *Parser) *Parser {
	requireParsers("parser.ListOf", element, whitespace)
	return Sequence(
		MapTo(Opt(Sequence(whitespace, element)), "item"),
		Many(Sequence(whitespace, Char(separator), whitespace, element)),
	)
}

// labeled returns a shallow copy of p that renders as label in grammar dumps
func labeled(p *Parser, label string) *Parser {
	c := *p
	c.label = label
	return &c
}

func classLabel(set string) string {
	var sb strings.Builder
	for i := 0; i < len(set); i++ {
		switch set[i] {
		case ']', '\\', '-':
			sb.WriteByte('\\')
			sb.WriteByte(set[i])
		default:
			sb.WriteString(mdwstringx.DisplayByte(set[i]))
		}
	}
	return sb.String()
}

// Label returns a copy of p that renders as label in grammar dumps,
// without changing what it matches.
func Label(p *Parser, label string) *Parser {
	requireParsers("parser.Label", p)
	if label == "" {
		return p
	}
	return labeled(p, fmt.Sprintf("<%s>", label))
}
