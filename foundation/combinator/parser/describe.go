// File: describe.go
// Title: Grammar Dump
// Description: Renders a combinator tree as compact text, e.g.
//              seq(opt(many([ \t\r\n])), "const"<-"const"). References are
//              shown by name and never expanded, so recursive grammars
//              render finitely.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package parser

import (
	"strconv"
	"strings"

	mdwstringx "github.com/msto63/pcomb/foundation/utils/stringx"
)

// String renders the combinator tree
func (p *Parser) String() string {
	return Describe(p, nil)
}

// Describe renders the tree under p, printing any nested node found in
// names by its name instead of expanding it. Grammar dumps use this to
// show rule definitions in terms of other rules.
func Describe(p *Parser, names map[*Parser]string) string {
	d := &describer{names: names, root: p}
	d.describe(p)
	return d.sb.String()
}

type describer struct {
	sb    strings.Builder
	names map[*Parser]string
	root  *Parser
}

func (d *describer) describe(p *Parser) {
	sb := &d.sb
	if p == nil {
		sb.WriteString("<nil>")
		return
	}
	if name, ok := d.names[p]; ok && p != d.root {
		sb.WriteString(name)
		return
	}
	if p.label != "" {
		sb.WriteString(p.label)
		return
	}

	switch p.kind {
	case kindChar:
		sb.WriteString("'" + mdwstringx.DisplayByte(p.ch) + "'")
	case kindNull:
		sb.WriteString("null")
	case kindAndThen:
		d.list("seq", d.flatten(p, kindAndThen))
	case kindOrElse:
		if p.right.kind == kindNull && p.right.label == "" {
			d.list("opt", []*Parser{p.left})
			return
		}
		d.list("alt", d.flatten(p, kindOrElse))
	case kindMany:
		d.list("many", []*Parser{p.inner})
	case kindMany1:
		d.list("many1", []*Parser{p.inner})
	case kindMapTo:
		sb.WriteString(strconv.Quote(p.name))
		sb.WriteString("<-")
		d.describe(p.inner)
	case kindRef:
		if p.ref.name == "" {
			d.describe(p.ref.bound.Load())
			return
		}
		sb.WriteString("&" + p.ref.name)
	}
}

func (d *describer) list(fn string, parsers []*Parser) {
	d.sb.WriteString(fn)
	d.sb.WriteString("(")
	for i, p := range parsers {
		if i > 0 {
			d.sb.WriteString(", ")
		}
		d.describe(p)
	}
	d.sb.WriteString(")")
}

// flatten collects the operands of a left-folded chain of k nodes,
// stopping at labeled and named nodes
func (d *describer) flatten(p *Parser, k kind) []*Parser {
	if _, named := d.names[p]; named && p != d.root {
		return []*Parser{p}
	}
	if p.kind != k || p.label != "" {
		return []*Parser{p}
	}
	if k == kindOrElse && p.right.kind == kindNull && p.right.label == "" {
		return []*Parser{p}
	}
	return append(d.flatten(p.left, k), d.flatten(p.right, k)...)
}
