// File: grammar.go
// Title: Grammar
// Description: An immutable set of named rules with a start rule, produced
//              by Builder.Build.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package registry

import (
	"fmt"
	"strings"

	"github.com/msto63/pcomb/foundation/combinator/parser"
)

// Grammar is a set of named rules with a start rule
type Grammar struct {
	name  string
	start string
	rules map[string]*parser.Parser
	order []string
}

// Name returns the grammar name
func (g *Grammar) Name() string {
	return g.name
}

// StartName returns the name of the start rule
func (g *Grammar) StartName() string {
	return g.start
}

// Start returns the start rule
func (g *Grammar) Start() *parser.Parser {
	return g.rules[g.start]
}

// Rule looks up a rule by name
func (g *Grammar) Rule(name string) (*parser.Parser, bool) {
	p, ok := g.rules[name]
	return p, ok
}

// Rules returns the rule names in definition order
func (g *Grammar) Rules() []string {
	return append([]string(nil), g.order...)
}

// Parse applies the start rule to input
func (g *Grammar) Parse(input string) parser.Result {
	return g.Start().Parse(input)
}

// Describe renders the definition of one rule, printing references to
// other rules by name
func (g *Grammar) Describe(name string) (string, bool) {
	p, ok := g.rules[name]
	if !ok {
		return "", false
	}
	return parser.Describe(p, g.names()), true
}

func (g *Grammar) names() map[*parser.Parser]string {
	names := make(map[*parser.Parser]string, len(g.rules))
	for _, name := range g.order {
		names[g.rules[name]] = name
	}
	return names
}

// String renders every rule as "name = definition", one per line, with
// references to other rules printed by name.
func (g *Grammar) String() string {
	names := g.names()

	width := 0
	for _, name := range g.order {
		if len(name) > width {
			width = len(name)
		}
	}

	var sb strings.Builder
	for _, name := range g.order {
		marker := " "
		if name == g.start {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %-*s = %s\n", marker, width, name, parser.Describe(g.rules[name], names))
	}
	return sb.String()
}
