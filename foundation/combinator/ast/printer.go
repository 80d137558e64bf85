// File: printer.go
// Title: AST Tree Printer
// Description: Renders a fragment list as an indented text tree: leaves as
//              name: "value" lines, groups as name: { ... } blocks indented
//              four spaces per nesting level.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/msto63/pcomb/foundation/utils/stringx"
)

// IndentWidth is the number of spaces per nesting level
const IndentWidth = 4

// Print writes the tree dump of fragments to w
func Print(w io.Writer, fragments []Fragment) error {
	p := &printer{w: w}
	p.list(fragments, 0)
	return p.err
}

// Format returns the tree dump of fragments as a string
func Format(fragments []Fragment) string {
	var sb strings.Builder
	_ = Print(&sb, fragments)
	return sb.String()
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) list(fragments []Fragment, level int) {
	indent := stringx.Indent(level, IndentWidth)
	for _, f := range fragments {
		if f.IsLeaf() {
			p.printf("%s%s: %q\n", indent, f.Name, f.leaf)
			continue
		}
		p.printf("%s%s: {\n", indent, f.Name)
		p.list(f.children, level+1)
		p.printf("%s}\n", indent)
	}
}
