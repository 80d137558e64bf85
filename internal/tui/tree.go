// ============================================================================
// pcomb - Parser-Combinator Engine
// ============================================================================
//
// Package:     tui
// Description: Terminal rendering of parse results: a static tree view and
//              an interactive AST explorer
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package tui

import (
	"fmt"
	"strconv"
	"strings"

	mdwast "github.com/msto63/pcomb/foundation/combinator/ast"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	branchPipe = "│   "
	branchNone = "    "
)

// RenderTree renders fragments as an indented tree with box-drawing branches
func RenderTree(fragments []mdwast.Fragment, st Styles) string {
	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(nodeLabel(f, st))
		sb.WriteByte('\n')
		if children, ok := f.Children(); ok {
			writeBranches(&sb, children, "", st)
		}
	}
	return sb.String()
}

func writeBranches(sb *strings.Builder, fragments []mdwast.Fragment, prefix string, st Styles) {
	for i, f := range fragments {
		branch, next := branchMid, branchPipe
		if i == len(fragments)-1 {
			branch, next = branchLast, branchNone
		}
		sb.WriteString(st.Branch.Render(prefix + branch))
		sb.WriteString(nodeLabel(f, st))
		sb.WriteByte('\n')
		if children, ok := f.Children(); ok {
			writeBranches(sb, children, prefix+next, st)
		}
	}
}

// nodeLabel renders `name: "value"` for leaves and `name (n)` for groups
func nodeLabel(f mdwast.Fragment, st Styles) string {
	if v, ok := f.Leaf(); ok {
		return st.Name.Render(f.Name) + ": " + st.Value.Render(strconv.Quote(v))
	}
	return st.Group.Render(f.Name) + " " + st.Count.Render(fmt.Sprintf("(%d)", f.Len()))
}
