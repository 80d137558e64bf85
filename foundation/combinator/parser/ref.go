// File: ref.go
// Title: Forward References
// Description: A Ref is a write-once cell that lets grammar rules refer to
//              parsers that are defined later, which is how recursive and
//              mutually recursive rules are built. Binding happens once;
//              invoking an unbound reference is a programmer error and
//              panics with an UNBOUND_REFERENCE error.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package parser

import (
	"sort"
	"sync/atomic"

	mdwerror "github.com/msto63/pcomb/foundation/core/error"
)

// Ref is a forward reference to a parser bound later
type Ref struct {
	name   string
	bound  atomic.Pointer[Parser]
	handle *Parser
}

// NewRef creates an unbound reference; name is used in errors and dumps
func NewRef(name string) *Ref {
	r := &Ref{name: name}
	r.handle = &Parser{kind: kindRef, ref: r}
	return r
}

// RefTo wraps p in an already bound reference
func RefTo(p *Parser) *Parser {
	requireParsers("parser.RefTo", p)
	r := NewRef("")
	r.bound.Store(p)
	return r.handle
}

// Name returns the reference name
func (r *Ref) Name() string {
	return r.name
}

// Parser returns the parser that delegates to the bound target.
// The same handle is returned on every call.
func (r *Ref) Parser() *Parser {
	return r.handle
}

// Bound reports whether the reference has been bound
func (r *Ref) Bound() bool {
	return r.bound.Load() != nil
}

// Bind sets the target. It fails with REFERENCE_REBOUND on a second call.
// A Bind that happens before a parse is visible to that parse on any
// goroutine.
func (r *Ref) Bind(p *Parser) error {
	if p == nil {
		return mdwerror.Newf("reference %q: cannot bind nil parser", r.name).
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("parser.Ref.Bind")
	}
	if !r.bound.CompareAndSwap(nil, p) {
		return mdwerror.Newf("reference %q is already bound", r.name).
			WithCode(mdwerror.CodeReferenceRebound).
			WithOperation("parser.Ref.Bind").
			WithDetail("reference", r.name)
	}
	return nil
}

func (r *Ref) target() *Parser {
	p := r.bound.Load()
	if p == nil {
		panic(mdwerror.Newf("reference %q used before it was bound", r.name).
			WithCode(mdwerror.CodeUnboundReference).
			WithOperation("parser.Parse").
			WithDetail("reference", r.name))
	}
	return p
}

// Validate walks the tree under p and reports every unbound reference
// with an UNBOUND_REFERENCE error.
func Validate(p *Parser) error {
	if p == nil {
		return mdwerror.New("parser is nil").
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("parser.Validate")
	}

	seen := make(map[*Parser]bool)
	unbound := make(map[string]bool)
	var visit func(*Parser)
	visit = func(n *Parser) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		switch n.kind {
		case kindAndThen, kindOrElse:
			visit(n.left)
			visit(n.right)
		case kindMany, kindMany1, kindMapTo:
			visit(n.inner)
		case kindRef:
			if t := n.ref.bound.Load(); t != nil {
				visit(t)
			} else {
				unbound[n.ref.name] = true
			}
		}
	}
	visit(p)

	if len(unbound) == 0 {
		return nil
	}
	names := make([]string, 0, len(unbound))
	for name := range unbound {
		names = append(names, name)
	}
	sort.Strings(names)
	return mdwerror.Newf("grammar has %d unbound reference(s): %v", len(names), names).
		WithCode(mdwerror.CodeUnboundReference).
		WithOperation("parser.Validate").
		WithDetail("references", names)
}
