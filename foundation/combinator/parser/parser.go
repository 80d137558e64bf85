// File: parser.go
// Title: Parser Variant Tree and Evaluator
// Description: A Parser is an immutable node of a combinator tree. Parsing
//              walks the tree recursively with an evaluator that owns the
//              per-call state: optional depth and step limits, statistics
//              and the trace hook. Parsers are safe for concurrent use once
//              every reference they contain is bound.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial recursive descent parser for TCOL commands
// - 2026-10-18 v0.2.0: Replaced token parser with combinator tree evaluation

package parser

import (
	"fmt"

	mdwast "github.com/msto63/pcomb/foundation/combinator/ast"
	mdwerror "github.com/msto63/pcomb/foundation/core/error"
	mdwstringx "github.com/msto63/pcomb/foundation/utils/stringx"
)

type kind int

const (
	kindChar kind = iota
	kindNull
	kindAndThen
	kindOrElse
	kindMany
	kindMany1
	kindMapTo
	kindRef
)

// Parser is a node of a combinator tree. Build parsers with the
// constructors in this package; the zero value is not usable.
type Parser struct {
	kind  kind
	ch    byte
	left  *Parser // AndThen, OrElse
	right *Parser // AndThen, OrElse
	inner *Parser // Many, Many1, MapTo
	name  string  // MapTo
	ref   *Ref
	label string // set by String, CharIn, CharInRange for grammar dumps
}

// Limits bounds a single evaluation. Zero values mean unlimited.
type Limits struct {
	MaxDepth int // nesting depth of parser invocations
	MaxSteps int // total parser invocations
}

// TraceEvent describes the completion of a named (MapTo) parser
type TraceEvent struct {
	Rule    string
	Depth   int
	Status  Status
	Matched string
	Error   string
}

// Options configures Evaluate
type Options struct {
	Limits
	Trace func(TraceEvent)
}

// Stats reports the work done by one evaluation
type Stats struct {
	Steps    int
	MaxDepth int
}

// Parse applies p to input without limits. Nesting is bounded only by the
// goroutine stack; use ParseWithLimits for untrusted input.
func (p *Parser) Parse(input string) Result {
	e := &evaluator{}
	return e.eval(p, input)
}

// ParseWithLimits applies p to input, aborting the whole parse with a
// RECURSION_LIMIT or STEP_LIMIT error when a limit is exceeded. The abort
// is returned alongside a Failure result and is never recovered by
// alternation or repetition.
func (p *Parser) ParseWithLimits(input string, limits Limits) (Result, Stats, error) {
	return p.Evaluate(input, Options{Limits: limits})
}

// Evaluate applies p to input with limits and an optional trace hook
func (p *Parser) Evaluate(input string, opts Options) (Result, Stats, error) {
	e := &evaluator{limits: opts.Limits, trace: opts.Trace}
	result := e.eval(p, input)
	if e.abort != nil {
		return result, e.stats, e.abort
	}
	return result, e.stats, nil
}

type evaluator struct {
	limits Limits
	trace  func(TraceEvent)
	stats  Stats
	depth  int
	abort  *mdwerror.Error
}

func (e *evaluator) eval(p *Parser, input string) Result {
	if e.abort != nil {
		return e.aborted()
	}

	e.stats.Steps++
	if e.limits.MaxSteps > 0 && e.stats.Steps > e.limits.MaxSteps {
		e.abort = mdwerror.Newf("step limit exceeded: more than %d parser invocations", e.limits.MaxSteps).
			WithCode(mdwerror.CodeStepLimit).
			WithOperation("parser.Evaluate").
			WithDetail("max_steps", e.limits.MaxSteps)
		return e.aborted()
	}

	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.stats.MaxDepth {
		e.stats.MaxDepth = e.depth
	}
	if e.limits.MaxDepth > 0 && e.depth > e.limits.MaxDepth {
		e.abort = mdwerror.Newf("recursion limit exceeded: nesting deeper than %d", e.limits.MaxDepth).
			WithCode(mdwerror.CodeRecursionLimit).
			WithOperation("parser.Evaluate").
			WithDetail("max_depth", e.limits.MaxDepth).
			WithDetail("remaining_input", len(input))
		return e.aborted()
	}

	switch p.kind {
	case kindChar:
		return matchChar(p.ch, input)
	case kindNull:
		return Succeed("", input)
	case kindAndThen:
		return e.andThen(p, input)
	case kindOrElse:
		return e.orElse(p, input)
	case kindMany:
		return e.many(p, input)
	case kindMany1:
		return e.many1(p, input)
	case kindMapTo:
		return e.mapTo(p, input)
	case kindRef:
		return e.eval(p.ref.target(), input)
	default:
		panic(mdwerror.Newf("unknown parser kind %d", p.kind).WithCode(mdwerror.CodeInternal))
	}
}

func (e *evaluator) aborted() Result {
	return Fail(e.abort.Code(), e.abort.Message())
}

func matchChar(c byte, input string) Result {
	if input == "" {
		return Fail(mdwerror.CodeEndOfInput,
			fmt.Sprintf("end of input: expected '%s'", mdwstringx.DisplayByte(c)))
	}
	if input[0] != c {
		return Fail(mdwerror.CodeUnexpectedCharacter,
			fmt.Sprintf("expected '%s' but got '%s'", mdwstringx.DisplayByte(c), mdwstringx.DisplayByte(input[0])))
	}
	return Succeed(input[:1], input[1:])
}

// consumed returns the prefix of input that precedes rest.
// rest is always a suffix of input, so this equals the concatenation of
// every matched piece between the two positions.
func consumed(input, rest string) string {
	return input[:len(input)-len(rest)]
}

func (e *evaluator) andThen(p *Parser, input string) Result {
	first := e.eval(p.left, input)
	if first.IsFailure() {
		return first
	}
	second := e.eval(p.right, first.Rest)
	if second.IsFailure() {
		return second
	}
	return Succeed(consumed(input, second.Rest), second.Rest).Combine(first).Combine(second)
}

func (e *evaluator) orElse(p *Parser, input string) Result {
	first := e.eval(p.left, input)
	if first.IsSuccess() || e.abort != nil {
		return first
	}
	return e.eval(p.right, input)
}

func (e *evaluator) many(p *Parser, input string) Result {
	rest := input
	var items []mdwast.Fragment
	for {
		r := e.eval(p.inner, rest)
		if r.IsFailure() {
			if e.abort != nil {
				return r
			}
			break
		}
		// a repetition that consumes nothing would repeat forever
		if len(r.Rest) == len(rest) {
			break
		}
		rest = r.Rest
		if len(r.Results) > 0 {
			items = append(items, mdwast.NewGroup("item", r.Results))
		}
	}
	out := Succeed(consumed(input, rest), rest)
	out.Results = items
	return out
}

func (e *evaluator) many1(p *Parser, input string) Result {
	rest := input
	count := 0
	for {
		r := e.eval(p.inner, rest)
		if r.IsFailure() {
			if count == 0 || e.abort != nil {
				return r
			}
			break
		}
		count++
		if len(r.Rest) == len(rest) {
			break
		}
		rest = r.Rest
	}
	return Succeed(consumed(input, rest), rest)
}

func (e *evaluator) mapTo(p *Parser, input string) Result {
	r := e.eval(p.inner, input)
	if e.trace != nil {
		e.trace(TraceEvent{Rule: p.name, Depth: e.depth, Status: r.Status, Matched: r.Matched, Error: r.Error})
	}
	if r.IsFailure() {
		return r
	}
	if len(r.Results) == 0 {
		return r.Add(p.name, r.Matched)
	}
	return Succeed(r.Matched, r.Rest).AddGroup(p.name, r.Results)
}
