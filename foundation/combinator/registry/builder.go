// File: builder.go
// Title: Grammar Builder
// Description: Collects rule definitions and forward references by name
//              and wires them into a Grammar in one step. Errors during
//              definition are collected and reported together by Build.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Simplified command registry
// - 2026-10-18 v0.2.0: Rule builder with forward references

package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/msto63/pcomb/foundation/combinator/parser"
	mdwerror "github.com/msto63/pcomb/foundation/core/error"
	"github.com/msto63/pcomb/foundation/core/log"
	mdwstringx "github.com/msto63/pcomb/foundation/utils/stringx"
)

// Options configures a Builder
type Options struct {
	Logger *log.Logger
	Name   string // grammar name used in logs and dumps
}

// Builder assembles a Grammar from named rules
type Builder struct {
	refs    map[string]*parser.Ref
	rules   map[string]*parser.Parser
	order   []string
	errs    []error
	built   bool
	logger  *log.Logger
	options Options
	mutex   sync.Mutex
}

// NewBuilder creates an empty builder
func NewBuilder(opts Options) *Builder {
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}
	if mdwstringx.IsBlank(opts.Name) {
		opts.Name = "grammar"
	}

	return &Builder{
		refs:    make(map[string]*parser.Ref),
		rules:   make(map[string]*parser.Parser),
		logger:  opts.Logger.WithField("component", "grammar-registry").WithField("grammar", opts.Name),
		options: opts,
	}
}

// Ref returns a forward reference to the rule name. The same handle is
// returned for every call with the same name.
func (b *Builder) Ref(name string) *parser.Parser {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	r, ok := b.refs[name]
	if !ok {
		r = parser.NewRef(name)
		b.refs[name] = r
	}
	return r.Parser()
}

// Define registers p as the rule name and returns p, so definitions can be
// used directly by later rules.
func (b *Builder) Define(name string, p *parser.Parser) *parser.Parser {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	switch {
	case mdwstringx.IsBlank(name):
		b.errs = append(b.errs, mdwerror.New("rule name cannot be empty").
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("registry.Define"))
	case p == nil:
		b.errs = append(b.errs, mdwerror.Newf("rule %q has no parser", name).
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("registry.Define").
			WithDetail("rule", name))
	default:
		if _, exists := b.rules[name]; exists {
			b.errs = append(b.errs, mdwerror.Newf("rule %q is already defined", name).
				WithCode(mdwerror.CodeDuplicateRule).
				WithOperation("registry.Define").
				WithDetail("rule", name))
			break
		}
		b.rules[name] = p
		b.order = append(b.order, name)
	}
	return p
}

// Build binds every reference and returns the grammar starting at start.
// A Builder can be built once.
func (b *Builder) Build(start string) (*Grammar, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.built {
		return nil, mdwerror.New("grammar already built").
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("registry.Build")
	}

	errs := append([]error(nil), b.errs...)

	startRule, ok := b.rules[start]
	if !ok {
		errs = append(errs, mdwerror.Newf("start rule %q is not defined", start).
			WithCode(mdwerror.CodeUnknownRule).
			WithOperation("registry.Build").
			WithDetail("rule", start))
	}

	refNames := make([]string, 0, len(b.refs))
	for name := range b.refs {
		refNames = append(refNames, name)
	}
	sort.Strings(refNames)

	for _, name := range refNames {
		def, defined := b.rules[name]
		if !defined {
			errs = append(errs, mdwerror.Newf("reference to undefined rule %q", name).
				WithCode(mdwerror.CodeUnknownRule).
				WithOperation("registry.Build").
				WithDetail("rule", name))
			continue
		}
		if err := b.refs[name].Bind(def); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		if err := parser.Validate(startRule); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		err := buildError(errs)
		b.logger.LogError(err)
		return nil, err
	}

	b.built = true
	g := &Grammar{
		name:  b.options.Name,
		start: start,
		rules: make(map[string]*parser.Parser, len(b.rules)),
		order: append([]string(nil), b.order...),
	}
	for name, p := range b.rules {
		g.rules[name] = p
	}

	b.logger.Debug("grammar built", log.Fields{
		"start":      start,
		"rules":      len(g.rules),
		"references": len(b.refs),
	})
	return g, nil
}

// buildError keeps the code of the first error and joins every message
func buildError(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	return mdwerror.Wrap(errors.Join(errs...), "grammar build failed").
		WithCode(mdwerror.GetCode(errs[0])).
		WithOperation("registry.Build").
		WithDetail("errors", len(errs))
}
