// File: engine.go
// Title: Combinator Engine
// Description: Runs the start rule of a grammar over an input string with
//              an input size limit, evaluation limits, an optional
//              completeness check, debug logging and timing.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial high-level engine implementation
// - 2026-10-18 v0.2.0: Engine over combinator grammars

package combinator

import (
	"time"

	"github.com/msto63/pcomb/foundation/combinator/parser"
	"github.com/msto63/pcomb/foundation/combinator/registry"
	mdwconfig "github.com/msto63/pcomb/foundation/core/config"
	mdwerror "github.com/msto63/pcomb/foundation/core/error"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
	mdwstringx "github.com/msto63/pcomb/foundation/utils/stringx"
)

const (
	// DefaultMaxInputLength is the input size limit in bytes
	DefaultMaxInputLength = 1 << 20

	// DefaultMaxDepth is the evaluation nesting limit
	DefaultMaxDepth = 10000
)

// Configuration keys read by OptionsFromConfig
const (
	KeyMaxInputLength  = "engine.max_input_length"
	KeyMaxDepth        = "engine.max_depth"
	KeyMaxSteps        = "engine.max_steps"
	KeyRequireComplete = "engine.require_complete"
	KeyTraceRules      = "engine.trace_rules"
)

// Options configures an Engine. Zero limits mean unlimited.
type Options struct {
	Logger          *mdwlog.Logger
	Name            string
	MaxInputLength  int
	MaxDepth        int
	MaxSteps        int
	RequireComplete bool
	TraceRules      bool // log every named rule at trace level
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		MaxInputLength: DefaultMaxInputLength,
		MaxDepth:       DefaultMaxDepth,
	}
}

// OptionsFromConfig reads the [engine] section, falling back to defaults
func OptionsFromConfig(cfg *mdwconfig.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	opts.MaxInputLength = cfg.GetInt(KeyMaxInputLength, opts.MaxInputLength)
	opts.MaxDepth = cfg.GetInt(KeyMaxDepth, opts.MaxDepth)
	opts.MaxSteps = cfg.GetInt(KeyMaxSteps, opts.MaxSteps)
	opts.RequireComplete = cfg.GetBool(KeyRequireComplete, opts.RequireComplete)
	opts.TraceRules = cfg.GetBool(KeyTraceRules, opts.TraceRules)
	return opts
}

// Outcome is the result of one Engine.Parse call
type Outcome struct {
	Result      parser.Result
	Stats       parser.Stats
	Duration    time.Duration
	InputLength int
}

// Complete reports whether the parse succeeded and consumed all input
func (o *Outcome) Complete() bool {
	return o.Result.IsSuccess() && o.Result.Rest == ""
}

// Engine runs a start rule with limits and logging
type Engine struct {
	start   *parser.Parser
	logger  *mdwlog.Logger
	options Options
}

// New creates an engine for the start parser. Every reference reachable
// from start must be bound.
func New(start *parser.Parser, opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if mdwstringx.IsBlank(opts.Name) {
		opts.Name = "grammar"
	}
	if opts.MaxInputLength < 0 || opts.MaxDepth < 0 || opts.MaxSteps < 0 {
		return nil, mdwerror.New("engine limits cannot be negative").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("combinator.New").
			WithDetail("max_input_length", opts.MaxInputLength).
			WithDetail("max_depth", opts.MaxDepth).
			WithDetail("max_steps", opts.MaxSteps)
	}
	if err := parser.Validate(start); err != nil {
		return nil, mdwerror.Wrap(err, "invalid start rule").WithOperation("combinator.New")
	}

	logger := opts.Logger.WithField("component", "combinator-engine").WithField("grammar", opts.Name)
	logger.Debug("combinator engine initialized", mdwlog.Fields{
		"maxInputLength":  opts.MaxInputLength,
		"maxDepth":        opts.MaxDepth,
		"maxSteps":        opts.MaxSteps,
		"requireComplete": opts.RequireComplete,
	})

	return &Engine{start: start, logger: logger, options: opts}, nil
}

// NewFromGrammar creates an engine for the start rule of g
func NewFromGrammar(g *registry.Grammar, opts Options) (*Engine, error) {
	if g == nil {
		return nil, mdwerror.New("grammar cannot be nil").
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("combinator.NewFromGrammar")
	}
	if mdwstringx.IsBlank(opts.Name) {
		opts.Name = g.Name()
	}
	return New(g.Start(), opts)
}

// Options returns the engine options
func (e *Engine) Options() Options {
	return e.options
}

// Start returns the start parser
func (e *Engine) Start() *parser.Parser {
	return e.start
}

// Parse runs the start rule over input.
//
// A failed match is not an error: it is reported in Outcome.Result. The
// returned error is set when the input is too long (nil Outcome), when an
// evaluation limit aborted the parse, or when RequireComplete is set and
// input remains after a successful match.
func (e *Engine) Parse(input string) (*Outcome, error) {
	if e.options.MaxInputLength > 0 && len(input) > e.options.MaxInputLength {
		err := mdwerror.Newf("input of %d bytes exceeds the limit of %d", len(input), e.options.MaxInputLength).
			WithCode(mdwerror.CodeInputTooLong).
			WithOperation("combinator.Parse").
			WithDetail("length", len(input)).
			WithDetail("max", e.options.MaxInputLength)
		e.logger.LogError(err)
		return nil, err
	}

	timer := e.logger.StartTimer("parse").WithField("input_length", len(input))

	opts := parser.Options{
		Limits: parser.Limits{MaxDepth: e.options.MaxDepth, MaxSteps: e.options.MaxSteps},
	}
	if e.options.TraceRules && e.logger.IsLevelEnabled(mdwlog.LevelTrace) {
		opts.Trace = e.traceRule
	}

	result, stats, err := e.start.Evaluate(input, opts)
	outcome := &Outcome{Result: result, Stats: stats, InputLength: len(input)}
	timer.WithField("steps", stats.Steps).WithField("max_depth", stats.MaxDepth)

	if err != nil {
		outcome.Duration = timer.StopWithError(err)
		return outcome, err
	}

	if result.IsFailure() {
		e.logger.Warn("parse failed", mdwlog.Fields{
			"error":      result.Error,
			"error_code": result.Code,
		})
	} else if e.options.RequireComplete && result.Rest != "" {
		err = mdwerror.Newf("input not fully consumed: %d bytes remain", len(result.Rest)).
			WithCode(mdwerror.CodeIncompleteParse).
			WithOperation("combinator.Parse").
			WithDetail("matched", len(result.Matched)).
			WithDetail("remaining", len(result.Rest)).
			WithDetail("near", mdwstringx.Truncate(result.Rest, 20, "..."))
		outcome.Duration = timer.StopWithError(err)
		return outcome, err
	}

	outcome.Duration = timer.
		WithField("matched_length", len(result.Matched)).
		WithField("fragments", len(result.Results)).
		Stop()
	return outcome, nil
}

func (e *Engine) traceRule(ev parser.TraceEvent) {
	fields := mdwlog.Fields{
		"rule":   ev.Rule,
		"depth":  ev.Depth,
		"status": ev.Status.String(),
	}
	if ev.Status == parser.Success {
		fields["matched"] = mdwstringx.Truncate(ev.Matched, 40, "...")
	} else {
		fields["error"] = ev.Error
	}
	e.logger.Trace("rule evaluated", fields)
}
