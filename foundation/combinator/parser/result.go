// File: result.go
// Title: Match Result
// Description: Defines the value returned by every parse attempt. A Success
//              carries the consumed text, the remaining input and the named
//              AST fragments; a Failure carries only an error description
//              and its code. All methods return new values.
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
	"io"
	"strings"

	mdwast "github.com/msto63/pcomb/foundation/combinator/ast"
	mdwerror "github.com/msto63/pcomb/foundation/core/error"
)

// Status of a match attempt
type Status int

const (
	Success Status = iota + 1
	Failure
)

// String returns string representation of Status
func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// Result is the outcome of applying a parser to an input.
// Matched and Rest partition the input on Success: Matched+Rest == input.
type Result struct {
	Status  Status
	Matched string
	Rest    string
	Error   string
	Code    mdwerror.Code
	Results []mdwast.Fragment
}

// Succeed creates a successful result without fragments
func Succeed(matched, rest string) Result {
	return Result{Status: Success, Matched: matched, Rest: rest}
}

// Fail creates a failed result
func Fail(code mdwerror.Code, message string) Result {
	return Result{Status: Failure, Error: message, Code: code}
}

// IsSuccess reports whether the attempt matched
func (r Result) IsSuccess() bool {
	return r.Status == Success
}

// IsFailure reports whether the attempt failed
func (r Result) IsFailure() bool {
	return r.Status == Failure
}

// Add returns r with a leaf fragment appended.
// Empty values are never recorded, and failures never carry fragments.
func (r Result) Add(name, value string) Result {
	if value == "" || r.IsFailure() {
		return r
	}
	r.Results = mdwast.Concat(r.Results, []mdwast.Fragment{mdwast.NewLeaf(name, value)})
	return r
}

// AddGroup returns r with a group fragment named name appended
func (r Result) AddGroup(name string, fragments []mdwast.Fragment) Result {
	if r.IsFailure() {
		return r
	}
	r.Results = mdwast.Concat(r.Results, []mdwast.Fragment{mdwast.NewGroup(name, fragments)})
	return r
}

// Combine returns r with every fragment of other appended in order
func (r Result) Combine(other Result) Result {
	if r.IsFailure() || len(other.Results) == 0 {
		return r
	}
	r.Results = mdwast.Concat(r.Results, other.Results)
	return r
}

// Err returns the failure as a coded error, or nil on success
func (r Result) Err() error {
	if !r.IsFailure() {
		return nil
	}
	code := r.Code
	if code == "" {
		code = mdwerror.CodeUnknown
	}
	return mdwerror.New(r.Error).WithCode(code)
}

// String returns a one-line summary
func (r Result) String() string {
	if r.IsFailure() {
		return fmt.Sprintf("Failure(%s)", r.Error)
	}
	return fmt.Sprintf("Success(matched=%q, rest=%q, fragments=%d)", r.Matched, r.Rest, len(r.Results))
}

const reportRule = "==========================================="

// WriteReport writes the result block and, on success, the AST dump
func (r Result) WriteReport(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("\n[  Result  ]\n")
	sb.WriteString(reportRule + "\n")
	if r.IsFailure() {
		fmt.Fprintf(&sb, "{\n Result: Failure,\n Error: %s\n}\n", r.Error)
	} else {
		fmt.Fprintf(&sb, "{\n Result: Success,\n Matched: %s,\n Rest: %s\n}\n", r.Matched, r.Rest)
		sb.WriteString("\n[  AST  ]\n")
		sb.WriteString(reportRule + "\n")
		sb.WriteString(mdwast.Format(r.Results))
		sb.WriteString(reportRule + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Report returns the text written by WriteReport
func (r Result) Report() string {
	var sb strings.Builder
	_ = r.WriteReport(&sb)
	return sb.String()
}
