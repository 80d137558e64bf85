// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and
//              standard library interoperability.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-18 v0.2.0: Cases for parser codes and errors.Is support

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "context",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("disk full"),
			message:  "failed to write",
			wantMsg:  "failed to write: disk full",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap coded error keeps code",
			err:      New("no such rule").WithCode(CodeUnknownRule),
			message:  "grammar build",
			wantMsg:  "grammar build: no such rule",
			wantCode: CodeUnknownRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("wrapped error should match its cause with errors.Is")
			}
		})
	}
}

func TestWrapTruncatesLongChains(t *testing.T) {
	var err error = New("root").WithCode(CodeRecursionLimit)
	for i := 0; i < MaxErrorChainDepth+5; i++ {
		err = Wrap(err, fmt.Sprintf("level %d", i))
	}

	if depth := chainDepth(err); depth > MaxErrorChainDepth+1 {
		t.Errorf("chain depth = %d, want <= %d", depth, MaxErrorChainDepth+1)
	}
	if GetCode(err) != CodeRecursionLimit {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), CodeRecursionLimit)
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeUnexpectedCharacter, SeverityLow},
		{CodeEndOfInput, SeverityLow},
		{CodeUnboundReference, SeverityHigh},
		{CodeRecursionLimit, SeverityHigh},
		{CodeInvalidConfig, SeverityMedium},
		{CodeInternal, SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityCritical).WithCode(CodeEndOfInput)
	if explicit.Severity() != SeverityCritical {
		t.Errorf("explicit severity overwritten: %v", explicit.Severity())
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(New("bound twice").WithCode(CodeReferenceRebound), "bind expr")

	if !errors.Is(err, New("").WithCode(CodeReferenceRebound)) {
		t.Error("errors.Is should match on code")
	}
	if errors.Is(err, New("").WithCode(CodeUnboundReference)) {
		t.Error("errors.Is should not match a different code")
	}
	if errors.Is(err, New("")) {
		t.Error("errors.Is should not match CodeUnknown targets")
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	inner := New("limit").WithCode(CodeStepLimit)
	outer := fmt.Errorf("parse: %w", inner)

	if !HasCode(outer, CodeStepLimit) {
		t.Error("HasCode() should see through fmt.Errorf wrapping")
	}
	if GetCode(outer) != CodeStepLimit {
		t.Errorf("GetCode() = %v, want %v", GetCode(outer), CodeStepLimit)
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() of a plain error should be CodeUnknown")
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity() of a plain error should be SeverityMedium")
	}
}

func TestDetailsAndString(t *testing.T) {
	err := New("input too long").
		WithCode(CodeInputTooLong).
		WithOperation("combinator.Parse").
		WithDetail("length", 12).
		WithDetail("max", 10)

	details := err.Details()
	details["length"] = 0
	if err.Details()["length"] != 12 {
		t.Error("Details() must return a copy")
	}

	s := err.String()
	for _, want := range []string{"[INPUT_TOO_LONG]", "combinator.Parse", "length=12", "max=10"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("eof"), "read").WithCode(CodeStorageError).WithOperation("history.Save")

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("json.Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("json.Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != string(CodeStorageError) {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["cause"] != "eof" {
		t.Errorf("cause = %v", decoded["cause"])
	}
	if decoded["operation"] != "history.Save" {
		t.Errorf("operation = %v", decoded["operation"])
	}
}

func TestCodeCategories(t *testing.T) {
	tests := []struct {
		code     Code
		category string
	}{
		{CodeEndOfInput, "parse"},
		{CodeUnexpectedCharacter, "parse"},
		{CodeUnboundReference, "grammar"},
		{CodeStepLimit, "limit"},
		{CodeConfigError, "configuration"},
		{CodeStorageError, "storage"},
		{CodeNotFound, "generic"},
	}

	for _, tt := range tests {
		if got := tt.code.Category(); got != tt.category {
			t.Errorf("%s.Category() = %q, want %q", tt.code, got, tt.category)
		}
		if !tt.code.IsValid() {
			t.Errorf("%s.IsValid() = false", tt.code)
		}
	}

	if Code("BOGUS").IsValid() {
		t.Error("unknown code reported valid")
	}
	if !CodeEndOfInput.IsParseFailure() || CodeUnboundReference.IsParseFailure() {
		t.Error("IsParseFailure() misclassifies codes")
	}
}
