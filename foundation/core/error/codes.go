// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error
//              classification across the pcomb foundation: parse failures,
//              grammar construction misuse, engine limits, configuration
//              and storage problems.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-18 v0.2.0: Replaced platform codes with parser and grammar codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Parse failures carried by match results
	CodeEndOfInput          Code = "END_OF_INPUT"
	CodeUnexpectedCharacter Code = "UNEXPECTED_CHARACTER"
	CodeIncompleteParse     Code = "INCOMPLETE_PARSE"

	// Grammar construction
	CodeInvalidGrammar   Code = "INVALID_GRAMMAR"
	CodeUnboundReference Code = "UNBOUND_REFERENCE"
	CodeReferenceRebound Code = "REFERENCE_REBOUND"
	CodeUnknownRule      Code = "UNKNOWN_RULE"
	CodeDuplicateRule    Code = "DUPLICATE_RULE"

	// Engine limits
	CodeRecursionLimit Code = "RECURSION_LIMIT"
	CodeStepLimit      Code = "STEP_LIMIT"
	CodeInputTooLong   Code = "INPUT_TOO_LONG"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Storage
	CodeStorageError Code = "STORAGE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeEndOfInput, CodeUnexpectedCharacter, CodeIncompleteParse,
		CodeInvalidGrammar, CodeUnboundReference, CodeReferenceRebound, CodeUnknownRule, CodeDuplicateRule,
		CodeRecursionLimit, CodeStepLimit, CodeInputTooLong,
		CodeConfigError, CodeInvalidConfig,
		CodeStorageError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeEndOfInput, CodeUnexpectedCharacter, CodeIncompleteParse:
		return "parse"
	case CodeInvalidGrammar, CodeUnboundReference, CodeReferenceRebound, CodeUnknownRule, CodeDuplicateRule:
		return "grammar"
	case CodeRecursionLimit, CodeStepLimit, CodeInputTooLong:
		return "limit"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeStorageError:
		return "storage"
	default:
		return "generic"
	}
}

// IsParseFailure reports whether the code describes an ordinary failed match
// rather than a misuse of the engine.
func (c Code) IsParseFailure() bool {
	return c.Category() == "parse"
}
