// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that callers and the
//              logger can tell an ordinary failed match from a broken
//              grammar or an exhausted engine limit.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-18 v0.2.0: Severity mapping for parser and grammar codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates an expected outcome such as a failed match
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects one operation only
	SeverityMedium

	// SeverityHigh indicates a programmer error or an exhausted limit
	SeverityHigh

	// SeverityCritical indicates the process cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeInvalidGrammar, CodeUnboundReference, CodeReferenceRebound,
		CodeRecursionLimit, CodeStepLimit, CodeStorageError:
		return SeverityHigh

	case CodeConfigError, CodeInvalidConfig, CodeUnknownRule, CodeDuplicateRule:
		return SeverityMedium

	case CodeEndOfInput, CodeUnexpectedCharacter, CodeIncompleteParse,
		CodeInvalidInput, CodeInputTooLong, CodeNotFound:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
