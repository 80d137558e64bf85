// Package integration provides integration tests for the pcomb Foundation library.
//
// Package: integration
// Title: Foundation Integration Tests
// Description: This package contains integration tests that verify the
//              interaction between the combinator packages (parser, registry,
//              engine) and the core modules (error, log, config), ensuring
//              consistent error codes, logging and performance across
//              package boundaries.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of integration test suite
// - 2026-10-18 v0.2.0: Rewritten around the combinator packages
//
// Test Categories:
//
// Error Integration Tests (error_integration_test.go):
// - Every layer reports failures with a code from core/error
// - Codes survive wrapping at package boundaries
// - Severity and category follow the code
//
// Performance Integration Tests (performance_test.go):
// - Parsing benchmarks over growing inputs
// - Step and depth growth for nested input
// - Concurrent parses over one shared grammar
//
// Running Integration Tests:
//
//	go test -v ./test/integration/
//	go test -v ./test/integration/ -bench=.
package integration
