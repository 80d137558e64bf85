// ============================================================================
// pcomb - Parser-Combinator Engine
// ============================================================================
//
// Package:     version
// Description: Central version management for the engine, the bundled
//              grammar and the stored parse history
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version constants
const (
	// Platform version of the pcomb command
	Platform = "1.0.0"

	// Engine version of the combinator library
	Engine = "1.0.0"

	// Grammar version of the bundled toy language grammar.
	// Bump the major version when the AST shape changes.
	Grammar = "1.1.0"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "grammar":
		return Grammar
	default:
		return Platform
	}
}

// GrammarConstraint is the range of recorded grammar versions whose ASTs
// are still readable by the current grammar
func GrammarConstraint() string {
	v := semver.MustParse(Grammar)
	return fmt.Sprintf("^%d.0.0", v.Major())
}

// Compatible reports whether an AST recorded under grammar version recorded
// has the same shape as the one the current grammar produces
func Compatible(recorded string) (bool, error) {
	v, err := semver.NewVersion(recorded)
	if err != nil {
		return false, fmt.Errorf("invalid grammar version %q: %w", recorded, err)
	}
	c, err := semver.NewConstraint(GrammarConstraint())
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}
