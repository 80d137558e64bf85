// File: stringx.go
// Title: Core String Utility Functions
// Description: Small string helpers shared by the configuration loader,
//              parser error messages and the tree printers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-18 v0.2.0: Reduced to the helpers in use, added DisplayByte and Indent

package stringx

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank reports whether s is empty or consists of whitespace only
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank is the negation of IsBlank
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// FirstNonBlank returns the first argument that is not blank
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if IsNotBlank(v) {
			return v
		}
	}
	return ""
}

// Truncate shortens s to at most maxLen runes including the ellipsis
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

// DisplayByte renders a single input byte for messages: printable ASCII
// as-is, everything else as a Go escape such as \n or \x00
func DisplayByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(b)
	}
	quoted := strconv.QuoteToASCII(string([]byte{b}))
	return quoted[1 : len(quoted)-1]
}

// Indent returns the indentation for the given nesting level
func Indent(level, width int) string {
	if level <= 0 || width <= 0 {
		return ""
	}
	return strings.Repeat(" ", level*width)
}
