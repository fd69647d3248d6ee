// Package textutils provides text extraction helpers shared by the
// institution parsers.
package textutils

import (
	"regexp"
	"strings"
)

// FirstSubmatch runs the given patterns against text in order and returns
// the submatches of the first one that matches, or nil when none do. Every
// parser's account-info extraction works this way: a primary pattern for
// the common statement layout, then one or two alternates for differently
// formatted documents such as trade-confirmation notices.
func FirstSubmatch(text string, patterns ...*regexp.Regexp) []string {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m
		}
	}
	return nil
}

// FirstGroup is FirstSubmatch reduced to the first capture group, trimmed.
// The second return value is false when no pattern matched.
func FirstGroup(text string, patterns ...*regexp.Regexp) (string, bool) {
	m := FirstSubmatch(text, patterns...)
	if m == nil || len(m) < 2 {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// SplitLines splits a text block into trimmed lines. Trailing whitespace
// from layout-preserving extraction is common and never significant.
func SplitLines(block string) []string {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// ContainsDigit reports whether the line carries any ASCII digit. Two-line
// holding formats put a digit-free security name on its own line with the
// numeric columns on the next.
func ContainsDigit(line string) bool {
	return strings.ContainsAny(line, "0123456789")
}
