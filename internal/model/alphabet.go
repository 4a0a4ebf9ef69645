package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Letters splits s into single-character strings after NFC normalisation, so
// that a precomposed letter and its decomposed form map to the same
// combination.
func Letters(s string) []string {
	normalized := norm.NFC.String(s)
	letters := make([]string, 0, len(normalized))
	for _, r := range normalized {
		letters = append(letters, string(r))
	}
	return letters
}

// Letter normalises a single key press.
func Letter(s string) string {
	return norm.NFC.String(s)
}

// Prefix returns the first n characters of s. If s is shorter, s is returned.
func Prefix(s string, n int) string {
	letters := Letters(s)
	if n >= len(letters) {
		n = len(letters)
	}
	return strings.Join(letters[:n], "")
}

// Distinct reports whether every character of s appears once.
func Distinct(s string) bool {
	seen := make(map[string]bool)
	for _, l := range Letters(s) {
		if seen[l] {
			return false
		}
		seen[l] = true
	}
	return true
}
