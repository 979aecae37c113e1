// Package utils holds small helpers shared by the mnemo packages: word filters, TOML and file system helpers.
package utils

import (
	"strings"
	"unicode"
)

// IsAlphaWord reports whether s is non-empty and made of letters only.
func IsAlphaWord(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsValidLimit reports whether limit can be used as an association limit.
func IsValidLimit(limit int) bool {
	return limit > 0
}

// IsValidRequest checks a word and a limit the way every surface does before searching.
func IsValidRequest(word string, limit int) bool {
	return IsAlphaWord(word) && IsValidLimit(limit)
}

// NormalizeWord trims surrounding whitespace and lowercases the word.
func NormalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsRepetitive checks if a string consists of one character repeated 3+ times ("aaa", "zzzz").
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	firstChar := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != firstChar {
			return false
		}
	}
	return true
}

// ClampLimit caps limit at maxLimit when maxLimit is positive.
func ClampLimit(limit, maxLimit int) int {
	if maxLimit > 0 && limit > maxLimit {
		return maxLimit
	}
	return limit
}
