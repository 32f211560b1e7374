package security

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxSearchQueryLength defines the maximum allowed length, in runes, for search queries
	MaxSearchQueryLength = 100
)

// ErrInvalidUserID is returned when a user id path segment is not a positive integer.
var ErrInvalidUserID = errors.New("user id must be a positive integer")

// SanitizeSearchQuery prepares user-typed search text for filtering.
// Control characters and invalid UTF-8 are dropped. The text is never
// truncated; queries over MaxSearchQueryLength runes are rejected by request
// validation instead.
// Surrounding whitespace is kept because it is part of the substring being
// matched.
func SanitizeSearchQuery(query string) string {
	if query == "" {
		return ""
	}

	if !utf8.ValidString(query) {
		query = strings.ToValidUTF8(query, "")
	}

	return strings.Map(func(char rune) rune {
		if !isValidSearchChar(char) {
			return -1
		}
		return char
	}, query)
}

// isValidSearchChar checks if a character is safe for search queries
func isValidSearchChar(char rune) bool {
	return !unicode.IsControl(char)
}

// ParseUserID parses a user id path segment. Only positive base-10 integers
// without a sign are accepted.
func ParseUserID(raw string) (int64, error) {
	if raw == "" || strings.HasPrefix(raw, "+") {
		return 0, ErrInvalidUserID
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidUserID
	}

	return id, nil
}
