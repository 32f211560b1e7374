package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeSearchQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "empty query",
			query:    "",
			expected: "",
		},
		{
			name:     "simple query",
			query:    "leanne",
			expected: "leanne",
		},
		{
			name:     "email-like query",
			query:    "Sincere@april.biz",
			expected: "Sincere@april.biz",
		},
		{
			name:     "keeps surrounding spaces",
			query:    " graham ",
			expected: " graham ",
		},
		{
			name:     "drops control characters",
			query:    "lea\x00nne\n",
			expected: "leanne",
		},
		{
			name:     "keeps unicode letters",
			query:    "Zoë Ñandú",
			expected: "Zoë Ñandú",
		},
		{
			name:     "keeps punctuation",
			query:    "o'brien & co; --",
			expected: "o'brien & co; --",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeSearchQuery(tt.query))
		})
	}
}

func TestSanitizeSearchQuery_KeepsLongInput(t *testing.T) {
	long := strings.Repeat("é", MaxSearchQueryLength+20)

	result := SanitizeSearchQuery(long)

	assert.Equal(t, long, result)
}

func TestSanitizeSearchQuery_InvalidUTF8(t *testing.T) {
	result := SanitizeSearchQuery("ab\xffcd")

	assert.Equal(t, "abcd", result)
}

func TestParseUserID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id, err := ParseUserID("7")
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	for _, raw := range []string{"", "0", "-1", "+3", "abc", "1.5", " 4", "99999999999999999999"} {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, err := ParseUserID(raw)
			assert.ErrorIs(t, err, ErrInvalidUserID)
		})
	}
}
