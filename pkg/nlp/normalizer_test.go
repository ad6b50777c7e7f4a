package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and strips punctuation",
			input:    "What time is Check-In?!",
			expected: "what time is check in",
		},
		{
			name:     "collapses repeated whitespace",
			input:    "  wifi   password \t please ",
			expected: "wifi password please",
		},
		{
			name:     "punctuation runs become one space",
			input:    "pool... open -- today",
			expected: "pool open today",
		},
		{
			name:     "folds diacritics",
			input:    "café señor",
			expected: "cafe senor",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "punctuation only",
			input:    "?!.,",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"What time is Check-In?",
		"  lots   of\tspace  ",
		"café!!!",
		"",
		"already normalized text",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "basic tokens",
			input:    "wifi password",
			expected: []string{"wifi", "password"},
		},
		{
			name:     "duplicates collapse",
			input:    "the pool, the POOL!",
			expected: []string{"the", "pool"},
		},
		{
			name:     "empty input yields empty set",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			assert.Len(t, tokens, len(tt.expected))
			for _, want := range tt.expected {
				assert.True(t, tokens.Has(want), "missing token %q", want)
			}
		})
	}
}

func TestTokenSetCommon(t *testing.T) {
	a := Tokenize("check in time please")
	b := Tokenize("check in desk")

	assert.Equal(t, 2, a.Common(b))
	assert.Equal(t, 2, b.Common(a))
	assert.Equal(t, 0, a.Common(Tokenize("")))
}
