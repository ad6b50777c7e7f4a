package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCity(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{"simple city", "restaurants near Paris", "Paris"},
		{"city with state", "attractions near Austin, Texas", "Austin, Texas"},
		{"ignores me", "restaurants near me", ""},
		{"ignores here", "things to do near here", ""},
		{"ignores my hotel", "food near my hotel", ""},
		{"no near clause", "what should I visit", ""},
		{"case insensitive", "Anything NEAR Rome?", "Rome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCity(tt.message))
		})
	}
}

func TestExtractTranslation(t *testing.T) {
	phrase, lang, ok := ExtractTranslation(`translate "good morning" to spanish`)
	assert.True(t, ok)
	assert.Equal(t, "good morning", phrase)
	assert.Equal(t, "spanish", lang)

	phrase, lang, ok = ExtractTranslation("translate thank you to French")
	assert.True(t, ok)
	assert.Equal(t, "thank you", phrase)
	assert.Equal(t, "French", lang)

	phrase, lang, ok = ExtractTranslation("translate go to bed to spanish")
	assert.True(t, ok)
	assert.Equal(t, "go to bed", phrase)
	assert.Equal(t, "spanish", lang)

	_, _, ok = ExtractTranslation("can you translate something")
	assert.False(t, ok)
}
