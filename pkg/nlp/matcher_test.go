package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ConciergeGolang/internal/entity"
)

func testCorpus() []entity.FAQEntry {
	return []entity.FAQEntry{
		{Question: "check-in time", Answer: "3 PM"},
		{Question: "check-out time", Answer: "11 AM"},
		{Question: "wifi password", Answer: "Ask at the front desk"},
		{Question: "is breakfast included", Answer: "Breakfast runs 7-10 AM"},
		{Question: "do you have a pool", Answer: "Rooftop pool, open until 9 PM"},
	}
}

func TestMatcherTokenOverlap(t *testing.T) {
	m := NewMatcher(testCorpus())

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "full question overlap",
			text:     "What time is check-in?",
			expected: "3 PM",
		},
		{
			name:     "short exact-ish phrasing",
			text:     "wifi password",
			expected: "Ask at the front desk",
		},
		{
			name:     "overlap relative to user tokens",
			text:     "pool",
			expected: "Rooftop pool, open until 9 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, ok := m.Answer(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.expected, answer)
		})
	}
}

func TestMatcherHighestOverlapWins(t *testing.T) {
	corpus := []entity.FAQEntry{
		{Question: "spa opening hours", Answer: "spa"},
		{Question: "gym opening hours today", Answer: "gym"},
	}
	m := NewMatcher(corpus)

	// "gym opening hours" shares 3/4 with the gym entry, 2/3 with the spa
	// entry, so the gym answer must win.
	answer, ok := m.Answer("gym opening hours")
	require.True(t, ok)
	assert.Equal(t, "gym", answer)
}

func TestMatcherTieKeepsFirstSeen(t *testing.T) {
	corpus := []entity.FAQEntry{
		{Question: "late check out", Answer: "first"},
		{Question: "late check out", Answer: "second"},
	}
	m := NewMatcher(corpus)

	answer, ok := m.Answer("late check out")
	require.True(t, ok)
	assert.Equal(t, "first", answer)
}

func TestMatcherEmptyQuery(t *testing.T) {
	m := NewMatcher(testCorpus())

	for _, text := range []string{"", "   ", "\t\n"} {
		_, ok := m.Answer(text)
		assert.False(t, ok, "text %q", text)
	}
}

func TestMatcherEmptyCorpus(t *testing.T) {
	m := NewMatcher(nil)

	_, ok := m.Answer("anything at all")
	assert.False(t, ok)
}

func TestMatcherSkipsEmptyQuestions(t *testing.T) {
	corpus := []entity.FAQEntry{
		{Question: "???", Answer: "never"},
		{Question: "wifi password", Answer: "Ask at the front desk"},
	}
	m := NewMatcher(corpus)

	answer, ok := m.Answer("wifi password")
	require.True(t, ok)
	assert.Equal(t, "Ask at the front desk", answer)
}

func TestMatcherFuzzyFallback(t *testing.T) {
	m := NewMatcher(testCorpus())

	// Typo keeps token overlap at zero for the decisive word but the edit
	// distance stays well under the ceiling.
	answer, ok := m.Answer("chekc-in tmie")
	require.True(t, ok)
	assert.Equal(t, "3 PM", answer)
}

func TestMatcherRejectsDistantText(t *testing.T) {
	m := NewMatcher(testCorpus())

	// Nothing in the corpus is anywhere near this, so both stages miss.
	_, ok := m.Answer("zzzzqqqq xxxxyyyy wwwwvvvv uuuutttt")
	assert.False(t, ok)
}

func TestNormalizedDistance(t *testing.T) {
	assert.InDelta(t, 0.0, normalizedDistance("pool", "pool"), 1e-9)
	assert.InDelta(t, 0.25, normalizedDistance("pool", "poll"), 1e-9)
	assert.InDelta(t, 1.0, normalizedDistance("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.0, normalizedDistance("", ""), 1e-9)
}
