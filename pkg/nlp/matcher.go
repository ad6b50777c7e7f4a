package nlp

import (
	"strings"

	"ConciergeGolang/internal/entity"
)

// Matching thresholds. Both values were tuned by hand against the live
// corpus; changing either one changes which guest questions get answered,
// so treat them as behavior, not implementation detail.
const (
	// TokenMatchThreshold accepts a stage-1 candidate once at least half of
	// its tokens (or of the guest's tokens) overlap.
	TokenMatchThreshold = 0.5

	// FuzzyAcceptThreshold is the ceiling for the stage-2 distance, where
	// 0 is an exact match and 1 shares nothing.
	FuzzyAcceptThreshold = 0.55
)

// Matcher resolves free-form guest text against the FAQ corpus. Question
// tokens are precomputed once; the corpus is immutable after construction.
type Matcher struct {
	corpus         []entity.FAQEntry
	questionTokens []TokenSet
	questionNorms  []string
}

func NewMatcher(corpus []entity.FAQEntry) *Matcher {
	m := &Matcher{
		corpus:         corpus,
		questionTokens: make([]TokenSet, len(corpus)),
		questionNorms:  make([]string, len(corpus)),
	}
	for i, entry := range corpus {
		m.questionTokens[i] = Tokenize(entry.Question)
		m.questionNorms[i] = Normalize(entry.Question)
	}
	return m
}

// Answer returns the best pre-authored answer for the guest text, or
// ok=false when nothing clears the thresholds. Stage 1 scores token overlap
// against every question; a strong overlap wins immediately. Stage 2 falls
// back to approximate string distance, which catches typos and rewordings
// that share no exact tokens.
func (m *Matcher) Answer(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	userNorm := Normalize(text)
	userTokens := Tokenize(userNorm)

	bestScore := 0.0
	bestIdx := -1
	for i := range m.corpus {
		qTokens := m.questionTokens[i]
		if len(qTokens) == 0 {
			continue
		}

		common := userTokens.Common(qTokens)

		ratioQuestion := float64(common) / float64(len(qTokens))
		ratioUser := 0.0
		if len(userTokens) > 0 {
			ratioUser = float64(common) / float64(len(userTokens))
		}

		score := ratioQuestion
		if ratioUser > score {
			score = ratioUser
		}

		// strict greater keeps the first-seen entry on ties
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx >= 0 && bestScore >= TokenMatchThreshold {
		return m.corpus[bestIdx].Answer, true
	}

	return m.fuzzyAnswer(userNorm)
}

// fuzzyAnswer ranks every question by normalized edit distance against the
// already-normalized guest text and accepts the closest one if it is under
// the ceiling.
func (m *Matcher) fuzzyAnswer(userNorm string) (string, bool) {
	bestDistance := 2.0
	bestIdx := -1
	for i, qNorm := range m.questionNorms {
		if qNorm == "" {
			continue
		}

		d := normalizedDistance(userNorm, qNorm)
		if d < bestDistance {
			bestDistance = d
			bestIdx = i
		}
	}

	if bestIdx >= 0 && bestDistance <= FuzzyAcceptThreshold {
		return m.corpus[bestIdx].Answer, true
	}
	return "", false
}

// normalizedDistance maps Levenshtein edit distance into [0,1] by dividing
// by the longer string's length. 0 means exact match.
func normalizedDistance(s1, s2 string) float64 {
	r1 := []rune(s1)
	r2 := []rune(s2)

	maxLen := len(r1)
	if len(r2) > maxLen {
		maxLen = len(r2)
	}
	if maxLen == 0 {
		return 0.0
	}

	return float64(levenshteinDistance(r1, r2)) / float64(maxLen)
}

func levenshteinDistance(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}

	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

func min3(a, b, c int) int {
	if a < b && a < c {
		return a
	} else if b < c {
		return b
	}
	return c
}
