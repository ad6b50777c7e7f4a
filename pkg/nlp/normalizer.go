package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases the input, folds diacritics, replaces every run of
// punctuation with a single space, collapses whitespace and trims.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		result = text
	}

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Tokenize normalizes the input and splits it into a set of word tokens.
// Duplicates collapse; order is irrelevant. Empty input yields an empty set.
func Tokenize(text string) TokenSet {
	tokens := TokenSet{}
	normalized := Normalize(text)
	if normalized == "" {
		return tokens
	}

	for _, word := range strings.Fields(normalized) {
		tokens[word] = struct{}{}
	}
	return tokens
}
