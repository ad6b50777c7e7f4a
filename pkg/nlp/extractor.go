package nlp

import (
	"regexp"
	"strings"
)

var (
	cityPattern        = regexp.MustCompile(`(?i)near\s+([a-zA-Z\s,]+)`)
	translationPattern = regexp.MustCompile(`(?i)translate\s+(.*)\s+to\s+([a-zA-Z]+)`)
)

// junk captures that look like a city but are not one
var ignoredCityTokens = map[string]bool{
	"me":       true,
	"here":     true,
	"my hotel": true,
	"myhotel":  true,
}

// ExtractCity pulls a city name out of phrasings like "restaurants near
// Paris" or "near Austin, Texas". Returns "" when the message carries no
// usable location signal.
func ExtractCity(message string) string {
	match := cityPattern.FindStringSubmatch(message)
	if match == nil {
		return ""
	}

	candidate := strings.TrimSpace(match[1])
	if ignoredCityTokens[strings.ToLower(candidate)] {
		return ""
	}
	return candidate
}

// ExtractTranslation parses "translate <phrase> to <language>" requests.
// The phrase capture is greedy so "translate go to bed to spanish" keeps
// "go to bed" intact and takes the last "to" as the language marker.
func ExtractTranslation(message string) (phrase, language string, ok bool) {
	match := translationPattern.FindStringSubmatch(message)
	if match == nil {
		return "", "", false
	}

	phrase = strings.Trim(strings.TrimSpace(match[1]), `'"`)
	return phrase, match[2], true
}
