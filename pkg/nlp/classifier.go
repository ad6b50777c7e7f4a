package nlp

import (
	"strings"
	"unicode"
)

// classifierRule pairs one predicate with the intent it resolves to. Rules
// are evaluated top to bottom and the first match wins, so the ordering is
// load-bearing: "check out" must hit hotel_info before anything looser
// gets a chance at it.
type classifierRule struct {
	intent Intent
	match  func(t string) bool
}

var classifierRules = []classifierRule{
	{IntentGreet, startsWithAny("hi", "hello", "hey", "good morning", "good evening")},
	{IntentHotelInfo, containsAny("check-in", "checkin", "check in", "check out", "check-out", "wifi", "wi-fi", "wi fi")},
	{IntentDining, containsAny("breakfast", "dinner", "room service", "menu")},
	{IntentTransport, containsAny("taxi", "shuttle", "airport", "transport")},
	{IntentTranslation, containsAny("translate", "in spanish", "to spanish")},
	{IntentLocalAttractions, containsAny("near", "nearby", "attraction", "things to do", "restaurants near")},
	{IntentSmallTalk, containsAny("thanks", "thank you", "bye", "goodbye")},
	{IntentPlaceDetails, containsAny("detail", "more info", "more information", "tell me about", "what is", "info about")},
}

// Classify maps one guest message to an intent. Pure and total: no turn
// state is consulted and unmatched text falls through to IntentUnknown.
func Classify(text string) Intent {
	t := strings.ToLower(text)
	for _, rule := range classifierRules {
		if rule.match(t) {
			return rule.intent
		}
	}
	return IntentUnknown
}

func containsAny(substrings ...string) func(string) bool {
	return func(t string) bool {
		for _, sub := range substrings {
			if strings.Contains(t, sub) {
				return true
			}
		}
		return false
	}
}

// startsWithAny matches a leading word or phrase on a word boundary, so
// "hi there" greets but "highway" does not.
func startsWithAny(phrases ...string) func(string) bool {
	return func(t string) bool {
		for _, phrase := range phrases {
			if !strings.HasPrefix(t, phrase) {
				continue
			}
			if len(t) == len(phrase) {
				return true
			}
			next := rune(t[len(phrase)])
			if !unicode.IsLetter(next) && !unicode.IsDigit(next) {
				return true
			}
		}
		return false
	}
}
