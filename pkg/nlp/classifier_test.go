package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text     string
		expected Intent
	}{
		{"hi", IntentGreet},
		{"hello there", IntentGreet},
		{"good morning!", IntentGreet},
		{"What time is check-in?", IntentHotelInfo},
		{"when do I check out", IntentHotelInfo},
		{"what's the wifi password", IntentHotelInfo},
		{"is wi-fi free", IntentHotelInfo},
		{"is breakfast included", IntentDining},
		{"can I see the menu", IntentDining},
		{"I need room service", IntentDining},
		{"book me a taxi", IntentTransport},
		{"shuttle to the airport", IntentTransport},
		{"translate good evening to spanish", IntentTranslation},
		{"how do you say this in spanish", IntentTranslation},
		{"restaurants near Paris", IntentLocalAttractions},
		{"things to do around here", IntentLocalAttractions},
		{"any attractions nearby", IntentLocalAttractions},
		{"thanks a lot", IntentSmallTalk},
		{"goodbye", IntentSmallTalk},
		{"tell me about the Louvre", IntentPlaceDetails},
		{"more info please", IntentPlaceDetails},
		{"qwerty asdf", IntentUnknown},
		{"", IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.text))
		})
	}
}

// Rule order is part of the contract: for every sample that exercises rule
// k, no rule before k may also match, otherwise reordering would silently
// change classifications.
func TestClassifyRuleOrderIsUnambiguous(t *testing.T) {
	samples := map[Intent][]string{
		IntentGreet:            {"hi", "hello", "hey", "good morning", "good evening"},
		IntentHotelInfo:        {"check-in time", "check out please", "wifi code"},
		IntentDining:           {"breakfast hours", "dinner reservation", "menu please"},
		IntentTransport:        {"call a taxi", "airport shuttle"},
		IntentTranslation:      {"translate this please", "say it in spanish"},
		IntentLocalAttractions: {"attractions nearby", "things to do"},
		IntentSmallTalk:        {"thanks", "bye for now"},
		IntentPlaceDetails:     {"tell me about it", "what is that place"},
	}

	ruleIndex := map[Intent]int{}
	for i, rule := range classifierRules {
		ruleIndex[rule.intent] = i
	}

	for intent, texts := range samples {
		k := ruleIndex[intent]
		for _, text := range texts {
			assert.Equal(t, intent, Classify(text), "text %q", text)
			lowered := strings.ToLower(text)
			for i := 0; i < k; i++ {
				assert.False(t, classifierRules[i].match(lowered),
					"rule %d shadows %q for intent %s", i, text, intent)
			}
		}
	}
}

// greet matches on a word boundary only
func TestClassifyGreetBoundary(t *testing.T) {
	assert.Equal(t, IntentGreet, Classify("hi, quick question"))
	assert.NotEqual(t, IntentGreet, Classify("highway directions please"))
	assert.NotEqual(t, IntentGreet, Classify("heyday of the hotel"))
}
