package nlp

// Intent is the closed set of categories one guest message can resolve to.
type Intent string

const (
	IntentGreet            Intent = "greet"
	IntentHotelInfo        Intent = "hotel_info"
	IntentDining           Intent = "dining"
	IntentTransport        Intent = "transport"
	IntentTranslation      Intent = "translation"
	IntentLocalAttractions Intent = "local_attractions"
	IntentSmallTalk        Intent = "small_talk"
	IntentPlaceDetails     Intent = "place_details"
	IntentUnknown          Intent = "unknown"
)

func (i Intent) String() string {
	return string(i)
}

// TokenSet is a set of normalized word tokens derived from one string.
type TokenSet map[string]struct{}

func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Common returns how many tokens this set shares with other.
func (s TokenSet) Common(other TokenSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	common := 0
	for t := range small {
		if large.Has(t) {
			common++
		}
	}
	return common
}
