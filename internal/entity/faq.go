package entity

// FAQEntry is one pre-authored question/answer pair from the hotel
// knowledge corpus. Entries are loaded once at startup and never mutated;
// duplicate questions are tolerated.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
