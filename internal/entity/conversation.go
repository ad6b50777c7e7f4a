package entity

import "time"

// ConversationTurn is one guest message and the reply produced for it.
// Persisted best-effort for history and staff review; the dispatcher never
// depends on the write succeeding.
type ConversationTurn struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Message    string    `json:"message"`
	Intent     string    `json:"intent"`
	Reply      string    `json:"reply"`
	LiveLookup bool      `json:"live_lookup"`
	CreatedAt  time.Time `json:"created_at"`
}
