package concierge

import (
	"ConciergeGolang/internal/entity"
)

type MessageRequest struct {
	SessionID       string              `json:"session_id" validate:"required,max=128"`
	Message         string              `json:"message" validate:"max=2000"`
	ConsentLocation bool                `json:"consent_location"`
	Coords          *entity.Coordinates `json:"coords,omitempty"`
	City            string              `json:"city,omitempty"`
	LastPlace       *entity.Place       `json:"last_place,omitempty"`
}

type MessageResponse struct {
	Reply       string         `json:"reply"`
	Intent      string         `json:"intent"`
	Suggestions []entity.Place `json:"suggestions,omitempty"`
	LiveLookup  *bool          `json:"live_lookup,omitempty"`
}

type HandoffRequest struct {
	SessionID string `json:"session_id" validate:"required,max=128"`
	Reason    string `json:"reason" validate:"max=500"`
}

type HandoffResponse struct {
	Notified bool   `json:"notified"`
	Message  string `json:"message"`
}

type AgentRequest struct {
	SessionID string `json:"session_id" validate:"required,max=128"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type AgentResponse struct {
	Reply string `json:"reply"`
}

type AnalyticsResponse struct {
	IntentCounts map[string]int64 `json:"intent_counts"`
}

type HistoryResponse struct {
	SessionID string                    `json:"session_id"`
	Turns     []entity.ConversationTurn `json:"turns"`
}
