package concierge

import "ConciergeGolang/pkg/response"

var (
	ErrEmptyMessage       = response.NewError(400, "message cannot be empty")
	ErrSessionRequired    = response.NewError(400, "session id is required")
	ErrAgentUnavailable   = response.NewError(503, "concierge agent is unavailable")
	ErrHandoffFailed      = response.NewError(502, "failed to notify hotel staff")
	ErrHistoryUnavailable = response.NewError(500, "conversation history is unavailable")
)
