package auth

import "ConciergeGolang/pkg/response"

var (
	ErrInvalidCredentials = response.NewError(401, "invalid credentials")
	ErrSessionNotFound    = response.NewError(404, "session not found or expired")
	ErrSessionStoreDown   = response.NewError(503, "session store is unavailable")
)
