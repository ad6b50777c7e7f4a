package auth

import "ConciergeGolang/internal/entity"

type GuestLoginRequest struct {
	RoomNumber string `json:"room_number" validate:"required,max=16"`
	GuestName  string `json:"guest_name" validate:"required,max=100"`
}

type StaffLoginRequest struct {
	StaffID  string `json:"staff_id" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	SessionID   string `json:"session_id"`
	Persona     string `json:"persona"`
}

type VerifyResponse struct {
	SessionID  string `json:"session_id"`
	Persona    string `json:"persona"`
	RoomNumber string `json:"room_number,omitempty"`
	GuestName  string `json:"guest_name,omitempty"`
	StaffID    string `json:"staff_id,omitempty"`
}

type SessionsResponse struct {
	Sessions []entity.GuestSession `json:"sessions"`
}
