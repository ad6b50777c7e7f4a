package entity

import "time"

type GuestSession struct {
	ID         string      `json:"id"`
	Persona    Persona     `json:"persona"`
	RoomNumber string      `json:"room_number,omitempty"`
	GuestName  string      `json:"guest_name,omitempty"`
	StaffID    string      `json:"staff_id,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	ExpiresAt  time.Time   `json:"expires_at"`
}

type Persona uint8

const (
	PersonaUnknown Persona = 0
	PersonaGuest   Persona = 1
	PersonaStaff   Persona = 2
)

var PersonaMap = map[Persona]string{
	PersonaGuest: "guest",
	PersonaStaff: "staff",
}

func (p Persona) String() string {
	return PersonaMap[p]
}

func (p Persona) Value() uint8 {
	return uint8(p)
}

func ParsePersona(s string) Persona {
	switch s {
	case "guest":
		return PersonaGuest
	case "staff":
		return PersonaStaff
	}
	return PersonaUnknown
}
