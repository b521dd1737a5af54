package models

// JoinRoomRequest asks to join (or lazily create) a room. Empty fields get
// server-side defaults.
type JoinRoomRequest struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

// UseMitigationRequest resolves a pending misstep by playing a hand card.
type UseMitigationRequest struct {
	MitigationID string `json:"mitigationId"`
}

// Joined acknowledges a join with the player id assigned to this session.
type Joined struct {
	PlayerID string `json:"playerId"`
	RoomID   string `json:"roomId"`
}

// Toast is an advisory message for a single client. It never carries or
// changes shared state.
type Toast struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

const (
	ToastInfo  = "info"
	ToastError = "error"
)
