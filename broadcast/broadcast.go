package broadcast

import (
	"github.com/secroll/missteps/session"
)

// Broadcaster fans a packet out to room members or to every session.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
	BroadcastToAll(msgID uint16, data []byte) error
}

// RoomBroadcaster resolves room membership through the session manager:
// a session belongs to whatever room it last joined.
type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{sessionManager: sessionManager}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.GetByRoom(roomID) {
		if err := s.Send(msgID, data); err != nil {
			// A dead connection drops out through its own read loop.
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) BroadcastToAll(msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.All() {
		if err := s.Send(msgID, data); err != nil {
			continue
		}
	}
	return nil
}
