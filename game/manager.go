package game

import (
	"sync"

	"github.com/secroll/missteps/cards"
)

// Manager owns every live room, keyed by id. Rooms are created lazily on
// first join and garbage-collected the moment their player set empties.
type Manager struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	lib      *cards.Library
	notifier Notifier
	newRand  func() Rand
}

func NewManager(lib *cards.Library, notifier Notifier) *Manager {
	return &Manager{
		rooms:    make(map[string]*Room),
		lib:      lib,
		notifier: notifier,
		newRand:  NewRand,
	}
}

// GetOrCreate returns the room for id, creating it on first reference.
func (m *Manager) GetOrCreate(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.rooms[id]; ok {
		return r
	}
	r := NewRoom(id, m.lib, m.notifier, m.newRand())
	m.rooms[id] = r
	return r
}

func (m *Manager) Get(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// RemoveIfEmpty drops the room when no players remain. Reports whether
// the room was removed.
func (m *Manager) RemoveIfEmpty(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[id]
	if !ok {
		return false
	}
	if r.PlayerCount() > 0 {
		return false
	}
	delete(m.rooms, id)
	return true
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

func (m *Manager) RoomIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	return ids
}
