package game

import (
	"sync"
	"time"

	"github.com/secroll/missteps/cards"
)

// Notifier receives the refreshed snapshot after every successful
// mutation. Defined here rather than in the server package to break the
// import cycle.
type Notifier interface {
	RoomUpdated(roomID string, snap *Snapshot)
}

// Room is one game in progress. Every action handler takes the room lock
// for its whole resolution, so no caller can ever observe a half-applied
// turn.
type Room struct {
	ID string

	mu            sync.Mutex
	players       map[string]*Player
	order         []string
	currentTurn   int // index into order, -1 while the room is empty
	winner        string
	pending       *PendingDecision
	discards      []Discard
	actionCounter int64
	lastAction    *ActionRecord
	deck          Deck
	spaces        []int
	spaceSet      map[int]struct{}

	lib       *cards.Library
	rng       Rand
	notifier  Notifier
	createdAt time.Time
}

// NewRoom builds an empty room with a fresh shuffled deck and generated
// card spaces.
func NewRoom(id string, lib *cards.Library, notifier Notifier, rng Rand) *Room {
	r := &Room{
		ID:          id,
		players:     make(map[string]*Player),
		currentTurn: -1,
		lib:         lib,
		rng:         rng,
		notifier:    notifier,
		createdAt:   time.Now(),
	}
	r.deck = NewDeck(lib, rng)
	r.setCardSpaces(generateCardSpaces(rng, CardSpaceCount))
	return r
}

// generateCardSpaces picks count distinct event squares in [1, BoardSize].
// The winning square always draws a card.
func generateCardSpaces(rng Rand, count int) []int {
	spaces := []int{BoardSize}
	seen := map[int]struct{}{BoardSize: {}}
	target := min(count, BoardSize)
	for len(spaces) < target {
		v := rng.Intn(BoardSize) + 1
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		spaces = append(spaces, v)
	}
	return spaces
}

func (r *Room) setCardSpaces(spaces []int) {
	r.spaces = spaces
	r.spaceSet = make(map[int]struct{}, len(spaces))
	for _, s := range spaces {
		r.spaceSet[s] = struct{}{}
	}
}

func (r *Room) isCardSpace(pos int) bool {
	_, ok := r.spaceSet[pos]
	return ok
}

func (r *Room) currentPlayerID() string {
	if len(r.order) == 0 {
		return ""
	}
	idx := r.currentTurn
	if idx < 0 || idx >= len(r.order) {
		idx = 0
	}
	return r.order[idx]
}

func (r *Room) advanceTurn() {
	if len(r.order) == 0 {
		r.currentTurn = -1
		return
	}
	r.currentTurn = (r.currentTurn + 1) % len(r.order)
}

// recordLocked assigns the next monotonic action id and publishes rec as
// the room's last action.
func (r *Room) recordLocked(rec *ActionRecord) {
	r.actionCounter++
	rec.ID = r.actionCounter
	r.lastAction = rec
}

func (r *Room) notifyLocked() {
	if r.notifier == nil {
		return
	}
	r.notifier.RoomUpdated(r.ID, r.snapshotLocked())
}

// Join adds a player with a dealt starting hand. Joining twice with the
// same id is a no-op beyond a state refresh.
func (r *Room) Join(playerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; ok {
		r.notifyLocked()
		return nil
	}
	if len(r.order) >= MaxPlayers {
		return ErrRoomFull
	}

	p := &Player{
		ID:          playerID,
		Name:        name,
		Position:    StartPos,
		Color:       colors[len(r.order)%len(colors)],
		Hand:        r.deck.Deal(HandSize),
		lastIntelAt: -1,
	}
	r.players[playerID] = p
	r.order = append(r.order, playerID)
	if r.currentTurn < 0 {
		r.currentTurn = 0
	}
	r.notifyLocked()
	return nil
}

// Leave removes a player, vacating any turn, pending-decision or winner
// slot they held. Returns true when the room is empty afterwards; the
// caller is expected to garbage-collect it immediately.
func (r *Room) Leave(playerID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return len(r.players) == 0
	}
	delete(r.players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.currentTurn >= len(r.order) {
		if len(r.order) > 0 {
			r.currentTurn = 0
		} else {
			r.currentTurn = -1
		}
	}
	if len(r.players) == 0 {
		return true
	}
	if r.pending != nil && r.pending.PlayerID == playerID {
		r.pending = nil
	}
	if r.winner == playerID {
		r.winner = ""
	}
	r.notifyLocked()
	return false
}

// PendingFor reports whether a pending decision belonging to playerID is
// open.
func (r *Room) PendingFor(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil && r.pending.PlayerID == playerID
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}
