package game

import (
	"github.com/secroll/missteps/cards"
)

// Clients only ever see the most recent discards.
const discardHistory = 10

// Snapshot is the full wire view of a room, broadcast to every member
// after each successful mutation. It is a pure projection: building one
// never mutates room state.
type Snapshot struct {
	RoomID            string        `json:"roomId"`
	Players           []PlayerView  `json:"players"`
	CurrentTurn       string        `json:"currentTurn,omitempty"`
	LastAction        *ActionRecord `json:"lastAction"`
	Winner            string        `json:"winner,omitempty"`
	ActionCounter     int64         `json:"actionCounter"`
	BoardSize         int           `json:"boardSize"`
	CardSpaces        []int         `json:"cardSpaces"`
	PendingMitigation *PendingView  `json:"pendingMitigation"`
	Discards          []Discard     `json:"discards"`
}

// PlayerView mirrors Player for the wire, in join order.
type PlayerView struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Position           int                `json:"position"`
	Color              string             `json:"color"`
	Hand               []cards.Mitigation `json:"hand"`
	LearnedMitigations []string           `json:"learnedMitigations"`
	LastIntelAt        *int               `json:"lastIntelAt"`
}

// PendingView is the open decision with mitigation options recomputed
// against the owner's current hand, never a cached copy.
type PendingView struct {
	PlayerID          string             `json:"playerId"`
	Start             int                `json:"start"`
	ForwardTarget     int                `json:"forwardTarget"`
	Card              CardResult         `json:"card"`
	Roll              int                `json:"roll"`
	Tags              []string           `json:"tags"`
	MitigationOptions []cards.Mitigation `json:"mitigationOptions"`
}

// Snapshot projects the room into its broadcastable view.
func (r *Room) Snapshot() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		RoomID:        r.ID,
		CurrentTurn:   r.currentPlayerID(),
		LastAction:    r.lastAction,
		Winner:        r.winner,
		ActionCounter: r.actionCounter,
		BoardSize:     BoardSize,
		CardSpaces:    append([]int(nil), r.spaces...),
	}

	snap.Players = make([]PlayerView, 0, len(r.order))
	for _, id := range r.order {
		p, ok := r.players[id]
		if !ok {
			continue
		}
		view := PlayerView{
			ID:                 p.ID,
			Name:               p.Name,
			Position:           p.Position,
			Color:              p.Color,
			Hand:               append([]cards.Mitigation(nil), p.Hand...),
			LearnedMitigations: append([]string(nil), p.LearnedMitigations...),
		}
		if p.lastIntelAt >= 0 {
			at := p.lastIntelAt
			view.LastIntelAt = &at
		}
		snap.Players = append(snap.Players, view)
	}

	if r.pending != nil {
		view := &PendingView{
			PlayerID:      r.pending.PlayerID,
			Start:         r.pending.Start,
			ForwardTarget: r.pending.ForwardTarget,
			Card:          r.pending.Card,
			Roll:          r.pending.Roll,
			Tags:          r.pending.Tags,
		}
		if owner, ok := r.players[r.pending.PlayerID]; ok {
			view.MitigationOptions = owner.matchingHand(r.pending.Tags)
		}
		snap.PendingMitigation = view
	}

	if n := len(r.discards); n > discardHistory {
		snap.Discards = append([]Discard(nil), r.discards[n-discardHistory:]...)
	} else {
		snap.Discards = append([]Discard(nil), r.discards...)
	}
	return snap
}
