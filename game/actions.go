package game

import (
	"errors"

	"github.com/secroll/missteps/cards"
)

// Rejected actions never mutate room state. The server decides per error
// whether the client gets an advisory toast or silence.
var (
	ErrRoomFull          = errors.New("room is full")
	ErrNotInRoom         = errors.New("player not in room")
	ErrMitigationPending = errors.New("mitigation choice pending")
	ErrGameFinished      = errors.New("game finished")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNoPendingDecision = errors.New("no pending decision for player")
	ErrMitigationNotHeld = errors.New("mitigation not in hand")
	ErrIntelUnavailable  = errors.New("intel sharing unavailable")
)

// Event-card kinds inside action records.
const (
	CardTypeControl    = "control"
	CardTypeMisstep    = "misstep"
	CardTypeMitigation = "mitigation"
)

// CardResult describes the outcome of a card draw inside an action record.
type CardResult struct {
	ID                string            `json:"id"`
	Label             string            `json:"label"`
	Delta             int               `json:"delta,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	Mitigates         []string          `json:"mitigates,omitempty"`
	Type              string            `json:"type"`
	ResultPosition    int               `json:"resultPosition,omitempty"`
	Mitigated         bool              `json:"mitigated,omitempty"`
	Mitigation        *cards.Mitigation `json:"mitigation,omitempty"`
	Learned           bool              `json:"learned,omitempty"`
	NoMatch           bool              `json:"noMatch,omitempty"`
	Pending           bool              `json:"pending,omitempty"`
	MitigationOptions []string          `json:"mitigationOptions,omitempty"`
}

// ActionRecord is the structured log entry for one resolved action. Ids
// are monotonic per room; clients use them to de-duplicate replays.
type ActionRecord struct {
	ID                int64       `json:"id"`
	PlayerID          string      `json:"playerId"`
	Name              string      `json:"name"`
	Roll              int         `json:"roll,omitempty"`
	From              int         `json:"from"`
	To                int         `json:"to"`
	Card              *CardResult `json:"card"`
	PendingMitigation bool        `json:"pendingMitigation,omitempty"`
	MitigationUsed    string      `json:"mitigationUsed,omitempty"`
	Reset             bool        `json:"reset,omitempty"`
	Intel             bool        `json:"intel,omitempty"`
	Success           bool        `json:"success,omitempty"`
	Position          int         `json:"position,omitempty"`
}

// PendingDecision blocks a room between a misstep draw with viable hand
// mitigations and the owning player's choice. It stores only the player id;
// mitigation options are recomputed from the live hand at serialization.
type PendingDecision struct {
	PlayerID      string
	Start         int
	ForwardTarget int
	Card          CardResult
	Roll          int
	Tags          []string
}

// Discard is one spent mitigation in the room history.
type Discard struct {
	PlayerID   string           `json:"playerId"`
	Name       string           `json:"name"`
	Mitigation cards.Mitigation `json:"mitigation"`
}

// Roll resolves the current player's die roll end to end: move, event
// card, mitigation checks, win detection, turn advancement and the
// automatic intel attempt.
func (r *Room) Roll(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		return ErrMitigationPending
	}
	p, ok := r.players[playerID]
	if !ok {
		return ErrNotInRoom
	}
	if r.winner != "" {
		return ErrGameFinished
	}
	if r.currentPlayerID() != playerID {
		return ErrNotYourTurn
	}

	// Moving invalidates the intel guard even if the misstep below puts
	// the player back on the same square.
	p.lastIntelAt = -1

	roll := rollDie(r.rng)
	start := p.Position
	raw := start + roll

	if raw > BoardSize {
		// Overshoot clamps to the final square and wins outright. No
		// event card triggers on the clamp: exact landings only.
		p.Position = BoardSize
		r.recordLocked(&ActionRecord{PlayerID: p.ID, Name: p.Name, Roll: roll, From: start, To: BoardSize})
		r.winner = p.ID
		r.notifyLocked()
		return nil
	}

	target := raw
	var result *CardResult
	if r.isCardSpace(target) {
		drawn := r.drawEventCardLocked()
		switch drawn.Type {
		case CardTypeControl:
			target = min(BoardSize, target+drawn.Delta)
			drawn.ResultPosition = target
		case CardTypeMisstep:
			if learned, ok := p.learnedMitigation(r.lib, drawn.Tags); ok {
				// Prior knowledge cancels the misstep for free.
				m := learned
				drawn.Mitigated = true
				drawn.Mitigation = &m
				drawn.Learned = true
				drawn.ResultPosition = target
			} else if options := p.mitigationOptions(drawn.Tags); len(options) > 0 {
				p.Position = target // show the forward move while the choice is open
				r.pending = &PendingDecision{
					PlayerID:      p.ID,
					Start:         start,
					ForwardTarget: target,
					Card:          drawn,
					Roll:          roll,
					Tags:          drawn.Tags,
				}
				pendingCard := drawn
				pendingCard.Pending = true
				pendingCard.MitigationOptions = options
				r.recordLocked(&ActionRecord{
					PlayerID:          p.ID,
					Name:              p.Name,
					Roll:              roll,
					From:              start,
					To:                target,
					Card:              &pendingCard,
					PendingMitigation: true,
				})
				r.notifyLocked()
				return nil
			} else {
				target = max(StartPos, target+drawn.Delta)
				drawn.NoMatch = true
				drawn.ResultPosition = target
			}
		}
		result = &drawn
	}

	p.Position = target
	r.recordLocked(&ActionRecord{PlayerID: p.ID, Name: p.Name, Roll: roll, From: start, To: target, Card: result})

	if target >= BoardSize {
		r.winner = p.ID
		r.notifyLocked()
		return nil
	}
	r.advanceTurn()
	r.notifyLocked()
	// Bonus action, not a turn; ineligibility is silent on the auto path.
	_ = r.shareIntelLocked(p)
	return nil
}

// drawEventCardLocked draws one event card: 50/50 between the control and
// misstep pools, then uniform within the chosen pool.
func (r *Room) drawEventCardLocked() CardResult {
	if r.rng.Intn(2) == 0 {
		c := r.lib.Controls[r.rng.Intn(len(r.lib.Controls))]
		return CardResult{ID: c.ID, Label: c.Label, Delta: c.Delta, Type: CardTypeControl}
	}
	m := r.lib.Missteps[r.rng.Intn(len(r.lib.Missteps))]
	return CardResult{ID: m.ID, Label: m.Label, Delta: m.Delta, Tags: m.Tags, Type: CardTypeMisstep}
}

// UseMitigation resolves the pending misstep by playing a hand card. The
// card moves to the discard pile and is remembered for auto-mitigation.
func (r *Room) UseMitigation(playerID, mitigationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil || r.pending.PlayerID != playerID {
		return ErrNoPendingDecision
	}
	p, ok := r.players[playerID]
	if !ok {
		return ErrNotInRoom
	}
	idx := p.handIndex(mitigationID)
	if idx < 0 {
		return ErrMitigationNotHeld
	}

	m := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	p.remember(m.ID)

	pending := r.pending
	target := min(BoardSize, pending.ForwardTarget)
	p.Position = target
	r.pending = nil
	r.discards = append(r.discards, Discard{PlayerID: p.ID, Name: p.Name, Mitigation: m})

	card := pending.Card
	card.Mitigated = true
	played := m
	card.Mitigation = &played
	r.recordLocked(&ActionRecord{
		PlayerID:       p.ID,
		Name:           p.Name,
		Roll:           pending.Roll,
		From:           pending.Start,
		To:             target,
		Card:           &card,
		MitigationUsed: m.ID,
	})

	if target >= BoardSize {
		r.winner = p.ID
	} else {
		r.advanceTurn()
	}
	r.notifyLocked()
	return nil
}

// AcceptMisstep resolves the pending misstep by taking the penalty.
func (r *Room) AcceptMisstep(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil || r.pending.PlayerID != playerID {
		return ErrNoPendingDecision
	}
	p, ok := r.players[playerID]
	if !ok {
		return ErrNotInRoom
	}

	pending := r.pending
	target := max(StartPos, pending.ForwardTarget+pending.Card.Delta)
	p.Position = target
	r.pending = nil

	card := pending.Card
	card.ResultPosition = target
	r.recordLocked(&ActionRecord{
		PlayerID: p.ID,
		Name:     p.Name,
		Roll:     pending.Roll,
		From:     pending.Start,
		To:       target,
		Card:     &card,
	})

	if target >= BoardSize {
		r.winner = p.ID
	} else {
		r.advanceTurn()
	}
	r.notifyLocked()
	return nil
}

// Reset reinitializes all mutable room and player state in place: fresh
// deck, fresh card spaces, re-dealt hands, turn back to the first player.
func (r *Room) Reset(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return ErrNotInRoom
	}

	r.pending = nil
	for _, pl := range r.players {
		pl.Position = StartPos
		pl.Hand = nil
		pl.lastIntelAt = -1
		pl.LearnedMitigations = nil
	}
	r.winner = ""
	if len(r.order) > 0 {
		r.currentTurn = 0
	} else {
		r.currentTurn = -1
	}
	r.discards = nil
	r.deck = NewDeck(r.lib, r.rng)
	r.setCardSpaces(generateCardSpaces(r.rng, CardSpaceCount))
	for _, id := range r.order {
		r.players[id].Hand = r.deck.Deal(HandSize)
	}
	r.recordLocked(&ActionRecord{PlayerID: p.ID, Name: p.Name, Reset: true})
	r.notifyLocked()
	return nil
}

// ShareIntel is the manual entry point for the intel bonus action. It
// never consumes the turn.
func (r *Room) ShareIntel(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return ErrNotInRoom
	}
	if r.winner != "" {
		return ErrGameFinished
	}
	if r.pending != nil {
		return ErrMitigationPending
	}
	return r.shareIntelLocked(p)
}

// shareIntelLocked runs one intel attempt: eligible only while co-located
// with another player on a square not yet attempted. The attempt is spent
// whether or not the secondary roll succeeds.
func (r *Room) shareIntelLocked(p *Player) error {
	if !r.canShareIntelLocked(p) {
		return ErrIntelUnavailable
	}
	p.lastIntelAt = p.Position

	roll := rollDie(r.rng)
	success := roll >= 4 && r.deck.Len() > 0
	var result *CardResult
	if success {
		c, ok := r.deck.Draw()
		if !ok {
			success = false
		} else {
			p.Hand = append(p.Hand, c)
			result = &CardResult{ID: c.ID, Label: c.Label, Mitigates: c.Mitigates, Type: CardTypeMitigation}
		}
	}

	r.recordLocked(&ActionRecord{
		PlayerID: p.ID,
		Name:     p.Name,
		Intel:    true,
		Roll:     roll,
		Success:  success,
		Card:     result,
		Position: p.Position,
	})
	r.notifyLocked()
	return nil
}

func (r *Room) canShareIntelLocked(p *Player) bool {
	if p.Position <= StartPos {
		return false
	}
	if p.lastIntelAt == p.Position {
		return false
	}
	for _, other := range r.players {
		if other.ID != p.ID && other.Position == p.Position {
			return true
		}
	}
	return false
}
