package game

import (
	"github.com/secroll/missteps/cards"
)

// Player is one participant's state inside a room. All mutation happens
// under the owning room's lock.
type Player struct {
	ID                 string
	Name               string
	Position           int
	Color              string
	Hand               []cards.Mitigation
	LearnedMitigations []string

	// lastIntelAt guards repeat intel attempts from the same square.
	// -1 means no attempt since the last move.
	lastIntelAt int
}

// matchingHand returns the hand cards covering any of the given tags.
func (p *Player) matchingHand(tags []string) []cards.Mitigation {
	var matches []cards.Mitigation
	for _, c := range p.Hand {
		if c.Covers(tags) {
			matches = append(matches, c)
		}
	}
	return matches
}

// mitigationOptions returns the ids of hand cards covering any of tags.
func (p *Player) mitigationOptions(tags []string) []string {
	matches := p.matchingHand(tags)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]string, len(matches))
	for i, c := range matches {
		ids[i] = c.ID
	}
	return ids
}

func (p *Player) handIndex(mitigationID string) int {
	for i, c := range p.Hand {
		if c.ID == mitigationID {
			return i
		}
	}
	return -1
}

// learnedMitigation finds a previously played mitigation that covers tags.
// Learned cards auto-apply without consuming anything from the hand.
func (p *Player) learnedMitigation(lib *cards.Library, tags []string) (cards.Mitigation, bool) {
	for _, id := range p.LearnedMitigations {
		c, ok := lib.MitigationByID(id)
		if !ok {
			continue
		}
		if c.Covers(tags) {
			return c, true
		}
	}
	return cards.Mitigation{}, false
}

// remember records a played mitigation for future auto-mitigation. The
// memory persists for the rest of the game, reset clears it.
func (p *Player) remember(mitigationID string) {
	if mitigationID == "" {
		return
	}
	for _, id := range p.LearnedMitigations {
		if id == mitigationID {
			return
		}
	}
	p.LearnedMitigations = append(p.LearnedMitigations, mitigationID)
}
