package game

import (
	"github.com/secroll/missteps/cards"
)

// Deck is a per-room shuffled stack of mitigation cards, consumed from the
// end. Exhaustion is not an error: deals just come up short.
type Deck []cards.Mitigation

// NewDeck copies the full mitigation catalog and shuffles it with an
// unbiased Fisher-Yates pass from the end.
func NewDeck(lib *cards.Library, rng Rand) Deck {
	d := make(Deck, len(lib.Mitigations))
	copy(d, lib.Mitigations)
	for i := len(d) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d[i], d[j] = d[j], d[i]
	}
	return d
}

// Deal pops up to n cards, fewer when the deck runs dry.
func (d *Deck) Deal(n int) []cards.Mitigation {
	hand := make([]cards.Mitigation, 0, n)
	for len(hand) < n {
		c, ok := d.Draw()
		if !ok {
			break
		}
		hand = append(hand, c)
	}
	return hand
}

// Draw pops one card from the tail.
func (d *Deck) Draw() (cards.Mitigation, bool) {
	old := *d
	if len(old) == 0 {
		return cards.Mitigation{}, false
	}
	c := old[len(old)-1]
	*d = old[:len(old)-1]
	return c, true
}

func (d Deck) Len() int {
	return len(d)
}
