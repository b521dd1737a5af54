package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secroll/missteps/cards"
)

func TestNewDeckShufflePreservesCards(t *testing.T) {
	lib := testLibrary()
	deck := NewDeck(lib, rand.New(rand.NewSource(11)))

	require.Equal(t, len(lib.Mitigations), deck.Len())
	got := make([]cards.Mitigation, deck.Len())
	copy(got, deck)
	assert.ElementsMatch(t, lib.Mitigations, got)
}

func TestDealShortHandsOnExhaustion(t *testing.T) {
	deck := Deck{mitS3, mitDNS}

	hand := deck.Deal(3)
	assert.Len(t, hand, 2, "deal comes up short, never errors")
	assert.Equal(t, 0, deck.Len())

	empty := deck.Deal(3)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
}

func TestDrawConsumesFromTail(t *testing.T) {
	deck := Deck{mitS3, mitDNS}

	c, ok := deck.Draw()
	require.True(t, ok)
	assert.Equal(t, "mit-dns", c.ID)

	c, ok = deck.Draw()
	require.True(t, ok)
	assert.Equal(t, "mit-s3", c.ID)

	_, ok = deck.Draw()
	assert.False(t, ok, "drawing from an empty deck just reports none")
}
