package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secroll/missteps/cards"
)

func TestShareIntelSuccessDrawsCard(t *testing.T) {
	room, notifier, _ := newTestRoom(t, 3) // secondary die = 4
	joinPlayers(t, room, notifier, "p1", "p2")
	room.players["p1"].Position = 20
	room.players["p2"].Position = 20
	room.players["p1"].Hand = nil
	room.deck = Deck{mitVnd}

	require.NoError(t, room.ShareIntel("p1"))

	snap := notifier.last()
	require.Len(t, snap.Players[0].Hand, 1)
	assert.Equal(t, "mit-vendor", snap.Players[0].Hand[0].ID)
	require.NotNil(t, snap.Players[0].LastIntelAt)
	assert.Equal(t, 20, *snap.Players[0].LastIntelAt)
	assert.Equal(t, "p1", snap.CurrentTurn, "intel never consumes the turn")

	rec := snap.LastAction
	assert.True(t, rec.Intel)
	assert.True(t, rec.Success)
	assert.Equal(t, 4, rec.Roll)
	assert.Equal(t, 20, rec.Position)
	require.NotNil(t, rec.Card)
	assert.Equal(t, CardTypeMitigation, rec.Card.Type)
}

func TestShareIntelRepeatFromSameSquareRejected(t *testing.T) {
	room, notifier, _ := newTestRoom(t, 3)
	joinPlayers(t, room, notifier, "p1", "p2")
	room.players["p1"].Position = 20
	room.players["p2"].Position = 20
	room.players["p1"].Hand = nil
	room.deck = Deck{mitVnd, mitDNS}

	require.NoError(t, room.ShareIntel("p1"))
	assert.ErrorIs(t, room.ShareIntel("p1"), ErrIntelUnavailable)

	snap := notifier.last()
	assert.Len(t, snap.Players[0].Hand, 1, "no double draw from the same square")
	assert.Equal(t, 1, room.deck.Len())
}

func TestShareIntelLowRollFails(t *testing.T) {
	room, notifier, _ := newTestRoom(t, 1) // secondary die = 2
	joinPlayers(t, room, notifier, "p1", "p2")
	room.players["p1"].Position = 20
	room.players["p2"].Position = 20
	room.players["p1"].Hand = nil
	room.deck = Deck{mitVnd}

	require.NoError(t, room.ShareIntel("p1"))

	snap := notifier.last()
	assert.Empty(t, snap.Players[0].Hand)
	assert.False(t, snap.LastAction.Success)
	require.NotNil(t, snap.Players[0].LastIntelAt, "a failed attempt still spends the square")
}

func TestShareIntelEmptyDeckFails(t *testing.T) {
	room, notifier, _ := newTestRoom(t, 5) // secondary die = 6
	joinPlayers(t, room, notifier, "p1", "p2")
	room.players["p1"].Position = 20
	room.players["p2"].Position = 20
	room.players["p1"].Hand = nil
	room.deck = Deck{}

	require.NoError(t, room.ShareIntel("p1"))

	snap := notifier.last()
	assert.False(t, snap.LastAction.Success)
	assert.Nil(t, snap.LastAction.Card)
	assert.Empty(t, snap.Players[0].Hand)
}

func TestShareIntelEligibility(t *testing.T) {
	room, notifier, _ := newTestRoom(t)
	joinPlayers(t, room, notifier, "p1", "p2")

	// Off-board players cannot share.
	assert.ErrorIs(t, room.ShareIntel("p1"), ErrIntelUnavailable)

	// Alone on a square.
	room.players["p1"].Position = 10
	assert.ErrorIs(t, room.ShareIntel("p1"), ErrIntelUnavailable)

	room.pending = &PendingDecision{PlayerID: "p2"}
	room.players["p2"].Position = 10
	assert.ErrorIs(t, room.ShareIntel("p1"), ErrMitigationPending)
	room.pending = nil

	room.winner = "p2"
	assert.ErrorIs(t, room.ShareIntel("p1"), ErrGameFinished)

	assert.ErrorIs(t, room.ShareIntel("ghost"), ErrNotInRoom)
}

func TestRollRunsAutomaticIntel(t *testing.T) {
	// die = 3 moves p1 next to p2 at square 3, then intel die = 5 succeeds.
	room, notifier, _ := newTestRoom(t, 2, 4)
	joinPlayers(t, room, notifier, "p1", "p2")
	room.players["p2"].Position = 3
	room.players["p1"].Hand = nil
	room.deck = Deck{mitVnd}

	require.NoError(t, room.Roll("p1"))

	// Two broadcasts: the roll record, then the intel record.
	require.Len(t, notifier.snaps, 2)
	assert.Nil(t, notifier.snaps[0].LastAction.Card)
	assert.False(t, notifier.snaps[0].LastAction.Intel)

	snap := notifier.last()
	assert.True(t, snap.LastAction.Intel)
	assert.True(t, snap.LastAction.Success)
	assert.Equal(t, []cards.Mitigation{mitVnd}, snap.Players[0].Hand)
	assert.Equal(t, "p2", snap.CurrentTurn, "the bonus action happens after the turn has passed")
	assert.Equal(t, int64(2), snap.ActionCounter)
}

func TestRollClearsIntelGuard(t *testing.T) {
	// A misstep can return the player to the square they already shared
	// intel from; the new landing re-arms the guard.
	room, notifier, _ := newTestRoom(t, 3, 1, 0, 2) // die 4 -> space 8, -4 back to 4, then intel die 3
	joinPlayers(t, room, notifier, "p1", "p2")
	room.setCardSpaces([]int{8, BoardSize})
	room.players["p1"].Position = 4
	room.players["p1"].Hand = nil
	room.players["p2"].Position = 4
	room.players["p1"].lastIntelAt = 4

	require.NoError(t, room.Roll("p1"))

	snap := notifier.last()
	assert.Equal(t, 4, snap.Players[0].Position)
	assert.True(t, snap.LastAction.Intel, "guard cleared, auto attempt ran again")
	assert.False(t, snap.LastAction.Success, "roll of 3 fails the intel check")
}
