package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secroll/missteps/cards"
)

func TestJoinAssignsColorAndHand(t *testing.T) {
	room, notifier, _ := newTestRoom(t)
	require.NoError(t, room.Join("p1", "Alice"))

	snap := notifier.last()
	require.Len(t, snap.Players, 1)
	assert.Equal(t, "Alice", snap.Players[0].Name)
	assert.Equal(t, colors[0], snap.Players[0].Color)
	assert.Equal(t, StartPos, snap.Players[0].Position)
	assert.Len(t, snap.Players[0].Hand, 3)
	assert.Equal(t, "p1", snap.CurrentTurn, "first joiner takes the turn")

	// Deck had 3 cards; the second hand comes up empty rather than failing.
	require.NoError(t, room.Join("p2", "Bob"))
	assert.Empty(t, notifier.last().Players[1].Hand)
	assert.Equal(t, colors[1], notifier.last().Players[1].Color)
}

func TestJoinIsIdempotentPerID(t *testing.T) {
	room, notifier, _ := newTestRoom(t)
	require.NoError(t, room.Join("p1", "Alice"))
	require.NoError(t, room.Join("p1", "Imposter"))

	snap := notifier.last()
	require.Len(t, snap.Players, 1)
	assert.Equal(t, "Alice", snap.Players[0].Name)
}

func TestJoinRoomFull(t *testing.T) {
	room, notifier, _ := newTestRoom(t)
	for i := 0; i < MaxPlayers; i++ {
		require.NoError(t, room.Join(string(rune('a'+i)), "Player"))
	}
	notifier.reset()

	assert.ErrorIs(t, room.Join("late", "Late"), ErrRoomFull)
	assert.Empty(t, notifier.snaps)
	assert.Equal(t, MaxPlayers, room.PlayerCount())
}

func TestLeaveRenormalizesTurn(t *testing.T) {
	room, notifier, _ := newTestRoom(t)
	joinPlayers(t, room, notifier, "p1", "p2", "p3")
	room.currentTurn = 2

	empty := room.Leave("p3")
	assert.False(t, empty)
	assert.Equal(t, "p1", notifier.last().CurrentTurn, "index falls back to the first player")

	// Removing an earlier player leaves the index pointing past the end,
	// which renormalizes onto the remaining player.
	room.currentTurn = 1
	room.Leave("p1")
	assert.Equal(t, "p2", notifier.last().CurrentTurn)
}

func TestLeaveVacatesPendingAndWinner(t *testing.T) {
	room, notifier, _ := newTestRoom(t)
	joinPlayers(t, room, notifier, "p1", "p2")
	room.pending = &PendingDecision{PlayerID: "p1"}
	room.winner = "p1"

	room.Leave("p1")

	snap := notifier.last()
	assert.Nil(t, snap.PendingMitigation)
	assert.Empty(t, snap.Winner)
}

func TestLeaveLastPlayerReportsEmpty(t *testing.T) {
	room, notifier, _ := newTestRoom(t)
	joinPlayers(t, room, notifier, "p1")

	assert.True(t, room.Leave("p1"))
	assert.Empty(t, notifier.snaps, "nobody is left to notify")
	assert.True(t, room.Leave("ghost"), "an empty room stays empty")
}

func TestGenerateCardSpaces(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	spaces := generateCardSpaces(rng, CardSpaceCount)
	assert.Len(t, spaces, CardSpaceCount)
	assert.Equal(t, BoardSize, spaces[0], "the winning square always draws")

	seen := make(map[int]struct{})
	for _, s := range spaces {
		assert.GreaterOrEqual(t, s, 1)
		assert.LessOrEqual(t, s, BoardSize)
		_, dup := seen[s]
		assert.False(t, dup, "card spaces must be distinct")
		seen[s] = struct{}{}
	}

	// Requesting more spaces than squares covers the whole track.
	full := generateCardSpaces(rng, BoardSize*3)
	assert.Len(t, full, BoardSize)
}

func TestManagerLifecycle(t *testing.T) {
	mgr := NewManager(testLibrary(), &recordingNotifier{})

	room := mgr.GetOrCreate("alpha")
	require.NotNil(t, room)
	assert.Same(t, room, mgr.GetOrCreate("alpha"), "rooms are created once per id")
	assert.Equal(t, 1, mgr.Count())

	_, ok := mgr.Get("beta")
	assert.False(t, ok)

	// Occupied rooms survive the sweep.
	require.NoError(t, room.Join("p1", "Alice"))
	assert.False(t, mgr.RemoveIfEmpty("alpha"))

	room.Leave("p1")
	assert.True(t, mgr.RemoveIfEmpty("alpha"))
	assert.Equal(t, 0, mgr.Count())
	assert.False(t, mgr.RemoveIfEmpty("alpha"), "removing a missing room is a no-op")
}

func TestManagerRoomIDs(t *testing.T) {
	mgr := NewManager(testLibrary(), &recordingNotifier{})
	mgr.GetOrCreate("alpha")
	mgr.GetOrCreate("beta")

	ids := mgr.RoomIDs()
	assert.ElementsMatch(t, []string{"alpha", "beta"}, ids)
}

func TestNewRoomUsesLibraryDeck(t *testing.T) {
	lib := testLibrary()
	room := NewRoom("alpha", lib, nil, rand.New(rand.NewSource(3)))

	assert.Equal(t, len(lib.Mitigations), room.deck.Len())
	got := make([]cards.Mitigation, room.deck.Len())
	copy(got, room.deck)
	assert.ElementsMatch(t, lib.Mitigations, got, "shuffle preserves the card multiset")
}
