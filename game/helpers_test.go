package game

import (
	"math/rand"
	"testing"

	"github.com/secroll/missteps/cards"
)

// scriptRand feeds predetermined values to the room's randomness source.
// Values are consumed in call order and reduced modulo the requested
// bound, so a die roll of k is scripted as k-1.
type scriptRand struct {
	t    *testing.T
	vals []int
	i    int
}

func (s *scriptRand) Intn(n int) int {
	if s.i >= len(s.vals) {
		s.t.Fatalf("scriptRand exhausted after %d values (Intn(%d))", len(s.vals), n)
	}
	v := s.vals[s.i]
	s.i++
	return v % n
}

// recordingNotifier captures every broadcast snapshot for assertions,
// mirroring the server's role as game.Notifier.
type recordingNotifier struct {
	snaps []*Snapshot
}

func (n *recordingNotifier) RoomUpdated(roomID string, snap *Snapshot) {
	n.snaps = append(n.snaps, snap)
}

func (n *recordingNotifier) last() *Snapshot {
	if len(n.snaps) == 0 {
		return nil
	}
	return n.snaps[len(n.snaps)-1]
}

func (n *recordingNotifier) reset() {
	n.snaps = nil
}

var (
	mitS3  = cards.Mitigation{ID: "mit-s3", Label: "Bucket lockdown", Mitigates: []string{"s3"}}
	mitDNS = cards.Mitigation{ID: "mit-dns", Label: "DNSSEC rollout", Mitigates: []string{"dns"}}
	mitVnd = cards.Mitigation{ID: "mit-vendor", Label: "Vendor failover", Mitigates: []string{"vendor"}}
)

// testLibrary returns a one-card-per-pool catalog so scripted pool indexes
// are unambiguous.
func testLibrary() *cards.Library {
	return cards.NewLibrary(
		[]cards.Control{{ID: "ctrl-boost", Label: "Drill paid off", Delta: 3}},
		[]cards.Misstep{{ID: "mis-s3", Label: "Open bucket", Delta: -4, Tags: []string{"s3"}}},
		[]cards.Mitigation{mitS3, mitDNS, mitVnd},
		[]int{4, 9, BoardSize},
	)
}

// newTestRoom builds a room whose dice are fully scripted. Deck and card
// spaces are deterministic; tests overwrite them as needed.
func newTestRoom(t *testing.T, script ...int) (*Room, *recordingNotifier, *scriptRand) {
	t.Helper()
	notifier := &recordingNotifier{}
	room := NewRoom("alpha", testLibrary(), notifier, rand.New(rand.NewSource(1)))
	rng := &scriptRand{t: t, vals: script}
	room.rng = rng
	room.setCardSpaces([]int{BoardSize})
	return room, notifier, rng
}

// joinPlayers adds named players and clears the setup broadcasts.
func joinPlayers(t *testing.T, room *Room, notifier *recordingNotifier, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := room.Join(id, "Player "+id); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
	}
	notifier.reset()
}
